package fiber

import (
	"time"

	"github.com/vango-dev/weft/pkg/scheduler"
	"github.com/vango-dev/weft/pkg/vdom"
)

// workLoop is the idle callback. It processes units while the deadline
// leaves more than the yield threshold, commits when the traversal is
// complete and re-arms itself while work remains.
func (r *Root) workLoop(deadline scheduler.Deadline) {
	r.requested = false
	if r.next == nil && r.pending == nil {
		return
	}

	r.slices++
	processed := 0
	for r.next != nil && deadline.TimeRemaining() > r.threshold {
		if r.phase == PhasePending {
			r.phase = PhaseTraversing
			r.cycleStart = time.Now()
			r.observer.OnCycleStart(r.info())
		}

		gen := r.cycle
		next := r.performUnitOfWork(r.next)
		if r.cycle != gen {
			// An update during evaluation restarted the cycle.
			continue
		}
		r.next = next
		r.units++
		processed++
	}

	switch {
	case r.next == nil && r.pending != nil:
		r.phase = PhaseReadyToCommit
		r.commitRoot()
	case r.next != nil:
		r.observer.OnYield(r.info(), processed)
	}

	if r.next != nil || r.pending != nil {
		r.arm()
	}
}

// performUnitOfWork evaluates n, reconciles its children and returns the
// next node to process.
//
// If evaluating n restarts the cycle, n belongs to the discarded tree: its
// children are not reconciled and the new cycle's first unit is returned.
func (r *Root) performUnitOfWork(n *Node) *Node {
	gen := r.cycle
	switch n.Type.Kind {
	case vdom.KindFunc:
		r.updateFunctionComponent(n, gen)
	case vdom.KindStateful:
		r.updateStatefulComponent(n, gen)
	case vdom.KindHost, vdom.KindText:
		r.updateHostComponent(n)
	default:
		// Fragments and unknown kinds are plain containers.
		r.reconcileChildren(n, n.Props.Children())
	}
	if r.cycle != gen {
		return r.next
	}
	r.observer.OnUnit(r.info(), n.Type.Kind)
	return nextUnit(n)
}

func (r *Root) updateFunctionComponent(n *Node, gen uint64) {
	fn := n.Type.Component()
	var el *vdom.Element
	r.evaluate(n, func() {
		if fn != nil {
			el = fn(n.Props)
		}
	})
	if r.cycle == gen {
		r.reconcileChildren(n, single(el))
	}
}

func (r *Root) updateStatefulComponent(n *Node, gen uint64) {
	ctor := n.Type.Constructor()
	var el *vdom.Element
	r.evaluate(n, func() {
		if ctor != nil {
			el = renderStateful(ctor, n.Props)
		}
	})
	if r.cycle == gen {
		r.reconcileChildren(n, single(el))
	}
}

func (r *Root) updateHostComponent(n *Node) {
	if n.hostNode == nil {
		r.createHostNode(n)
	}
	r.reconcileChildren(n, n.Props.Children())
}

// evaluate runs fn with n as the current component.
func (r *Root) evaluate(n *Node, fn func()) {
	n.hooks = nil
	leave := enterComponent(r, n)
	defer leave()
	fn()
}

func single(el *vdom.Element) []*vdom.Element {
	if el == nil {
		return nil
	}
	return []*vdom.Element{el}
}
