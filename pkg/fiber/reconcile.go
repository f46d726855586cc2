package fiber

import "github.com/vango-dev/weft/pkg/vdom"

// reconcileChildren walks the alternate's children and elements in lock step
// and links the resulting work nodes under wip. Matching is purely
// positional: a node keeps its host node only if the node at the same index
// had the same type. Old nodes without a same-typed counterpart go to the
// deletion set.
func (r *Root) reconcileChildren(wip *Node, elements []*vdom.Element) {
	var old *Node
	if wip.alternate != nil {
		old = wip.alternate.child
	}

	wip.child = nil
	var prev *Node
	for i := 0; i < len(elements) || old != nil; i++ {
		var el *vdom.Element
		if i < len(elements) {
			el = elements[i]
		}

		same := old != nil && el != nil && old.Type.Same(el.Type)

		var n *Node
		switch {
		case same:
			n = &Node{
				Type:      el.Type,
				Props:     el.Props,
				hostNode:  old.hostNode,
				parent:    wip,
				alternate: old,
				effectTag: EffectUpdate,
			}
		case el != nil:
			n = &Node{
				Type:      el.Type,
				Props:     el.Props,
				parent:    wip,
				effectTag: EffectReplace,
			}
		}

		if old != nil && !same {
			r.deletions = append(r.deletions, old)
		}
		if old != nil {
			old = old.sibling
		}

		if n == nil {
			continue
		}
		if prev == nil {
			wip.child = n
		} else {
			prev.sibling = n
		}
		prev = n
	}
}
