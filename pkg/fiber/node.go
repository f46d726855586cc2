package fiber

import (
	"github.com/vango-dev/weft/pkg/host"
	"github.com/vango-dev/weft/pkg/vdom"
)

// EffectTag tells the committer what to do with a node's host node.
type EffectTag uint8

const (
	// EffectNone leaves the host node alone.
	EffectNone EffectTag = iota

	// EffectUpdate diffs the props against the alternate's.
	EffectUpdate

	// EffectReplace inserts a freshly created host node.
	EffectReplace
)

// String returns the string representation of the EffectTag.
func (t EffectTag) String() string {
	switch t {
	case EffectNone:
		return "None"
	case EffectUpdate:
		return "Update"
	case EffectReplace:
		return "Replace"
	default:
		return "Unknown"
	}
}

// Node is a work node: a virtual node extended with the bookkeeping that
// links it to the committed tree. Nodes are created fresh every cycle and
// never mutated by a later one.
type Node struct {
	Type  vdom.Type
	Props vdom.Props

	alternate *Node
	hostNode  host.Node
	effectTag EffectTag

	parent  *Node
	child   *Node
	sibling *Node

	hooks []*hookSlot

	// listeners attached to hostNode, by event name
	listeners map[string]host.Listener
}

// Alternate returns the counterpart of n in the previously committed tree.
func (n *Node) Alternate() *Node { return n.alternate }

// HostNode returns the live node owned by n, or nil for fragments and
// components.
func (n *Node) HostNode() host.Node { return n.hostNode }

// EffectTag returns the tag computed by the reconciler.
func (n *Node) EffectTag() EffectTag { return n.effectTag }

// Parent returns the parent node.
func (n *Node) Parent() *Node { return n.parent }

// Child returns the first child.
func (n *Node) Child() *Node { return n.child }

// Sibling returns the next sibling.
func (n *Node) Sibling() *Node { return n.sibling }

// Children returns the direct children in order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.child; c != nil; c = c.sibling {
		out = append(out, c)
	}
	return out
}

// HookCount returns the number of hook slots consumed by n.
func (n *Node) HookCount() int { return len(n.hooks) }

// Walk visits the subtree rooted at n depth-first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	walk(n, fn)
}

// walk is an iterative pre-order traversal bounded to the subtree of top.
func walk(top *Node, fn func(*Node)) {
	if top == nil {
		return
	}
	n := top
	for {
		fn(n)
		if n.child != nil {
			n = n.child
			continue
		}
		for n != top && n.sibling == nil {
			n = n.parent
		}
		if n == top {
			return
		}
		n = n.sibling
	}
}

// nextUnit returns the node to process after n: its child, else the sibling
// of the nearest ancestor that has one.
func nextUnit(n *Node) *Node {
	if n.child != nil {
		return n.child
	}
	for x := n; x != nil; x = x.parent {
		if x.sibling != nil {
			return x.sibling
		}
	}
	return nil
}

// hostParent returns the host node of the nearest ancestor that owns one.
func hostParent(n *Node) host.Node {
	for p := n.parent; p != nil; p = p.parent {
		if p.hostNode != nil {
			return p.hostNode
		}
	}
	return nil
}
