package fiber

import (
	"reflect"
	"sort"

	"github.com/vango-dev/weft/pkg/host"
	"github.com/vango-dev/weft/pkg/vdom"
)

// createHostNode allocates the host node for n and applies its props from
// empty. Fragments and components own no host node.
func (r *Root) createHostNode(n *Node) host.Node {
	switch n.Type.Kind {
	case vdom.KindHost:
		h := r.platform.CreateElement(n.Type.Tag)
		n.hostNode = h
		r.updateHostNode(n, nil)
		return h
	case vdom.KindText:
		text := n.Props.String(vdom.TextKey)
		h := r.platform.CreateText(text)
		n.hostNode = h
		r.updateHostNode(n, vdom.Props{vdom.TextKey: n.Props[vdom.TextKey]})
		return h
	default:
		return nil
	}
}

// updateHostNode brings n's host node from prev props to n.Props. Keys are
// visited in sorted order. Listeners present on both sides are detached and
// re-attached because closures cannot be compared.
func (r *Root) updateHostNode(n *Node, prev vdom.Props) {
	h := n.hostNode
	next := n.Props

	attached := make(map[string]host.Listener)
	if n.alternate != nil {
		for ev, l := range n.alternate.listeners {
			attached[ev] = l
		}
	}

	prevKeys := sortedKeys(prev)
	nextKeys := sortedKeys(next)

	// Detach listeners that are gone or being replaced.
	for _, k := range prevKeys {
		if !vdom.IsEventKey(k) {
			continue
		}
		ev := vdom.EventName(k)
		if l, ok := attached[ev]; ok {
			r.platform.RemoveListener(h, ev, l)
			delete(attached, ev)
		}
	}

	// Clear removed properties.
	for _, k := range prevKeys {
		if vdom.IsEventKey(k) {
			continue
		}
		if _, ok := next[k]; !ok {
			r.platform.ClearProperty(h, k)
		}
	}

	// Set new or changed properties.
	for _, k := range nextKeys {
		if vdom.IsEventKey(k) {
			continue
		}
		v := next[k]
		if old, ok := prev[k]; ok && propEqual(old, v) {
			continue
		}
		r.platform.SetProperty(h, k, v)
	}

	// Attach listeners.
	for _, k := range nextKeys {
		if !vdom.IsEventKey(k) {
			continue
		}
		l := toListener(next[k])
		if l == nil {
			continue
		}
		ev := vdom.EventName(k)
		r.platform.AddListener(h, ev, l)
		attached[ev] = l
	}

	n.listeners = attached
}

// sortedKeys returns the keys except children, sorted.
func sortedKeys(p vdom.Props) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		if k == vdom.ChildrenKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// toListener converts a handler prop to a Listener, or nil if it is not a
// supported handler.
func toListener(v any) host.Listener {
	switch h := v.(type) {
	case host.Listener:
		return h
	case func(host.Event):
		return h
	case func():
		if h == nil {
			return nil
		}
		return func(host.Event) { h() }
	default:
		return nil
	}
}

// propEqual reports whether a property value is unchanged.
func propEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Kind() == reflect.Func {
		return false
	}
	if va.Comparable() {
		return va.Equal(vb)
	}
	return reflect.DeepEqual(a, b)
}

// insertHostNode places n's host node under its host parent, before the next
// host sibling that is already mounted.
func (r *Root) insertHostNode(n *Node) {
	r.platform.Insert(hostParent(n), n.hostNode, hostSibling(n))
}

// removeHostNodes detaches the host subtree of a deleted node. A node
// without a host node removes each of its nearest host-owning descendants.
func (r *Root) removeHostNodes(n *Node, parent host.Node) int {
	if n.hostNode != nil {
		r.platform.Remove(parent, n.hostNode)
		return 1
	}
	removed := 0
	for c := n.child; c != nil; c = c.sibling {
		removed += r.removeHostNodes(c, parent)
	}
	return removed
}

// hostSibling finds the host node that n's host node must be inserted
// before: the first mounted host node following n under the same host
// parent. It returns nil to append.
func hostSibling(n *Node) host.Node {
	node := n
siblings:
	for {
		for node.sibling == nil {
			if node.parent == nil || node.parent.hostNode != nil {
				return nil
			}
			node = node.parent
		}
		node = node.sibling

		// Descend through fragments and components.
		for node.hostNode == nil {
			if node.effectTag == EffectReplace || node.child == nil {
				continue siblings
			}
			node = node.child
		}
		if node.effectTag != EffectReplace {
			return node.hostNode
		}
	}
}
