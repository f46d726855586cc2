package fiber

import (
	"sync"

	"github.com/petermattis/goid"

	"github.com/vango-dev/weft/internal/errors"
)

// renderContext is the component under evaluation on one goroutine.
type renderContext struct {
	root  *Root
	node  *Node
	index int // next hook slot
}

// renderContexts maps goroutine IDs to the active renderContext. An entry
// exists only while a root evaluates a component on that goroutine.
var renderContexts sync.Map

// enterComponent makes n the current component of this goroutine and returns
// a function restoring the previous state.
func enterComponent(root *Root, n *Node) func() {
	gid := goid.Get()
	prev, hadPrev := renderContexts.Load(gid)
	renderContexts.Store(gid, &renderContext{root: root, node: n})
	return func() {
		if hadPrev {
			renderContexts.Store(gid, prev)
		} else {
			renderContexts.Delete(gid)
		}
	}
}

// currentContext returns the active renderContext or panics with E001.
func currentContext(hook string) *renderContext {
	if v, ok := renderContexts.Load(goid.Get()); ok {
		return v.(*renderContext)
	}
	panic(errors.New("E001").
		WithDetail(hook + " was called while no component was being evaluated.").
		WithSuggestion("Call hooks from the body of a function component or a stateful component's Render method."))
}

// nextSlot returns the index of the next hook slot and the slot at the same
// position in the alternate, if any.
func (c *renderContext) nextSlot() (int, *hookSlot) {
	i := c.index
	c.index++
	if alt := c.node.alternate; alt != nil && i < len(alt.hooks) {
		return i, alt.hooks[i]
	}
	return i, nil
}

// InComponent reports whether the calling goroutine is evaluating a
// component.
func InComponent() bool {
	_, ok := renderContexts.Load(goid.Get())
	return ok
}
