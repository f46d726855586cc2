package fiber

import "github.com/vango-dev/weft/pkg/vdom"

// Component is the base of stateful components. Embed it in a struct whose
// constructor sets the initial State, and implement Render:
//
//	type Counter struct{ fiber.Component }
//
//	func NewCounter(props vdom.Props) vdom.Stateful {
//	    c := &Counter{}
//	    c.State = map[string]any{"count": 0}
//	    return c
//	}
//
//	func (c *Counter) Render() *vdom.Element {
//	    n := c.Get("count").(int)
//	    return vdom.Button(vdom.OnClick(func() {
//	        c.SetState(map[string]any{"count": n + 1})
//	    }), n)
//	}
//
// The component is constructed on every render; its state lives in a state
// hook, so State holds the current value by the time Render runs.
type Component struct {
	Props vdom.Props
	State any

	setState func(any)
}

func (c *Component) component() *Component { return c }

// SetState queues an update. Map updates are merged into map state.
func (c *Component) SetState(update any) {
	if c.setState != nil {
		c.setState(update)
	}
}

// Get returns a key of map state, or nil.
func (c *Component) Get(key string) any {
	if m, ok := asMap(c.State); ok {
		return m[key]
	}
	return nil
}

// embedsComponent is satisfied by any type embedding Component.
type embedsComponent interface {
	component() *Component
}

// renderStateful constructs a stateful component, binds its state hook and
// renders it. Must run inside enterComponent.
func renderStateful(ctor vdom.Constructor, props vdom.Props) *vdom.Element {
	inst := ctor(props)
	if inst == nil {
		return nil
	}
	if ec, ok := inst.(embedsComponent); ok {
		base := ec.component()
		state, set := UseStateAny(base.State)
		base.Props = props
		base.State = state
		base.setState = set
	}
	return inst.Render()
}
