package demo

import (
	"github.com/vango-dev/weft/pkg/fiber"
	"github.com/vango-dev/weft/pkg/vdom"
)

// Counter is the smallest stateful demo. The "start" prop sets the initial
// count.
type Counter struct {
	fiber.Component
}

// NewCounter constructs a Counter.
func NewCounter(props vdom.Props) vdom.Stateful {
	c := &Counter{}
	start, _ := props["start"].(int)
	c.State = map[string]any{"count": start}
	return c
}

// Render implements vdom.Stateful.
func (c *Counter) Render() *vdom.Element {
	n, _ := c.Get("count").(int)
	return vdom.Div(vdom.Class("counter"),
		vdom.Span(vdom.Class("count"), vdom.Textf("Count: %d", n)),
		vdom.Button(vdom.Class("dec"), vdom.OnClick(func() {
			c.SetState(map[string]any{"count": n - 1})
		}), "-"),
		vdom.Button(vdom.Class("inc"), vdom.OnClick(func() {
			c.SetState(map[string]any{"count": n + 1})
		}), "+"),
	)
}
