package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/weft/pkg/fiber"
	"github.com/vango-dev/weft/pkg/host"
	"github.com/vango-dev/weft/pkg/render"
	"github.com/vango-dev/weft/pkg/scheduler"
	"github.com/vango-dev/weft/pkg/vdom"
)

// Harness mounts trees on an in-memory host driven by a manual scheduler.
type Harness struct {
	t testing.TB

	Host      *host.Memory
	Container *host.Element
	Scheduler *scheduler.Manual
	Root      *fiber.Root
}

// New creates a harness with an empty container. Options are passed to the
// root.
//
// Example:
//
//	h := vtest.New(t)
//	h.Render(vdom.Comp(TodoList))
//	h.ExpectContains("No tasks")
func New(t testing.TB, opts ...fiber.Option) *Harness {
	m := host.NewMemory()
	c := m.NewContainer("div")
	s := scheduler.NewManual()
	return &Harness{
		t:         t,
		Host:      m,
		Container: c,
		Scheduler: s,
		Root:      fiber.NewRoot(c, m, s, opts...),
	}
}

// Render renders el and flushes all resulting work.
func (h *Harness) Render(el *vdom.Element) *Harness {
	h.t.Helper()
	h.Root.Render(el)
	h.Flush()
	return h
}

// Flush runs idle periods until no work is left. It fails the test if the
// root keeps scheduling work.
func (h *Harness) Flush() {
	h.t.Helper()
	h.Scheduler.RunUntilIdle(100)
	if h.Scheduler.Pending() > 0 {
		h.t.Fatalf("root still has work after 100 idle periods")
	}
}

// Step grants one idle period allowing units units of work.
func (h *Harness) Step(units int) bool {
	return h.Scheduler.Step(units)
}

// HTML returns the container's inner HTML.
func (h *Harness) HTML() string {
	return render.HTML(h.Container)
}

// Text returns the container's text content.
func (h *Harness) Text() string {
	return h.Container.TextContent()
}

// ByTag returns the mounted elements with the given tag.
func (h *Harness) ByTag(tag string) []*host.Element {
	return h.Container.ByTag(tag)
}

// Find returns the first mounted element matching pred, or fails the test.
func (h *Harness) Find(pred func(*host.Element) bool) *host.Element {
	h.t.Helper()
	found := h.Container.FindAll(pred)
	if len(found) == 0 {
		h.t.Fatalf("no element matches in:\n%s", truncate(h.HTML(), 500))
	}
	return found[0]
}

// FindText returns the first element whose text content is text.
func (h *Harness) FindText(tag, text string) *host.Element {
	h.t.Helper()
	return h.Find(func(e *host.Element) bool {
		return e.Tag == tag && e.TextContent() == text
	})
}

// Dispatch delivers an event to el and flushes.
func (h *Harness) Dispatch(el *host.Element, ev host.Event) {
	h.t.Helper()
	if err := h.Host.Dispatch(el.ID, ev); err != nil {
		h.t.Fatalf("dispatch %s to #%d: %v", ev.Type, el.ID, err)
	}
	h.Flush()
}

// Click dispatches a click to el and flushes.
func (h *Harness) Click(el *host.Element) {
	h.t.Helper()
	h.Dispatch(el, host.Event{Type: "click"})
}

// Input dispatches an input event carrying value to el and flushes.
func (h *Harness) Input(el *host.Element, value string) {
	h.t.Helper()
	h.Dispatch(el, host.Event{Type: "input", Value: value})
}

// Ops returns the host operations recorded since the last ResetOps.
func (h *Harness) Ops() []host.Op {
	return h.Host.Ops()
}

// ResetOps clears the recorded host operations.
func (h *Harness) ResetOps() {
	h.Host.Reset()
}

// ExpectContains asserts that the rendered HTML contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	html := h.HTML()
	if !strings.Contains(html, expected) {
		h.t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the rendered HTML does not contain
// unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	html := h.HTML()
	if strings.Contains(html, unexpected) {
		h.t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that at least one element with tag is mounted.
func (h *Harness) ExpectElement(tag string) {
	h.t.Helper()
	if len(h.ByTag(tag)) == 0 {
		h.t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(h.HTML(), 500))
	}
}

// CountOps returns how many recorded operations have the given kind.
func CountOps(ops []host.Op, kind host.OpKind) int {
	n := 0
	for _, op := range ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// RenderToString mounts el on a fresh in-memory host and returns the
// resulting HTML.
func RenderToString(el *vdom.Element) string {
	m := host.NewMemory()
	c := m.NewContainer("div")
	s := scheduler.NewManual()
	fiber.NewRoot(c, m, s).Render(el)
	s.RunUntilIdle(100)
	return render.HTML(c)
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
