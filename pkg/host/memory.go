package host

import (
	"fmt"
	"strings"

	"github.com/vango-dev/weft/internal/errors"
)

// OpKind is the type of a recorded host operation.
type OpKind uint8

const (
	OpCreateElement OpKind = iota + 1
	OpCreateText
	OpSetProperty
	OpClearProperty
	OpAddListener
	OpRemoveListener
	OpInsert
	OpRemove
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpSetProperty:
		return "SetProperty"
	case OpClearProperty:
		return "ClearProperty"
	case OpAddListener:
		return "AddListener"
	case OpRemoveListener:
		return "RemoveListener"
	case OpInsert:
		return "Insert"
	case OpRemove:
		return "Remove"
	default:
		return "Unknown"
	}
}

// Op is one recorded mutation of a Memory host.
type Op struct {
	Kind   OpKind
	Target int    // Node the operation applies to
	Parent int    // For Insert and Remove
	Before int    // For Insert; 0 appends
	Name   string // Tag, property or event name
	Value  any    // Property value
}

// String renders the op compactly, e.g. "SetProperty #3 text=B".
func (o Op) String() string {
	switch o.Kind {
	case OpCreateElement:
		return fmt.Sprintf("%s #%d <%s>", o.Kind, o.Target, o.Name)
	case OpCreateText:
		return fmt.Sprintf("%s #%d %q", o.Kind, o.Target, o.Value)
	case OpSetProperty:
		return fmt.Sprintf("%s #%d %s=%v", o.Kind, o.Target, o.Name, o.Value)
	case OpClearProperty, OpAddListener, OpRemoveListener:
		return fmt.Sprintf("%s #%d %s", o.Kind, o.Target, o.Name)
	case OpInsert:
		if o.Before != 0 {
			return fmt.Sprintf("%s #%d into #%d before #%d", o.Kind, o.Target, o.Parent, o.Before)
		}
		return fmt.Sprintf("%s #%d into #%d", o.Kind, o.Target, o.Parent)
	case OpRemove:
		return fmt.Sprintf("%s #%d from #%d", o.Kind, o.Target, o.Parent)
	default:
		return o.Kind.String()
	}
}

// Element is a node of the in-memory host tree.
type Element struct {
	ID        int
	Tag       string // Empty for text nodes
	Text      string // For text nodes
	IsText    bool
	Props     map[string]any
	Listeners map[string]Listener
	Children  []*Element
	Parent    *Element
}

// TextContent returns the concatenated text of the subtree.
func (e *Element) TextContent() string {
	if e.IsText {
		return e.Text
	}
	var b strings.Builder
	for _, c := range e.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Walk visits the subtree depth-first, parents before children. Returning
// false from fn stops the walk.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// FindAll returns every element in the subtree matching pred.
func (e *Element) FindAll(pred func(*Element) bool) []*Element {
	var out []*Element
	e.Walk(func(n *Element) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// ByTag returns every element in the subtree with the given tag.
func (e *Element) ByTag(tag string) []*Element {
	return e.FindAll(func(n *Element) bool { return n.Tag == tag })
}

func (e *Element) indexOf(child *Element) int {
	for i, c := range e.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// Memory is an in-memory Platform that records every operation. It is not
// safe for concurrent use; drive it from the goroutine running the root.
type Memory struct {
	nextID     int
	containers []*Element
	ops        []Op
}

// NewMemory creates an empty in-memory host.
func NewMemory() *Memory {
	return &Memory{}
}

// NewContainer creates a detached top-level element to render into.
// Creating a container is not recorded as an operation.
func (m *Memory) NewContainer(tag string) *Element {
	c := m.newElement(tag)
	m.containers = append(m.containers, c)
	return c
}

func (m *Memory) newElement(tag string) *Element {
	m.nextID++
	return &Element{
		ID:        m.nextID,
		Tag:       tag,
		Props:     make(map[string]any),
		Listeners: make(map[string]Listener),
	}
}

func (m *Memory) record(op Op) {
	m.ops = append(m.ops, op)
}

// Ops returns the operations recorded since the last Reset.
func (m *Memory) Ops() []Op {
	return append([]Op(nil), m.ops...)
}

// Reset clears the operation log.
func (m *Memory) Reset() {
	m.ops = nil
}

// element converts a Node handle back into an *Element.
func (m *Memory) element(n Node) *Element {
	el, ok := n.(*Element)
	if !ok || el == nil {
		panic(errors.New("E002").WithDetail(fmt.Sprintf("got %T", n)))
	}
	return el
}

// CreateElement implements Platform.
func (m *Memory) CreateElement(tag string) Node {
	el := m.newElement(tag)
	m.record(Op{Kind: OpCreateElement, Target: el.ID, Name: tag})
	return el
}

// CreateText implements Platform.
func (m *Memory) CreateText(value string) Node {
	el := m.newElement("")
	el.IsText = true
	el.Text = value
	m.record(Op{Kind: OpCreateText, Target: el.ID, Value: value})
	return el
}

// SetProperty implements Platform. Text nodes store any property as their
// content.
func (m *Memory) SetProperty(n Node, name string, value any) {
	el := m.element(n)
	if el.IsText {
		el.Text = fmt.Sprint(value)
	} else {
		el.Props[name] = value
	}
	m.record(Op{Kind: OpSetProperty, Target: el.ID, Name: name, Value: value})
}

// ClearProperty implements Platform.
func (m *Memory) ClearProperty(n Node, name string) {
	el := m.element(n)
	if el.IsText {
		el.Text = ""
	} else {
		delete(el.Props, name)
	}
	m.record(Op{Kind: OpClearProperty, Target: el.ID, Name: name})
}

// AddListener implements Platform. One listener is kept per event name.
func (m *Memory) AddListener(n Node, event string, l Listener) {
	el := m.element(n)
	el.Listeners[event] = l
	m.record(Op{Kind: OpAddListener, Target: el.ID, Name: event})
}

// RemoveListener implements Platform.
func (m *Memory) RemoveListener(n Node, event string, _ Listener) {
	el := m.element(n)
	delete(el.Listeners, event)
	m.record(Op{Kind: OpRemoveListener, Target: el.ID, Name: event})
}

// Insert implements Platform. A child that already has a parent is moved.
func (m *Memory) Insert(parent, child, before Node) {
	p := m.element(parent)
	c := m.element(child)
	if c.Parent != nil {
		c.Parent.removeChild(c)
	}

	op := Op{Kind: OpInsert, Target: c.ID, Parent: p.ID}
	idx := len(p.Children)
	if before != nil {
		b := m.element(before)
		if i := p.indexOf(b); i >= 0 {
			idx = i
			op.Before = b.ID
		}
	}

	p.Children = append(p.Children, nil)
	copy(p.Children[idx+1:], p.Children[idx:])
	p.Children[idx] = c
	c.Parent = p
	m.record(op)
}

// Remove implements Platform.
func (m *Memory) Remove(parent, child Node) {
	p := m.element(parent)
	c := m.element(child)
	p.removeChild(c)
	m.record(Op{Kind: OpRemove, Target: c.ID, Parent: p.ID})
}

func (e *Element) removeChild(c *Element) {
	if i := e.indexOf(c); i >= 0 {
		e.Children = append(e.Children[:i], e.Children[i+1:]...)
	}
	c.Parent = nil
}

// Lookup finds a mounted element by ID.
func (m *Memory) Lookup(id int) (*Element, bool) {
	var found *Element
	for _, c := range m.containers {
		c.Walk(func(e *Element) bool {
			if e.ID == id {
				found = e
				return false
			}
			return true
		})
		if found != nil {
			return found, true
		}
	}
	return nil, false
}

// Dispatch delivers an event to the element with the given ID, bubbling to
// the nearest ancestor listening for it. Input and change events update the
// element's value property first, as a live form control would.
func (m *Memory) Dispatch(id int, ev Event) error {
	el, ok := m.Lookup(id)
	if !ok {
		return errors.New("E062").WithDetail(fmt.Sprintf("no mounted node #%d", id))
	}

	if (ev.Type == "input" || ev.Type == "change") && !el.IsText {
		el.Props["value"] = ev.Value
	}
	ev.Target = el

	for n := el; n != nil; n = n.Parent {
		if l, ok := n.Listeners[ev.Type]; ok {
			l(ev)
			return nil
		}
	}
	return errors.New("E062").WithDetail(fmt.Sprintf("no %q listener on #%d or its ancestors", ev.Type, id))
}
