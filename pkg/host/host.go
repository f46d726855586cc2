package host

// Node is an opaque handle into the live host tree. Only the Platform that
// created a node knows what it is.
type Node any

// Event is delivered to listeners.
type Event struct {
	// Type is the event name without the "on" prefix ("click", "input").
	Type string

	// Target is the node the event was dispatched to.
	Target Node

	// Value carries the current value of form controls.
	Value string

	// Data holds additional platform-specific payload.
	Data map[string]any
}

// Listener handles a host event.
type Listener func(Event)

// Platform is the contract weft requires from the live host tree. It is the
// only component that touches host nodes; the engine never inspects a Node.
type Platform interface {
	// CreateElement allocates a live node for a tag.
	CreateElement(tag string) Node

	// CreateText allocates a text node.
	CreateText(value string) Node

	// SetProperty sets a named property.
	SetProperty(n Node, name string, value any)

	// ClearProperty resets a named property to empty.
	ClearProperty(n Node, name string)

	// AddListener attaches a listener for the named event.
	AddListener(n Node, event string, l Listener)

	// RemoveListener detaches the listener for the named event.
	RemoveListener(n Node, event string, l Listener)

	// Insert places child under parent before the given sibling. A nil
	// before appends.
	Insert(parent, child, before Node)

	// Remove detaches child from parent.
	Remove(parent, child Node)
}
