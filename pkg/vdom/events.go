package vdom

import "strings"

// event creates an event handler property for the named event.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) Attr {
	return Attr{Key: "on" + name, Value: handler}
}

// IsEventKey reports whether a property key denotes an event handler.
func IsEventKey(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on")
}

// EventName returns the lower-cased event name of an event key
// ("onClick" → "click").
func EventName(key string) string {
	return strings.ToLower(key[2:])
}

// Mouse events

// OnClick handles click events.
func OnClick(handler any) Attr { return event("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) Attr { return event("dblclick", handler) }

// Form events

// OnInput handles input events (fired when value changes).
func OnInput(handler any) Attr { return event("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler any) Attr { return event("change", handler) }

// OnSubmit handles form submission.
func OnSubmit(handler any) Attr { return event("submit", handler) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) Attr { return event("keydown", handler) }

// Media events

// OnEnded handles media ended events.
func OnEnded(handler any) Attr { return event("ended", handler) }
