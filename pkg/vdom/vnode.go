package vdom

import (
	"reflect"
	"runtime"
	"strings"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindUnknown  Kind = iota // Unsupported type, treated as a plain container
	KindHost                 // <div>, <button>, etc.
	KindText                 // Plain text node
	KindFragment             // Grouping without a host node
	KindFunc                 // Function component
	KindStateful             // Constructed component with Render()
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindHost:
		return "Host"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindFunc:
		return "Func"
	case KindStateful:
		return "Stateful"
	default:
		return "Unknown"
	}
}

const (
	// ChildrenKey is the props entry holding the ordered child elements.
	ChildrenKey = "children"

	// TextKey is the props entry holding a text node's content.
	TextKey = "value"
)

// Props holds attributes, event handlers and the children of a node.
type Props map[string]any

// Children returns the ordered child elements stored under ChildrenKey.
func (p Props) Children() []*Element {
	if p == nil {
		return nil
	}
	children, _ := p[ChildrenKey].([]*Element)
	return children
}

// String returns the value under key formatted as a string, or "" if absent.
func (p Props) String(key string) string {
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return toString(v)
	}
}

// Attributes returns a copy of p without the children entry.
func (p Props) Attributes() Props {
	out := make(Props, len(p))
	for k, v := range p {
		if k == ChildrenKey {
			continue
		}
		out[k] = v
	}
	return out
}

// FuncComponent renders props into a single element. Returning nil renders
// nothing; a Fragment groups several elements.
type FuncComponent func(props Props) *Element

// Stateful is a constructed component. The engine builds a fresh instance
// for every render through its Constructor, then calls Render.
type Stateful interface {
	Render() *Element
}

// Constructor builds a Stateful component from props.
type Constructor func(props Props) Stateful

// Type is the tagged variant describing what an Element is.
type Type struct {
	Kind Kind
	Tag  string // For KindHost

	fn   FuncComponent
	ctor Constructor
}

var (
	// TextType is the type of text nodes.
	TextType = Type{Kind: KindText}

	// Fragment groups children without introducing a host node.
	Fragment = Type{Kind: KindFragment}
)

// Tag returns the type of a host element with the given tag name.
func Tag(name string) Type {
	return Type{Kind: KindHost, Tag: name}
}

// Func returns the type of a function component.
func Func(fn FuncComponent) Type {
	return Type{Kind: KindFunc, fn: fn}
}

// Ctor returns the type of a stateful component built by ctor.
func Ctor(ctor Constructor) Type {
	return Type{Kind: KindStateful, ctor: ctor}
}

// Component returns the function of a KindFunc type.
func (t Type) Component() FuncComponent {
	return t.fn
}

// Constructor returns the constructor of a KindStateful type.
func (t Type) Constructor() Constructor {
	return t.ctor
}

// Same reports whether t and o describe the same type. Components are
// compared by function identity.
func (t Type) Same(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindHost:
		return t.Tag == o.Tag
	case KindFunc:
		return funcPointer(t.fn) == funcPointer(o.fn)
	case KindStateful:
		return funcPointer(t.ctor) == funcPointer(o.ctor)
	default:
		return t.Tag == o.Tag
	}
}

// String returns a short debugging name for the type.
func (t Type) String() string {
	switch t.Kind {
	case KindHost:
		return t.Tag
	case KindText:
		return "#text"
	case KindFragment:
		return "#fragment"
	case KindFunc:
		return funcName(t.fn)
	case KindStateful:
		return funcName(t.ctor)
	default:
		if t.Tag != "" {
			return t.Tag
		}
		return "#unknown"
	}
}

func funcPointer(fn any) uintptr {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return 0
	}
	return v.Pointer()
}

func funcName(fn any) string {
	p := funcPointer(fn)
	if p == 0 {
		return "<nil>"
	}
	f := runtime.FuncForPC(p)
	if f == nil {
		return "<func>"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Element is the immutable virtual node.
type Element struct {
	Type  Type
	Props Props
}

// Children returns the element's children.
func (e *Element) Children() []*Element {
	if e == nil {
		return nil
	}
	return e.Props.Children()
}

// Text returns the content of a text element.
func (e *Element) Text() string {
	if e == nil || e.Type.Kind != KindText {
		return ""
	}
	return e.Props.String(TextKey)
}

// Attr represents a single property.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}
