package vdom

import (
	"fmt"
	"strconv"
)

// CreateElement builds an element of type t. The props map is copied, so the
// caller may reuse it. Children are normalized:
//   - *Element is kept, nil is dropped
//   - []*Element and []any are flattened
//   - anything else becomes a text node holding its string form
func CreateElement(t Type, props Props, children ...any) *Element {
	p := make(Props, len(props)+1)
	for k, v := range props {
		if k == ChildrenKey {
			continue
		}
		p[k] = v
	}
	p[ChildrenKey] = normalizeChildren(make([]*Element, 0, len(children)), children)
	return &Element{Type: t, Props: p}
}

func normalizeChildren(dst []*Element, children []any) []*Element {
	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *Element:
			if v != nil {
				dst = append(dst, v)
			}
		case []*Element:
			for _, c := range v {
				if c != nil {
					dst = append(dst, c)
				}
			}
		case []any:
			dst = normalizeChildren(dst, v)
		default:
			dst = append(dst, Text(toString(v)))
		}
	}
	return dst
}

// Text creates a text node.
func Text(content string) *Element {
	return &Element{
		Type: TextType,
		Props: Props{
			TextKey:     content,
			ChildrenKey: []*Element{},
		},
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Element {
	return Text(fmt.Sprintf(format, args...))
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
