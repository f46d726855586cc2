package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// build splits variadic arguments into props and children and creates the
// element. Arguments can be: nil, Attr, []Attr, Props, or any child accepted
// by CreateElement.
func build(t Type, args []any) *Element {
	props := make(Props)
	children := make([]any, 0, len(args))

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue
		case Attr:
			if v.Key != "" {
				props[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					props[a.Key] = a.Value
				}
			}
		case Props:
			for k, val := range v {
				props[k] = val
			}
		default:
			children = append(children, v)
		}
	}

	return CreateElement(t, props, children...)
}

// El creates a host element with an arbitrary tag.
func El(tag string, args ...any) *Element { return build(Tag(tag), args) }

// Comp creates an element rendered by a function component.
func Comp(fn FuncComponent, args ...any) *Element { return build(Func(fn), args) }

// Instance creates an element rendered by a stateful component.
func Instance(ctor Constructor, args ...any) *Element { return build(Ctor(ctor), args) }

// Frag groups children without a wrapper element.
func Frag(children ...any) *Element { return build(Fragment, children) }

// Sectioning and content

func Div(args ...any) *Element     { return build(Tag("div"), args) }
func Span(args ...any) *Element    { return build(Tag("span"), args) }
func P(args ...any) *Element       { return build(Tag("p"), args) }
func Nav(args ...any) *Element     { return build(Tag("nav"), args) }
func Section(args ...any) *Element { return build(Tag("section"), args) }
func Header(args ...any) *Element  { return build(Tag("header"), args) }
func Footer(args ...any) *Element  { return build(Tag("footer"), args) }
func Main(args ...any) *Element    { return build(Tag("main"), args) }
func H1(args ...any) *Element      { return build(Tag("h1"), args) }
func H2(args ...any) *Element      { return build(Tag("h2"), args) }
func H3(args ...any) *Element      { return build(Tag("h3"), args) }
func Strong(args ...any) *Element  { return build(Tag("strong"), args) }
func Br(args ...any) *Element      { return build(Tag("br"), args) }

// Lists

func Ul(args ...any) *Element { return build(Tag("ul"), args) }
func Ol(args ...any) *Element { return build(Tag("ol"), args) }
func Li(args ...any) *Element { return build(Tag("li"), args) }

// Forms

func Form(args ...any) *Element     { return build(Tag("form"), args) }
func Input(args ...any) *Element    { return build(Tag("input"), args) }
func Button(args ...any) *Element   { return build(Tag("button"), args) }
func Label(args ...any) *Element    { return build(Tag("label"), args) }
func Textarea(args ...any) *Element { return build(Tag("textarea"), args) }

// Media

func Img(args ...any) *Element   { return build(Tag("img"), args) }
func Audio(args ...any) *Element { return build(Tag("audio"), args) }
