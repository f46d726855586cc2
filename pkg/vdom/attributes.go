package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id property.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class property, joining multiple classes with spaces.
func Class(classes ...string) Attr {
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return attr("class", strings.Join(parts, " "))
}

// StyleAttr sets the style property.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* property.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Prop sets an arbitrary property.
func Prop(key string, value any) Attr { return attr(key, value) }

// Form properties

// InputType sets the type property of inputs and buttons.
func InputType(t string) Attr { return attr("type", t) }

// Value sets the value property.
func Value(v string) Attr { return attr("value", v) }

// Placeholder sets the placeholder property.
func Placeholder(p string) Attr { return attr("placeholder", p) }

// Disabled sets the disabled property.
func Disabled(d bool) Attr { return attr("disabled", d) }

// Checked sets the checked property.
func Checked(c bool) Attr { return attr("checked", c) }

// Media properties

// Src sets the src property.
func Src(src string) Attr { return attr("src", src) }

// Alt sets the alt property.
func Alt(alt string) Attr { return attr("alt", alt) }
