package render

// voidElements have no closing tag and never render children.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// inlineElements stay on one line in pretty output.
var inlineElements = map[string]bool{
	"a": true, "b": true, "br": true, "button": true, "code": true,
	"em": true, "i": true, "label": true, "li": true, "small": true,
	"span": true, "strong": true, "h1": true, "h2": true, "h3": true,
	"p": true, "option": true, "textarea": true,
}

// booleanAttrs render as a bare name when true and are omitted when false.
var booleanAttrs = map[string]bool{
	"autofocus": true, "autoplay": true, "checked": true, "controls": true,
	"disabled": true, "hidden": true, "loop": true, "multiple": true,
	"muted": true, "open": true, "readonly": true, "required": true,
	"selected": true,
}
