package render

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/weft/pkg/host"
)

// IDAttr is the attribute carrying the host node ID of elements that have
// listeners, so a client can address events to them.
const IDAttr = "data-wid"

// Config configures the HTML renderer.
type Config struct {
	// Pretty enables indented output. Inline elements stay on one line.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// EventIDs adds IDAttr and data-on attributes to elements with listeners.
	EventIDs bool
}

// Renderer serializes host.Memory trees to HTML.
type Renderer struct {
	config Config
}

// New creates a Renderer with the given configuration.
func New(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders el and its subtree.
func (r *Renderer) RenderToString(el *host.Element) string {
	var b strings.Builder
	_ = r.RenderToWriter(&b, el)
	return b.String()
}

// InnerHTML renders the children of el, typically a container.
func (r *Renderer) InnerHTML(el *host.Element) string {
	var b strings.Builder
	if el != nil {
		for _, c := range el.Children {
			_ = r.renderNode(&b, c, 0, r.config.Pretty)
		}
	}
	return b.String()
}

// RenderToWriter streams el and its subtree to w.
func (r *Renderer) RenderToWriter(w io.Writer, el *host.Element) error {
	if el == nil {
		return nil
	}
	return r.renderNode(w, el, 0, r.config.Pretty)
}

// HTML renders the children of el compactly.
func HTML(el *host.Element) string {
	return New(Config{}).InnerHTML(el)
}

// renderNode renders el at depth. Children of inline elements are rendered
// compactly even in pretty mode.
func (r *Renderer) renderNode(w io.Writer, el *host.Element, depth int, pretty bool) error {
	if pretty {
		r.writeIndent(w, depth)
	}
	if el.IsText {
		if _, err := io.WriteString(w, escapeHTML(el.Text)); err != nil {
			return err
		}
		if pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	if _, err := fmt.Fprintf(w, "<%s", el.Tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, el); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if voidElements[el.Tag] {
		if pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	block := pretty && len(el.Children) > 0 && !inlineElements[el.Tag]
	if block {
		io.WriteString(w, "\n")
	}
	for _, c := range el.Children {
		if err := r.renderNode(w, c, depth+1, block); err != nil {
			return err
		}
	}
	if block {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", el.Tag); err != nil {
		return err
	}
	if pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderAttributes renders properties in sorted order. Functions are never
// rendered; booleans follow HTML boolean-attribute rules.
func (r *Renderer) renderAttributes(w io.Writer, el *host.Element) error {
	keys := make([]string, 0, len(el.Props))
	for k := range el.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := el.Props[key]
		if value == nil || reflect.TypeOf(value).Kind() == reflect.Func {
			continue
		}

		if b, ok := value.(bool); ok && booleanAttrs[key] {
			if b {
				if _, err := fmt.Fprintf(w, " %s", key); err != nil {
					return err
				}
			}
			continue
		}

		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(attrToString(value))); err != nil {
			return err
		}
	}

	if r.config.EventIDs && len(el.Listeners) > 0 {
		events := make([]string, 0, len(el.Listeners))
		for ev := range el.Listeners {
			events = append(events, ev)
		}
		sort.Strings(events)
		if _, err := fmt.Fprintf(w, ` %s="%d" data-on="%s"`, IDAttr, el.ID, strings.Join(events, " ")); err != nil {
			return err
		}
	}

	return nil
}

// attrToString converts a property value to an attribute string.
func attrToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat(r.config.Indent, depth))
}
