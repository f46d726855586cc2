package render

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/weft/pkg/host"
)

// build mounts a small tree directly on a Memory host.
func build(t *testing.T) (*host.Memory, *host.Element) {
	t.Helper()
	m := host.NewMemory()
	root := m.NewContainer("div")

	ul := m.CreateElement("ul")
	m.SetProperty(ul, "class", "tracks")
	for _, title := range []string{"Intro", "Rock & Roll"} {
		li := m.CreateElement("li")
		m.Insert(li, m.CreateText(title), nil)
		m.Insert(ul, li, nil)
	}
	m.Insert(root, ul, nil)

	btn := m.CreateElement("button")
	m.SetProperty(btn, "disabled", false)
	m.AddListener(btn, "click", func(host.Event) {})
	m.Insert(btn, m.CreateText("Play"), nil)
	m.Insert(root, btn, nil)

	input := m.CreateElement("input")
	m.SetProperty(input, "checked", true)
	m.SetProperty(input, "type", "checkbox")
	m.SetProperty(input, "handler", func() {})
	m.Insert(root, input, nil)

	return m, root
}

func TestInnerHTML_Compact(t *testing.T) {
	_, root := build(t)

	got := HTML(root)
	want := `<ul class="tracks"><li>Intro</li><li>Rock &amp; Roll</li></ul>` +
		`<button>Play</button>` +
		`<input checked type="checkbox">`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("HTML() mismatch (-want +got):\n%s", diff)
	}
}

func TestInnerHTML_Pretty(t *testing.T) {
	_, root := build(t)

	got := New(Config{Pretty: true}).InnerHTML(root)
	want := strings.Join([]string{
		`<ul class="tracks">`,
		`  <li>Intro</li>`,
		`  <li>Rock &amp; Roll</li>`,
		`</ul>`,
		`<button>Play</button>`,
		`<input checked type="checkbox">`,
		``,
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pretty InnerHTML() mismatch (-want +got):\n%s", diff)
	}
}

func TestEventIDs(t *testing.T) {
	_, root := build(t)
	btn := root.ByTag("button")[0]

	got := New(Config{EventIDs: true}).RenderToString(btn)
	want := `<button data-wid="` + itoa(btn.ID) + `" data-on="click">Play</button>`
	if got != want {
		t.Errorf("RenderToString() = %q, want %q", got, want)
	}
}

func TestRenderToString_Container(t *testing.T) {
	m := host.NewMemory()
	root := m.NewContainer("main")
	if got := New(Config{}).RenderToString(root); got != "<main></main>" {
		t.Errorf("RenderToString(empty) = %q", got)
	}
	if got := HTML(nil); got != "" {
		t.Errorf("HTML(nil) = %q", got)
	}
}

func TestAttrToString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"x", "x"},
		{true, "true"},
		{42, "42"},
		{int64(7), "7"},
		{1.5, "1.5"},
		{[]string{"a"}, "[a]"},
	}
	for _, tt := range tests {
		if got := attrToString(tt.in); got != tt.want {
			t.Errorf("attrToString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func itoa(n int) string {
	return attrToString(n)
}
