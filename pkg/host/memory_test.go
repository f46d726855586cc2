package host

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/weft/internal/errors"
)

func opStrings(ops []Op) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.String()
	}
	return out
}

func TestMemory_RecordsOps(t *testing.T) {
	m := NewMemory()
	root := m.NewContainer("div")

	ul := m.CreateElement("ul")
	a := m.CreateElement("li")
	b := m.CreateElement("li")
	txt := m.CreateText("x")
	m.SetProperty(ul, "class", "list")
	m.Insert(root, ul, nil)
	m.Insert(ul, b, nil)
	m.Insert(ul, a, b)
	m.Insert(a, txt, nil)
	m.ClearProperty(ul, "class")
	m.Remove(ul, b)

	want := []string{
		"CreateElement #2 <ul>",
		"CreateElement #3 <li>",
		"CreateElement #4 <li>",
		`CreateText #5 "x"`,
		"SetProperty #2 class=list",
		"Insert #2 into #1",
		"Insert #4 into #2",
		"Insert #3 into #2 before #4",
		"Insert #5 into #3",
		"ClearProperty #2 class",
		"Remove #4 from #2",
	}
	if diff := cmp.Diff(want, opStrings(m.Ops())); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}

	if got := root.TextContent(); got != "x" {
		t.Errorf("TextContent() = %q", got)
	}
	if _, ok := ul.(*Element).Props["class"]; ok {
		t.Error("class not cleared")
	}

	m.Reset()
	if len(m.Ops()) != 0 {
		t.Error("Reset did not clear the log")
	}
}

func TestMemory_InsertMoves(t *testing.T) {
	m := NewMemory()
	root := m.NewContainer("div")
	a := m.CreateElement("a")
	b := m.CreateElement("b")
	m.Insert(root, a, nil)
	m.Insert(root, b, nil)
	m.Insert(root, b, a)

	got := []string{root.Children[0].Tag, root.Children[1].Tag}
	if diff := cmp.Diff([]string{"b", "a"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestMemory_TextProperty(t *testing.T) {
	m := NewMemory()
	n := m.CreateText("a")
	m.SetProperty(n, "value", "b")
	if got := n.(*Element).Text; got != "b" {
		t.Errorf("Text = %q, want b", got)
	}
}

func TestMemory_DispatchBubbles(t *testing.T) {
	m := NewMemory()
	root := m.NewContainer("div")
	form := m.CreateElement("form")
	input := m.CreateElement("input")
	m.Insert(root, form, nil)
	m.Insert(form, input, nil)

	var got Event
	m.AddListener(form, "input", func(ev Event) { got = ev })

	id := input.(*Element).ID
	if err := m.Dispatch(id, Event{Type: "input", Value: "hi"}); err != nil {
		t.Fatal(err)
	}
	if got.Value != "hi" || got.Target != input {
		t.Errorf("listener got %+v", got)
	}
	if v := input.(*Element).Props["value"]; v != "hi" {
		t.Errorf("value = %v, want hi", v)
	}

	if err := m.Dispatch(id, Event{Type: "click"}); !errors.HasCode(err, "E062") {
		t.Errorf("click error = %v, want E062", err)
	}
	if err := m.Dispatch(999, Event{Type: "click"}); !errors.HasCode(err, "E062") {
		t.Errorf("unknown id error = %v, want E062", err)
	}

	m.RemoveListener(form, "input", nil)
	if err := m.Dispatch(id, Event{Type: "input"}); !errors.HasCode(err, "E062") {
		t.Errorf("after removal error = %v, want E062", err)
	}
}

func TestMemory_ForeignNodePanics(t *testing.T) {
	m := NewMemory()
	defer func() {
		err, _ := recover().(error)
		if !errors.HasCode(err, "E002") {
			t.Errorf("recovered %v, want E002", err)
		}
	}()
	m.SetProperty("not a node", "x", 1)
}
