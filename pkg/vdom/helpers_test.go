package vdom

import "testing"

func TestConditionals(t *testing.T) {
	node := Span()

	if If(true, node) != node {
		t.Error("If(true) should return the node")
	}
	if If(false, node) != nil {
		t.Error("If(false) should return nil")
	}

	other := Div()
	if IfElse(true, node, other) != node || IfElse(false, node, other) != other {
		t.Error("IfElse picked the wrong branch")
	}

	called := false
	When(false, func() *Element { called = true; return node })
	if called {
		t.Error("When(false) should not evaluate")
	}
	if When(true, func() *Element { return node }) != node {
		t.Error("When(true) should return the result")
	}
}

func TestRange(t *testing.T) {
	items := []string{"a", "skip", "c"}
	out := Range(items, func(i int, s string) *Element {
		if s == "skip" {
			return nil
		}
		return Li(s)
	})

	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[1].Children()[0].Text() != "c" {
		t.Errorf("second item text = %q, want c", out[1].Children()[0].Text())
	}
}
