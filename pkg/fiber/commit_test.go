package fiber

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/weft/pkg/host"
	"github.com/vango-dev/weft/pkg/vdom"
)

func TestReplaceOnTypeChange(t *testing.T) {
	var log []string
	a := func(vdom.Props) *vdom.Element {
		UseEffect(func() Cleanup {
			log = append(log, "A mount")
			return func() { log = append(log, "A cleanup") }
		}, []any{})
		return vdom.Span("a")
	}

	f := newFixture(t)
	f.render(vdom.Div(vdom.Comp(a)))
	oldSpan := f.container.ByTag("span")[0]

	// Same component type, different index: positional matching remounts it.
	f.render(vdom.Div(vdom.P("new"), vdom.Comp(a)))

	if diff := cmp.Diff([]string{"A mount", "A cleanup", "A mount"}, log); diff != "" {
		t.Errorf("effect log (-want +got):\n%s", diff)
	}
	if got := f.container.ByTag("span")[0]; got == oldSpan {
		t.Error("span host node was reused across indices")
	}
	if oldSpan.Parent != nil {
		t.Error("old span still mounted")
	}
	if f.html() != "<div><p>new</p><span>a</span></div>" {
		t.Errorf("html = %q", f.html())
	}
	if last := f.commits[len(f.commits)-1]; last.Deletions != 1 || last.Cleanups != 1 {
		t.Errorf("commit stats = %+v", last)
	}
}

func TestReplacedNodeKeepsPosition(t *testing.T) {
	f := newFixture(t)
	f.render(vdom.Div(vdom.P("1"), vdom.Span("2"), vdom.P("3")))
	f.ops()

	f.render(vdom.Div(vdom.P("1"), vdom.Strong("2"), vdom.P("3")))

	want := []string{
		"CreateElement #9 <strong>",
		`CreateText #10 "2"`,
		"Remove #5 from #2",
		"Insert #9 into #2 before #7",
		"Insert #10 into #9",
	}
	if diff := cmp.Diff(want, f.ops()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
	if f.html() != "<div><p>1</p><strong>2</strong><p>3</p></div>" {
		t.Errorf("html = %q", f.html())
	}
}

func TestInsertBeforeFragmentContent(t *testing.T) {
	pair := func(vdom.Props) *vdom.Element { return vdom.Frag(vdom.Li("b"), vdom.Li("c")) }

	f := newFixture(t)
	f.render(vdom.Ul(vdom.Span("x"), vdom.Comp(pair)))
	f.render(vdom.Ul(vdom.Li("a"), vdom.Comp(pair)))

	if got := f.html(); got != "<ul><li>a</li><li>b</li><li>c</li></ul>" {
		t.Errorf("html = %q", got)
	}
}

func TestListenerRewiring(t *testing.T) {
	var calls []string
	f := newFixture(t)
	f.render(vdom.Button(vdom.Class("a"), vdom.OnClick(func() { calls = append(calls, "first") })))
	btn := f.container.ByTag("button")[0]
	f.ops()

	f.render(vdom.Button(vdom.OnClick(func(ev host.Event) { calls = append(calls, "second:"+ev.Type) })))

	want := []string{
		"RemoveListener #2 click",
		"ClearProperty #2 class",
		"AddListener #2 click",
	}
	if diff := cmp.Diff(want, f.ops()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}

	f.click(btn)
	if diff := cmp.Diff([]string{"second:click"}, calls); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}
}

func TestRemovedHandlerIsDetached(t *testing.T) {
	f := newFixture(t)
	f.render(vdom.Button(vdom.OnClick(func() {}), "go"))
	btn := f.container.ByTag("button")[0]

	f.render(vdom.Button("go"))

	if len(btn.Listeners) != 0 {
		t.Errorf("listeners = %v", btn.Listeners)
	}
	if err := f.host.Dispatch(btn.ID, host.Event{Type: "click"}); err == nil {
		t.Error("Dispatch succeeded without a listener")
	}
}

func TestDeletingComponentRemovesAllHostChildren(t *testing.T) {
	cleaned := 0
	many := func(vdom.Props) *vdom.Element {
		UseEffect(func() Cleanup { return func() { cleaned++ } }, []any{})
		return vdom.Frag(vdom.Li("1"), vdom.Li("2"), vdom.Li("3"))
	}

	f := newFixture(t)
	f.render(vdom.Ul(vdom.Comp(many), vdom.Li("tail")))
	f.render(vdom.Ul(vdom.Li("tail")))

	if got := f.html(); got != "<ul><li>tail</li></ul>" {
		t.Errorf("html = %q", got)
	}
	if cleaned != 1 {
		t.Errorf("cleanups = %d, want 1", cleaned)
	}
}

func TestEffectCleanupRunsBeforeRerun(t *testing.T) {
	var log []string
	var set func(int)
	comp := func(vdom.Props) *vdom.Element {
		n, s := UseState(0)
		set = s
		UseEffect(func() Cleanup {
			log = append(log, "effect", strconv.Itoa(n))
			return func() { log = append(log, "cleanup") }
		}, []any{n})
		return vdom.P(n)
	}

	f := newFixture(t)
	f.render(vdom.Comp(comp))
	set(1)
	f.flush()

	want := []string{"effect", "0", "cleanup", "effect", "1"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("log (-want +got):\n%s", diff)
	}
}
