package fiber

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/weft/internal/errors"
	"github.com/vango-dev/weft/pkg/vdom"
)

func TestApplyUpdate(t *testing.T) {
	type point struct{ X, Y int }
	var nilPtr *point
	var nilFunc func()

	tests := []struct {
		name   string
		state  any
		update any
		want   any
	}{
		{"replace scalar", 1, 2, 2},
		{"replace with other type", "a", 3, 3},
		{"merge maps", map[string]any{"a": 1, "b": 2}, map[string]any{"b": 3, "c": 4}, map[string]any{"a": 1, "b": 3, "c": 4}},
		{"merge props keeps props", vdom.Props{"a": 1}, map[string]any{"b": 2}, vdom.Props{"a": 1, "b": 2}},
		{"merge named map keeps type", namedState{"a": 1}, namedState{"b": 2}, namedState{"a": 1, "b": 2}},
		{"merge plain map into named", namedState{"a": 1}, map[string]any{"a": 3}, namedState{"a": 3}},
		{"merge typed values", map[string]int{"a": 1}, map[string]int{"b": 2}, map[string]int{"a": 1, "b": 2}},
		{"mismatched values replace", map[string]int{"a": 1}, map[string]any{"b": "x"}, map[string]any{"b": "x"}},
		{"map replaced by scalar", map[string]any{"a": 1}, 5, 5},
		{"scalar replaced by map", 5, map[string]any{"a": 1}, map[string]any{"a": 1}},
		{"struct replaces", point{1, 2}, point{3, 4}, point{3, 4}},
		{"untyped nil ignored", 7, nil, 7},
		{"nil pointer ignored", 7, nilPtr, 7},
		{"nil func ignored", 7, nilFunc, 7},
		{"nil slice is a value", []int{1}, []int(nil), []int(nil)},
		{"zero is a value", 7, 0, 0},
		{"empty string is a value", "x", "", ""},
		{"false is a value", true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyUpdate(tt.state, tt.update)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("applyUpdate() (-want +got):\n%s", diff)
			}
		})
	}
}

type namedState map[string]any

func TestComponentGetOnNamedMap(t *testing.T) {
	c := &Component{State: namedState{"count": 2}}
	if got := c.Get("count"); got != 2 {
		t.Errorf("Get(count) = %v, want 2", got)
	}
}

func TestApplyUpdate_DoesNotMutateState(t *testing.T) {
	state := map[string]any{"a": 1}
	_ = applyUpdate(state, map[string]any{"a": 2})
	if state["a"] != 1 {
		t.Errorf("state mutated: %v", state)
	}
}

func TestStateMergeLaw(t *testing.T) {
	var set func(any)
	comp := func(vdom.Props) *vdom.Element {
		s, setter := UseStateAny(map[string]any{"a": 1, "b": 1})
		set = setter
		m := s.(map[string]any)
		return vdom.P(vdom.Textf("%v %v %v", m["a"], m["b"], m["c"]))
	}

	f := newFixture(t)
	f.render(vdom.Comp(comp))

	set(map[string]any{"b": 2})
	set(map[string]any{"c": 3})
	set(map[string]any{"a": 4})
	f.flush()
	if got := f.html(); got != "<p>4 2 3</p>" {
		t.Errorf("after merges: %q", got)
	}

	// A non-mapping update replaces, later mappings merge into nothing.
	var replaced any
	comp2 := func(vdom.Props) *vdom.Element {
		s, setter := UseStateAny(map[string]any{"a": 1})
		set = setter
		replaced = s
		return nil
	}
	f2 := newFixture(t)
	f2.render(vdom.Comp(comp2))
	set(map[string]any{"b": 2})
	set("reset")
	f2.flush()
	if replaced != "reset" {
		t.Errorf("state = %v, want reset", replaced)
	}
	set(map[string]any{"c": 3})
	f2.flush()
	if diff := cmp.Diff(map[string]any{"c": 3}, replaced); diff != "" {
		t.Errorf("state after replace+merge (-want +got):\n%s", diff)
	}
}

func TestUseState_BatchedUpdatesFoldInOrder(t *testing.T) {
	var set func(int)
	renders := 0
	comp := func(vdom.Props) *vdom.Element {
		n, s := UseState(0)
		set = s
		renders++
		return vdom.Span(strconv.Itoa(n))
	}

	f := newFixture(t)
	f.render(vdom.Comp(comp))
	set(1)
	set(2)
	set(3)
	f.flush()

	if got := f.html(); got != "<span>3</span>" {
		t.Errorf("html = %q", got)
	}
	if renders != 2 {
		t.Errorf("renders = %d, want 2 (updates batched into one cycle)", renders)
	}
}

func TestUseState_QueueCompactedAfterCommit(t *testing.T) {
	var set func(string)
	comp := func(vdom.Props) *vdom.Element {
		v, s := UseState("a")
		set = s
		return vdom.Span(v)
	}

	f := newFixture(t)
	f.render(vdom.Comp(comp))
	set("b")
	set("c")
	f.flush()

	var slot *hookSlot
	for _, n := range f.committed() {
		if n.HookCount() > 0 {
			slot = n.hooks[0]
		}
	}
	if slot == nil {
		t.Fatal("no state slot found")
	}
	if len(slot.queue.updates) != 0 || slot.queue.base != slot.read || slot.read != 2 {
		t.Errorf("queue = %+v, read = %d", *slot.queue, slot.read)
	}
	if slot.state != "c" {
		t.Errorf("state = %v", slot.state)
	}
}

func TestUseState_TypedNilState(t *testing.T) {
	type track struct{ Title string }
	var got *track
	comp := func(vdom.Props) *vdom.Element {
		tr, _ := UseState[*track](nil)
		got = tr
		return nil
	}
	newFixture(t).render(vdom.Comp(comp))
	if got != nil {
		t.Errorf("state = %v, want nil", got)
	}
}

func TestHookOutsideComponentPanics(t *testing.T) {
	for name, call := range map[string]func(){
		"UseState":    func() { UseState(0) },
		"UseStateAny": func() { UseStateAny(0) },
		"UseEffect":   func() { UseEffect(func() Cleanup { return nil }, nil) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.HasCode(err, "E001") {
					t.Errorf("recovered %v, want E001", r)
				}
			}()
			call()
		})
	}
	if InComponent() {
		t.Error("InComponent() = true outside a render")
	}
}

// Hooks are matched by call order. A component that calls hooks
// conditionally reads another hook's slot; this is a known limitation.
func TestHookOrderLimitation(t *testing.T) {
	comp := func(p vdom.Props) *vdom.Element {
		if p["first"] == true {
			UseState("first")
		}
		second, _ := UseState("second")
		return vdom.Span(second)
	}

	f := newFixture(t)
	f.render(vdom.Comp(comp, vdom.Prop("first", true)))
	if got := f.html(); got != "<span>second</span>" {
		t.Fatalf("html = %q", got)
	}

	f.render(vdom.Comp(comp, vdom.Prop("first", false)))
	if got := f.html(); got != "<span>first</span>" {
		t.Errorf("html = %q, want the first slot's state", got)
	}
}

func TestDepsChanged(t *testing.T) {
	m := map[string]int{}
	s := []int{1, 2}
	p := &struct{}{}
	type pair struct{ A, B int }

	tests := []struct {
		name string
		prev []any
		next []any
		want bool
	}{
		{"nil prev", nil, []any{1}, true},
		{"nil next", []any{1}, nil, true},
		{"both empty", []any{}, []any{}, false},
		{"length differs", []any{1}, []any{1, 2}, true},
		{"same values", []any{1, "a", true}, []any{1, "a", true}, false},
		{"value differs", []any{1, "a"}, []any{1, "b"}, true},
		{"type differs", []any{1}, []any{int64(1)}, true},
		{"same map", []any{m}, []any{m}, false},
		{"other map", []any{m}, []any{map[string]int{}}, true},
		{"same slice", []any{s}, []any{s}, false},
		{"resliced", []any{s}, []any{s[:1]}, true},
		{"same pointer", []any{p}, []any{p}, false},
		{"struct value", []any{pair{1, 2}}, []any{pair{1, 2}}, false},
		{"func never equal", []any{func() {}}, []any{func() {}}, true},
		{"nil entries", []any{nil}, []any{nil}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := depsChanged(tt.prev, tt.next); got != tt.want {
				t.Errorf("depsChanged() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEffectDependencyLaw(t *testing.T) {
	var log []string
	comp := func(p vdom.Props) *vdom.Element {
		dep := p["dep"]
		UseEffect(func() Cleanup {
			log = append(log, "always")
			return func() { log = append(log, "always cleanup") }
		}, nil)
		UseEffect(func() Cleanup {
			log = append(log, "dep "+vdom.Props{"v": dep}.String("v"))
			return func() { log = append(log, "dep cleanup") }
		}, []any{dep})
		UseEffect(func() Cleanup {
			log = append(log, "mount")
			return func() { log = append(log, "unmount") }
		}, []any{})
		return nil
	}

	f := newFixture(t)
	step := func(el *vdom.Element, want ...string) {
		t.Helper()
		log = nil
		f.render(el)
		if diff := cmp.Diff(want, log); diff != "" {
			t.Errorf("effects (-want +got):\n%s", diff)
		}
	}

	step(vdom.Comp(comp, vdom.Prop("dep", 1)), "always", "dep 1", "mount")
	step(vdom.Comp(comp, vdom.Prop("dep", 1)), "always cleanup", "always")
	step(vdom.Comp(comp, vdom.Prop("dep", 2)), "always cleanup", "always", "dep cleanup", "dep 2")
	step(vdom.Comp(comp, vdom.Prop("dep", 2)), "always cleanup", "always")
	step(nil, "always cleanup", "dep cleanup", "unmount")
}

func TestEffectsRunAfterHostMutationsInTreeOrder(t *testing.T) {
	var log []string
	f := newFixture(t)

	child := func(p vdom.Props) *vdom.Element {
		name := p.String("name")
		UseEffect(func() Cleanup {
			// The host tree is complete when effects run.
			log = append(log, name+":"+f.html())
			return nil
		}, []any{})
		return vdom.Span(name)
	}
	parent := func(vdom.Props) *vdom.Element {
		UseEffect(func() Cleanup {
			log = append(log, "parent")
			return nil
		}, []any{})
		return vdom.Div(vdom.Comp(child, vdom.Prop("name", "a")), vdom.Comp(child, vdom.Prop("name", "b")))
	}

	f.render(vdom.Comp(parent))

	full := "<div><span>a</span><span>b</span></div>"
	want := []string{"parent", "a:" + full, "b:" + full}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("effect order (-want +got):\n%s", diff)
	}
}

type counterComponent struct {
	Component
}

func newCounterComponent(props vdom.Props) vdom.Stateful {
	c := &counterComponent{}
	c.State = map[string]any{"count": 0, "label": props.String("label")}
	return c
}

func (c *counterComponent) Render() *vdom.Element {
	n := c.Get("count").(int)
	return vdom.Button(
		vdom.OnClick(func() { c.SetState(map[string]any{"count": n + 1}) }),
		vdom.Textf("%s %d", c.Get("label"), n),
	)
}

type plainStateful struct{ text string }

func (p plainStateful) Render() *vdom.Element { return vdom.Text(p.text) }

func TestStatefulComponent(t *testing.T) {
	f := newFixture(t)
	f.render(vdom.Div(
		vdom.Instance(newCounterComponent, vdom.Prop("label", "clicks")),
		vdom.Instance(func(p vdom.Props) vdom.Stateful { return plainStateful{text: "!"} }),
	))
	if got := f.html(); got != "<div><button>clicks 0</button>!</div>" {
		t.Fatalf("html = %q", got)
	}

	f.click(f.container.ByTag("button")[0])
	f.click(f.container.ByTag("button")[0])
	if got := f.html(); got != "<div><button>clicks 2</button>!</div>" {
		t.Errorf("html = %q", got)
	}
}
