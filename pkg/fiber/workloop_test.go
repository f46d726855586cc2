package fiber

import (
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/weft/pkg/vdom"
)

func TestSchedulerResumability(t *testing.T) {
	var order []string
	leaf := func(p vdom.Props) *vdom.Element {
		order = append(order, p.String("name"))
		return nil
	}
	leaves := make([]any, 0, 5)
	for i := 1; i <= 5; i++ {
		leaves = append(leaves, vdom.Comp(leaf, vdom.Prop("name", strconv.Itoa(i))))
	}

	var yields []int
	f := newFixture(t, WithObserver(ObserverFuncs{
		Yield: func(_ CycleInfo, units int) { yields = append(yields, units) },
	}))

	// Units: implicit root, fragment, five leaves.
	f.root.Render(vdom.Frag(leaves...))

	f.sched.Step(3)
	if diff := cmp.Diff([]string{"1"}, order); diff != "" {
		t.Errorf("after first slice (-want +got):\n%s", diff)
	}
	if f.root.Phase() != PhaseTraversing {
		t.Errorf("Phase() = %v, want Traversing", f.root.Phase())
	}

	f.sched.Step(3)
	if diff := cmp.Diff([]string{"1", "2", "3", "4"}, order); diff != "" {
		t.Errorf("after second slice (-want +got):\n%s", diff)
	}

	f.sched.Step(3)
	if diff := cmp.Diff([]string{"1", "2", "3", "4", "5"}, order); diff != "" {
		t.Errorf("after third slice (-want +got):\n%s", diff)
	}
	if f.root.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v, want Idle", f.root.Phase())
	}
	if f.sched.Pending() != 0 {
		t.Error("root re-armed with no work")
	}

	if diff := cmp.Diff([]int{3, 3}, yields); diff != "" {
		t.Errorf("yields (-want +got):\n%s", diff)
	}
	if len(f.commits) != 1 || f.commits[0].Units != 7 || f.commits[0].Slices != 3 {
		t.Errorf("commits = %+v", f.commits)
	}
}

func TestZeroBudgetMakesNoProgress(t *testing.T) {
	f := newFixture(t)
	f.root.Render(vdom.P("x"))
	for i := 0; i < 3; i++ {
		f.sched.Step(0)
	}
	if f.root.Phase() != PhasePending {
		t.Errorf("Phase() = %v, want Pending", f.root.Phase())
	}
	f.flush()
	if f.html() != "<p>x</p>" {
		t.Errorf("html = %q", f.html())
	}
}

func TestHostUntouchedUntilCommit(t *testing.T) {
	f := newFixture(t)
	f.render(vdom.Ul(vdom.Li("a")))
	f.ops()

	f.root.Render(vdom.Ul(vdom.Li("b"), vdom.Li("c")))
	f.sched.Step(4)
	if f.html() != "<ul><li>a</li></ul>" {
		t.Errorf("host changed mid-cycle: %q", f.html())
	}
	f.flush()
	if f.html() != "<ul><li>b</li><li>c</li></ul>" {
		t.Errorf("html = %q", f.html())
	}
}

func TestPhaseTransitions(t *testing.T) {
	var phases []Phase
	f := newFixture(t)
	f.root.observer = Observers(f.root.observer, ObserverFuncs{
		CycleStart: func(CycleInfo) { phases = append(phases, f.root.Phase()) },
		Commit:     func(CommitStats) { phases = append(phases, f.root.Phase()) },
	})

	if f.root.Phase() != PhaseIdle {
		t.Fatalf("initial Phase() = %v", f.root.Phase())
	}
	f.root.Render(vdom.P("x"))
	phases = append(phases, f.root.Phase())
	f.flush()

	want := []Phase{PhasePending, PhaseTraversing, PhaseIdle}
	if diff := cmp.Diff(want, phases); diff != "" {
		t.Errorf("phases (-want +got):\n%s", diff)
	}
}

func TestUpdateDiscardsUncommittedCycle(t *testing.T) {
	var set func(int)
	renders := 0
	comp := func(vdom.Props) *vdom.Element {
		n, s := UseState(0)
		set = s
		renders++
		return vdom.Span(strconv.Itoa(n))
	}

	f := newFixture(t)
	f.render(vdom.Div(vdom.Comp(comp)))
	renders = 0

	set(1)
	f.sched.Step(3) // root, div, component
	if renders != 1 || f.root.Phase() != PhaseTraversing {
		t.Fatalf("renders = %d, phase = %v", renders, f.root.Phase())
	}

	set(2)
	if f.discards != 1 {
		t.Errorf("discards = %d, want 1", f.discards)
	}
	f.flush()

	if got := f.html(); got != "<div><span>2</span></div>" {
		t.Errorf("html = %q", got)
	}
	if len(f.commits) != 2 {
		t.Errorf("commits = %d, want 2", len(f.commits))
	}
}

func TestSetStateDuringRenderKeepsHostTree(t *testing.T) {
	var setMode func(string)
	comp := func(vdom.Props) *vdom.Element {
		mode, set := UseState("b")
		setMode = set
		if mode == "a" {
			set("b")
			return vdom.Span("A")
		}
		return vdom.Div("B")
	}

	f := newFixture(t)
	f.render(vdom.Comp(comp))
	if f.html() != "<div>B</div>" {
		t.Fatalf("html = %q", f.html())
	}
	div := f.container.Children[0]

	setMode("a")
	f.flush()

	if got := f.html(); got != "<div>B</div>" {
		t.Errorf("html = %q, want <div>B</div>", got)
	}
	if len(f.container.Children) != 1 || f.container.Children[0] != div {
		t.Error("committed div is no longer the mounted host node")
	}
	if f.discards != 1 {
		t.Errorf("discards = %d, want 1", f.discards)
	}
	assertMirrored(t, f)
}

func TestRenderDiscardsUncommittedCycle(t *testing.T) {
	f := newFixture(t)
	f.render(vdom.P("a"))

	f.root.Render(vdom.P("b"))
	f.sched.Step(1)
	f.root.Render(vdom.P("c"))
	f.flush()

	if f.html() != "<p>c</p>" {
		t.Errorf("html = %q", f.html())
	}
	if f.discards != 1 {
		t.Errorf("discards = %d, want 1", f.discards)
	}
	if f.container.ByTag("p")[0].ID != 2 {
		t.Error("p host node was recreated")
	}
}

func TestUpdateDuringCommitRunsAfterward(t *testing.T) {
	f := newFixture(t)
	var phaseInEffect Phase
	comp := func(vdom.Props) *vdom.Element {
		status, set := UseState("loading")
		UseEffect(func() Cleanup {
			phaseInEffect = f.root.Phase()
			set("loaded")
			return nil
		}, []any{})
		return vdom.P(status)
	}

	f.render(vdom.Comp(comp))

	if phaseInEffect != PhaseCommitting {
		t.Errorf("effect ran in phase %v", phaseInEffect)
	}
	if f.html() != "<p>loaded</p>" {
		t.Errorf("html = %q", f.html())
	}
	if len(f.commits) != 2 {
		t.Errorf("commits = %d, want 2", len(f.commits))
	}
	if f.discards != 0 {
		t.Errorf("discards = %d, want 0", f.discards)
	}
}

func TestRenderDuringCommitIsQueued(t *testing.T) {
	f := newFixture(t)
	first := true
	comp := func(vdom.Props) *vdom.Element {
		UseEffect(func() Cleanup {
			if first {
				first = false
				f.root.Render(vdom.P("second"))
			}
			return nil
		}, nil)
		return vdom.P("first")
	}

	f.render(vdom.Comp(comp))
	if f.html() != "<p>second</p>" {
		t.Errorf("html = %q", f.html())
	}
}

func TestYieldThresholdWithFrameDeadline(t *testing.T) {
	f := newFixture(t, WithYieldThreshold(5*time.Millisecond))
	f.root.Render(vdom.P("x"))

	// A deadline with less time than the threshold does no work.
	f.root.requested = false
	f.root.workLoop(fixedDeadline(4 * time.Millisecond))
	if f.root.Phase() != PhasePending {
		t.Errorf("Phase() = %v, want Pending", f.root.Phase())
	}

	f.root.workLoop(fixedDeadline(16 * time.Millisecond))
	if f.html() != "<p>x</p>" {
		t.Errorf("html = %q", f.html())
	}
}

type fixedDeadline time.Duration

func (d fixedDeadline) TimeRemaining() time.Duration { return time.Duration(d) }
func (d fixedDeadline) DidTimeout() bool             { return d <= 0 }
