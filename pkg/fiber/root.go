package fiber

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/vango-dev/weft/pkg/host"
	"github.com/vango-dev/weft/pkg/scheduler"
	"github.com/vango-dev/weft/pkg/vdom"
)

// DefaultYieldThreshold is the remaining idle time at which the work loop
// yields.
const DefaultYieldThreshold = time.Millisecond

// rootTag types the implicit node bound to the container.
const rootTag = "#root"

// Phase is the state of a root's render cycle.
type Phase uint8

const (
	// PhaseIdle means no cycle is in progress.
	PhaseIdle Phase = iota

	// PhasePending means a cycle is scheduled but no unit has run.
	PhasePending

	// PhaseTraversing means units are being processed.
	PhaseTraversing

	// PhaseReadyToCommit means the traversal is complete.
	PhaseReadyToCommit

	// PhaseCommitting means the host tree is being mutated.
	PhaseCommitting
)

// String returns the string representation of the Phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhasePending:
		return "Pending"
	case PhaseTraversing:
		return "Traversing"
	case PhaseReadyToCommit:
		return "ReadyToCommit"
	case PhaseCommitting:
		return "Committing"
	default:
		return "Unknown"
	}
}

var rootIDs atomic.Uint64

// Root renders a tree into one container. It owns the pending and committed
// trees, the deletion set and the traversal cursor, so roots never share
// state. A Root is not safe for concurrent use; call it from the goroutine
// that runs its scheduler.
type Root struct {
	id        uint64
	container host.Node
	platform  host.Platform
	sched     scheduler.IdleScheduler
	logger    *slog.Logger
	observer  Observer
	threshold time.Duration

	phase     Phase
	pending   *Node
	current   *Node
	next      *Node
	deletions []*Node
	requested bool

	cycle      uint64
	units      int
	slices     int
	cycleStart time.Time

	// work arriving while a cycle cannot be restarted
	rerun        bool
	queuedRender *vdom.Element
	hasQueued    bool
}

// Option configures a Root.
type Option func(*Root)

// WithLogger sets the logger. Records carry the root and cycle.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Root) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver adds an observer. It may be given more than once.
func WithObserver(o Observer) Option {
	return func(r *Root) {
		if o != nil {
			r.observer = Observers(r.observer, o)
		}
	}
}

// WithYieldThreshold sets the remaining idle time below which the work loop
// yields.
func WithYieldThreshold(d time.Duration) Option {
	return func(r *Root) {
		if d >= 0 {
			r.threshold = d
		}
	}
}

// NewRoot creates a root rendering into container through platform, driven
// by sched.
func NewRoot(container host.Node, platform host.Platform, sched scheduler.IdleScheduler, opts ...Option) *Root {
	r := &Root{
		id:        rootIDs.Add(1),
		container: container,
		platform:  platform,
		sched:     sched,
		logger:    slog.Default(),
		observer:  Observers(),
		threshold: DefaultYieldThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("root", r.id)
	return r
}

// ID returns the root's process-unique identifier.
func (r *Root) ID() uint64 { return r.id }

// Container returns the host node the root renders into.
func (r *Root) Container() host.Node { return r.container }

// Phase returns the state of the current cycle.
func (r *Root) Phase() Phase { return r.phase }

// Cycle returns the number of cycles started.
func (r *Root) Cycle() uint64 { return r.cycle }

// Current returns the implicit root node of the committed tree, or nil
// before the first commit.
func (r *Root) Current() *Node { return r.current }

// Pending returns the implicit root node of the uncommitted tree, or nil.
func (r *Root) Pending() *Node { return r.pending }

// Render schedules el to be rendered into the container. The new tree is
// diffed against the committed one. A nil el renders nothing. Calling
// Render during a commit defers it until the commit finishes; otherwise any
// uncommitted cycle is discarded.
func (r *Root) Render(el *vdom.Element) {
	if r.phase == PhaseCommitting {
		r.queuedRender, r.hasQueued = el, true
		return
	}
	children := []*vdom.Element{}
	if el != nil {
		children = append(children, el)
	}
	r.begin(&Node{
		Type:      vdom.Tag(rootTag),
		Props:     vdom.Props{vdom.ChildrenKey: children},
		hostNode:  r.container,
		alternate: r.current,
	})
}

// Unmount removes everything rendered into the container, running all
// cleanups.
func (r *Root) Unmount() {
	r.Render(nil)
}

// scheduleUpdate is the update trigger used by state setters.
func (r *Root) scheduleUpdate() {
	switch {
	case r.phase == PhasePending:
		// No unit has run; the scheduled cycle will see the update.
		return
	case r.phase == PhaseCommitting || r.current == nil:
		r.rerun = true
		return
	}
	old := r.current
	r.begin(&Node{
		Type:      old.Type,
		Props:     old.Props,
		hostNode:  old.hostNode,
		alternate: old,
	})
}

// begin makes top the pending tree, discarding any uncommitted one.
func (r *Root) begin(top *Node) {
	if r.pending != nil {
		r.logger.Debug("discarding uncommitted cycle", "cycle", r.cycle, "phase", r.phase)
		r.observer.OnDiscard(r.info())
	}
	r.cycle++
	r.pending = top
	r.next = top
	r.deletions = nil
	r.units = 0
	r.slices = 0
	r.phase = PhasePending
	r.arm()
}

// afterCommit starts work that arrived during the commit.
func (r *Root) afterCommit() {
	queued, hasQueued, rerun := r.queuedRender, r.hasQueued, r.rerun
	r.queuedRender, r.hasQueued, r.rerun = nil, false, false
	switch {
	case hasQueued:
		r.Render(queued)
	case rerun:
		r.scheduleUpdate()
	}
}

// arm requests an idle period unless one is already outstanding.
func (r *Root) arm() {
	if r.requested {
		return
	}
	r.requested = true
	r.sched.RequestIdle(r.workLoop)
}

func (r *Root) info() CycleInfo {
	return CycleInfo{Root: r.id, Cycle: r.cycle}
}
