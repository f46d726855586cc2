package fiber

import (
	"time"

	"github.com/vango-dev/weft/pkg/vdom"
)

// CycleInfo identifies a render cycle.
type CycleInfo struct {
	Root  uint64
	Cycle uint64
}

// CommitStats summarizes a committed cycle.
type CommitStats struct {
	CycleInfo

	Units     int // work units processed
	Slices    int // idle periods used
	Inserts   int // host nodes inserted
	Updates   int // host nodes diffed
	Deletions int // subtrees removed
	Effects   int // effect bodies run
	Cleanups  int // cleanups run, including those of deleted nodes

	// Duration is the time spent committing; Elapsed spans the whole cycle.
	Duration time.Duration
	Elapsed  time.Duration
}

// Observer is notified as a root moves through its cycles. Callbacks run on
// the goroutine driving the root and must not block.
type Observer interface {
	OnCycleStart(info CycleInfo)
	OnUnit(info CycleInfo, kind vdom.Kind)
	OnYield(info CycleInfo, units int)
	OnDiscard(info CycleInfo)
	OnCommit(stats CommitStats)
}

// NopObserver ignores every notification. Embed it to implement only part of
// Observer.
type NopObserver struct{}

func (NopObserver) OnCycleStart(CycleInfo)      {}
func (NopObserver) OnUnit(CycleInfo, vdom.Kind) {}
func (NopObserver) OnYield(CycleInfo, int)      {}
func (NopObserver) OnDiscard(CycleInfo)         {}
func (NopObserver) OnCommit(CommitStats)        {}

// multiObserver fans notifications out in registration order.
type multiObserver []Observer

// Observers combines several observers into one.
func Observers(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o == nil {
			continue
		}
		if m, ok := o.(multiObserver); ok {
			out = append(out, m...)
			continue
		}
		out = append(out, o)
	}
	return out
}

func (m multiObserver) OnCycleStart(info CycleInfo) {
	for _, o := range m {
		o.OnCycleStart(info)
	}
}

func (m multiObserver) OnUnit(info CycleInfo, kind vdom.Kind) {
	for _, o := range m {
		o.OnUnit(info, kind)
	}
}

func (m multiObserver) OnYield(info CycleInfo, units int) {
	for _, o := range m {
		o.OnYield(info, units)
	}
}

func (m multiObserver) OnDiscard(info CycleInfo) {
	for _, o := range m {
		o.OnDiscard(info)
	}
}

func (m multiObserver) OnCommit(stats CommitStats) {
	for _, o := range m {
		o.OnCommit(stats)
	}
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	CycleStart func(CycleInfo)
	Unit       func(CycleInfo, vdom.Kind)
	Yield      func(CycleInfo, int)
	Discard    func(CycleInfo)
	Commit     func(CommitStats)
}

func (f ObserverFuncs) OnCycleStart(info CycleInfo) {
	if f.CycleStart != nil {
		f.CycleStart(info)
	}
}

func (f ObserverFuncs) OnUnit(info CycleInfo, kind vdom.Kind) {
	if f.Unit != nil {
		f.Unit(info, kind)
	}
}

func (f ObserverFuncs) OnYield(info CycleInfo, units int) {
	if f.Yield != nil {
		f.Yield(info, units)
	}
}

func (f ObserverFuncs) OnDiscard(info CycleInfo) {
	if f.Discard != nil {
		f.Discard(info)
	}
}

func (f ObserverFuncs) OnCommit(stats CommitStats) {
	if f.Commit != nil {
		f.Commit(stats)
	}
}
