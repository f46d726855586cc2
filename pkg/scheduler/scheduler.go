package scheduler

import (
	"math"
	"time"
)

// Deadline describes the remainder of an idle period.
type Deadline interface {
	// TimeRemaining returns how much of the idle period is left.
	TimeRemaining() time.Duration

	// DidTimeout reports whether the idle period is already over.
	DidTimeout() bool
}

// IdleCallback is run once per requested idle period.
type IdleCallback func(Deadline)

// IdleScheduler invokes a callback once during the next idle period.
type IdleScheduler interface {
	RequestIdle(cb IdleCallback)
}

// Unlimited is the time a budget without limit reports as remaining.
const Unlimited = time.Duration(math.MaxInt64)

// UnitBudget is a Deadline measured in checks: it reports Unlimited for the
// first N calls to TimeRemaining and zero afterwards. A negative N never runs
// out.
type UnitBudget struct {
	left int
}

// NewUnitBudget returns a budget allowing n checks.
func NewUnitBudget(n int) *UnitBudget {
	return &UnitBudget{left: n}
}

// TimeRemaining implements Deadline. Every call consumes one check.
func (b *UnitBudget) TimeRemaining() time.Duration {
	if b.left < 0 {
		return Unlimited
	}
	if b.left == 0 {
		return 0
	}
	b.left--
	return Unlimited
}

// DidTimeout implements Deadline without consuming a check.
func (b *UnitBudget) DidTimeout() bool {
	return b.left == 0
}

// frameDeadline ends at a fixed point in time.
type frameDeadline struct {
	end time.Time
	now func() time.Time
}

func (d frameDeadline) TimeRemaining() time.Duration {
	if left := d.end.Sub(d.now()); left > 0 {
		return left
	}
	return 0
}

func (d frameDeadline) DidTimeout() bool {
	return !d.now().Before(d.end)
}
