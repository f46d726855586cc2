package scheduler

// Manual is a deterministic IdleScheduler. Callbacks run only when Step or
// RunUntilIdle is called. It is not safe for concurrent use.
type Manual struct {
	pending []IdleCallback
	steps   int
}

// NewManual creates a manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// RequestIdle implements IdleScheduler.
func (m *Manual) RequestIdle(cb IdleCallback) {
	m.pending = append(m.pending, cb)
}

// Pending returns the number of callbacks waiting for an idle period.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Steps returns the number of idle periods granted so far.
func (m *Manual) Steps() int {
	return m.steps
}

// Step grants one idle period. Each waiting callback receives its own budget
// of units checks; a negative units is unlimited. Callbacks requested during
// the step wait for the next one. Step reports whether any callback ran.
func (m *Manual) Step(units int) bool {
	callbacks := m.pending
	m.pending = nil
	if len(callbacks) == 0 {
		return false
	}
	m.steps++
	for _, cb := range callbacks {
		cb(NewUnitBudget(units))
	}
	return true
}

// RunUntilIdle grants unlimited idle periods until no callback is waiting or
// maxSteps periods have been granted. A non-positive maxSteps means 1000. It
// returns the number of periods granted.
func (m *Manual) RunUntilIdle(maxSteps int) int {
	if maxSteps <= 0 {
		maxSteps = 1000
	}
	n := 0
	for n < maxSteps && m.Step(-1) {
		n++
	}
	return n
}
