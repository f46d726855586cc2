package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/weft/internal/errors"
)

// DefaultFPS is the default number of frames per second.
const DefaultFPS = 60

// FrameLoop is a real-time IdleScheduler. All tasks and idle callbacks run on
// the goroutine that calls Run, so code driven by a FrameLoop needs no locks.
type FrameLoop struct {
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	tasks  []task
	idle   []IdleCallback
	closed bool
	wake   chan struct{}
	frames uint64
}

// task is a posted function. abandon, when set, runs instead if the loop
// stops before the task does.
type task struct {
	run     func()
	abandon func()
}

// FrameOption configures a FrameLoop.
type FrameOption func(*FrameLoop)

// WithFPS sets the frame rate.
func WithFPS(fps int) FrameOption {
	return func(l *FrameLoop) {
		if fps > 0 {
			l.interval = time.Second / time.Duration(fps)
		}
	}
}

// WithFrameInterval sets the frame duration directly.
func WithFrameInterval(d time.Duration) FrameOption {
	return func(l *FrameLoop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) FrameOption {
	return func(l *FrameLoop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewFrameLoop creates a frame loop. It does nothing until Run is called.
func NewFrameLoop(opts ...FrameOption) *FrameLoop {
	l := &FrameLoop{
		interval: time.Second / DefaultFPS,
		logger:   slog.Default(),
		now:      time.Now,
		wake:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Interval returns the frame duration.
func (l *FrameLoop) Interval() time.Duration {
	return l.interval
}

// Frames returns the number of frames run so far.
func (l *FrameLoop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// RequestIdle implements IdleScheduler. The callback runs during the next
// frame. It is safe to call from any goroutine; requests on a closed loop are
// dropped.
func (l *FrameLoop) RequestIdle(cb IdleCallback) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.idle = append(l.idle, cb)
}

// Post schedules fn to run on the loop goroutine before the next frame.
func (l *FrameLoop) Post(fn func()) error {
	return l.post(task{run: fn})
}

func (l *FrameLoop) post(t task) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return errors.New("E010")
	}
	l.tasks = append(l.tasks, t)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Do runs fn on the loop goroutine and waits for it to return. If the loop
// stops before fn runs, Do returns E010.
func (l *FrameLoop) Do(ctx context.Context, fn func()) error {
	done := make(chan error, 1)
	err := l.post(task{
		run: func() {
			defer func() { done <- nil }()
			fn()
		},
		abandon: func() {
			done <- errors.New("E010").WithDetail("The loop stopped before the task ran.")
		},
	})
	if err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes tasks and frames until ctx is cancelled. Panics raised by
// tasks or callbacks are not recovered.
func (l *FrameLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	defer l.close()

	l.logger.Debug("frame loop started", "interval", l.interval)
	defer l.logger.Debug("frame loop stopped", "frames", l.Frames())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
			l.runTasks()
		case <-ticker.C:
			l.runTasks()
			l.runFrame()
		}
	}
}

// close rejects further work and abandons the tasks that never ran.
func (l *FrameLoop) close() {
	l.mu.Lock()
	l.closed = true
	dropped := l.tasks
	l.tasks = nil
	l.idle = nil
	l.mu.Unlock()

	for _, t := range dropped {
		if t.abandon != nil {
			t.abandon()
		}
	}
}

func (l *FrameLoop) runTasks() {
	l.mu.Lock()
	tasks := l.tasks
	l.tasks = nil
	l.mu.Unlock()

	for _, t := range tasks {
		t.run()
	}
}

// runFrame invokes the callbacks requested before the frame started. Callbacks
// requested during the frame wait for the next one.
func (l *FrameLoop) runFrame() {
	start := l.now()
	deadline := frameDeadline{end: start.Add(l.interval), now: l.now}

	l.mu.Lock()
	callbacks := l.idle
	l.idle = nil
	l.frames++
	l.mu.Unlock()

	for _, cb := range callbacks {
		cb(deadline)
	}

	if elapsed := l.now().Sub(start); elapsed > l.interval {
		l.logger.Debug("frame overran", "elapsed", elapsed, "interval", l.interval)
	}
}
