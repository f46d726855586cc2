package snapshot

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/weft/pkg/fiber"
)

// DefaultQueueSize is the number of snapshots a Recorder buffers.
const DefaultQueueSize = 64

// Recorder is a fiber.Observer that stores a snapshot after every commit.
// The HTML is captured on the root's goroutine and written to the store on
// a background goroutine. When the queue is full the snapshot is dropped and
// counted.
type Recorder struct {
	fiber.NopObserver

	store   Store
	html    func() string
	app     string
	logger  *slog.Logger
	timeout time.Duration

	queue   chan Snapshot
	done    chan struct{}
	once    sync.Once
	dropped atomic.Int64
	written atomic.Int64
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithApp records the application name in every snapshot.
func WithApp(name string) RecorderOption {
	return func(r *Recorder) { r.app = name }
}

// WithLogger sets the logger for write failures.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithQueueSize sets the buffer size.
func WithQueueSize(n int) RecorderOption {
	return func(r *Recorder) {
		if n > 0 {
			r.queue = make(chan Snapshot, n)
		}
	}
}

// WithWriteTimeout bounds each store write.
func WithWriteTimeout(d time.Duration) RecorderOption {
	return func(r *Recorder) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewRecorder starts a recorder writing to store. html is called after each
// commit to serialize the host tree.
func NewRecorder(store Store, html func() string, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store:   store,
		html:    html,
		logger:  slog.Default(),
		timeout: 10 * time.Second,
		queue:   make(chan Snapshot, DefaultQueueSize),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	go r.run()
	return r
}

// OnCommit implements fiber.Observer.
func (r *Recorder) OnCommit(s fiber.CommitStats) {
	snap := Snapshot{
		Root:  s.Root,
		Cycle: s.Cycle,
		App:   r.app,
		Time:  time.Now().UTC(),
		HTML:  r.html(),
		Stats: StatsOf(s),
	}
	select {
	case r.queue <- snap:
	default:
		r.dropped.Add(1)
		r.logger.Warn("snapshot queue full, dropping", "key", snap.Key())
	}
}

func (r *Recorder) run() {
	defer close(r.done)
	for snap := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		err := r.store.Put(ctx, snap)
		cancel()
		if err != nil {
			r.logger.Error("snapshot write failed", "key", snap.Key(), "error", err)
			continue
		}
		r.written.Add(1)
	}
}

// Close stops accepting snapshots and waits until every queued one has been
// written. It does not close the store. No commit may be observed after
// Close.
func (r *Recorder) Close() {
	r.once.Do(func() { close(r.queue) })
	<-r.done
}

// Dropped returns the number of snapshots lost to a full queue.
func (r *Recorder) Dropped() int64 { return r.dropped.Load() }

// Written returns the number of snapshots stored.
func (r *Recorder) Written() int64 { return r.written.Load() }
