package persistence

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"example.com/fitlog/internal/domain"
)

// Writer is a write-behind queue in front of an Adapter. Snapshots are
// written by a single goroutine in the order they were saved.
type Writer struct {
	adapter          *Adapter
	queue            chan []domain.Activity
	logger           zerolog.Logger
	mu               sync.Mutex
	closed           bool
	startOnce        sync.Once
	started          chan struct{}
	shutdownComplete chan struct{}
}

// NewWriter constructs a Writer holding up to queueSize pending snapshots.
func NewWriter(adapter *Adapter, queueSize int) *Writer {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Writer{
		adapter:          adapter,
		queue:            make(chan []domain.Activity, queueSize),
		logger:           log.Logger.With().Str("component", "writer").Logger(),
		started:          make(chan struct{}),
		shutdownComplete: make(chan struct{}),
	}
}

// Start drains the queue until Close is called. It should be called in a
// goroutine. Writes are detached from ctx cancellation so a shutdown still
// flushes what was queued. Calls after the first return immediately.
func (w *Writer) Start(ctx context.Context) {
	first := false
	w.startOnce.Do(func() {
		first = true
		close(w.started)
	})
	if !first {
		return
	}
	defer close(w.shutdownComplete)

	writeCtx := context.WithoutCancel(ctx)
	for snapshot := range w.queue {
		w.adapter.Save(writeCtx, snapshot)
	}
}

// Load reads the stored snapshot directly through the adapter.
func (w *Writer) Load(ctx context.Context) []domain.Activity {
	return w.adapter.Load(ctx)
}

// Save enqueues a snapshot. It blocks while the queue is full.
func (w *Writer) Save(_ context.Context, activities []domain.Activity) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		w.logger.Warn().Int("count", len(activities)).Msg("writer closed, snapshot dropped")
		return
	}
	w.queue <- activities
}

// Close stops accepting snapshots and waits until the queued ones are written.
// Start must have been called.
func (w *Writer) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()

	<-w.started
	w.Wait()
}

// Wait waits until the writer stops.
func (w *Writer) Wait() {
	<-w.shutdownComplete
}
