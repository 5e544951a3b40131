package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fightforgift/reward-engine/internal/adapter"
)

// Worker defines the interface for the engine's background loops
// Workers are long-running tasks that repeat a bounded unit of work with a
// sleep between cycles. Coordination between workers happens only through
// row state in the backing store.
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker.go -package=mocks -mock_names=Worker=MockWorker
type Worker interface {
	// Start begins the worker's main loop
	// This is a blocking call that runs until the context is canceled
	Start(ctx context.Context) error

	// Stop gracefully stops the worker
	// This should wait for any in-progress cycle to complete
	Stop(ctx context.Context) error

	// Name returns the worker's name for logging and identification
	Name() string
}

// lifecycle carries the start/stop plumbing shared by all workers
type lifecycle struct {
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

func newLifecycle() lifecycle {
	return lifecycle{
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// begin marks the worker running. Returns false if it already was.
func (l *lifecycle) begin() bool {
	return l.running.CompareAndSwap(false, true)
}

// finish marks the worker stopped and releases Stop waiters
func (l *lifecycle) finish() {
	l.running.Store(false)
	close(l.stoppedCh)
}

// stopRequested reports whether Stop has been called
func (l *lifecycle) stopRequested() bool {
	select {
	case <-l.stopChan:
		return true
	default:
		return false
	}
}

// stop signals the main loop and waits for it to exit, respecting ctx
func (l *lifecycle) stop(ctx context.Context) error {
	if !l.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	close(l.stopChan)

	select {
	case <-l.stoppedCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sleep sleeps for the given duration but can be interrupted by context
// cancellation or a stop request. Returns true if it slept the full duration.
func (l *lifecycle) sleep(ctx context.Context, clock adapter.Clock, duration time.Duration) bool {
	select {
	case <-clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-l.stopChan:
		return false
	}
}
