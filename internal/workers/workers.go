package workers

import (
	"context"
	"sync"
)

// Workers starts and stops a set of workers together.
type Workers struct {
	workers []Worker

	mu      sync.Mutex
	started bool
}

// NewWorkers groups workers; they start in order and stop in reverse.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Start starts every worker in order. A second Start without Stop is a no-op.
func (w *Workers) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true

	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	w.started = false

	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// Run starts the workers, blocks until ctx is done, then stops them.
func (w *Workers) Run(ctx context.Context) error {
	w.Start(ctx)
	<-ctx.Done()
	w.Stop()
	return nil
}
