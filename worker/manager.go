// Package worker runs the post generator on a schedule.
package worker

import (
	"context"
	"sync"
)

// Worker is a long-running task supervised by the Manager.
type Worker interface {
	Start(ctx context.Context) error
}

// Manager starts its workers and keeps them running until the context is
// cancelled.
type Manager struct {
	workers []Worker
}

func NewManager(ws ...Worker) *Manager {
	return &Manager{workers: ws}
}

// Start launches every worker and blocks until ctx is done and all workers
// have exited. The first worker error observed before cancellation is
// returned.
func (m *Manager) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	errs := make(chan error, len(m.workers))
	for _, w := range m.workers {
		wg.Add(1)
		go func(w Worker) {
			defer wg.Done()
			if err := w.Start(ctx); err != nil {
				errs <- err
			}
		}(w)
	}
	<-ctx.Done()
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
