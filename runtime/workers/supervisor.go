package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"message-ledger/contract"
	"message-ledger/errors"
)

const defaultRestartInterval = 200 * time.Millisecond

// Supervisor keeps the ledger's background jobs alive
// Own a context and a Cancel function
// Run each worker in its own goroutine
// Recover panics and restart failed workers after a delay
// Stop everything once the parent context is canceled
// Wait for the end of all goroutines via WaitGroup
type Supervisor struct {
	Cancel          context.CancelFunc // To stop the workers' context
	wg              *sync.WaitGroup    // Wait for the end of goroutines
	log             *slog.Logger
	restartInterval time.Duration
	workers         []contract.Worker
}

func NewSupervisor(log *slog.Logger, restartInterval time.Duration) *Supervisor {
	if restartInterval <= 0 {
		restartInterval = defaultRestartInterval
	}
	return &Supervisor{wg: &sync.WaitGroup{}, log: log, restartInterval: restartInterval}
}

// Run blocks until every worker has returned. Canceling ctx or calling
// Stop stops them all.
func (s *Supervisor) Run(ctx context.Context) {
	// 1. Derive a local cancellation trigger from the parent ctx
	// If the parent (main) cancels, every worker stops.
	// If Stop is called, only the workers stop.
	supervisedCtx, cancel := context.WithCancel(ctx)
	s.Cancel = cancel
	// Safety: release the context when Run exits
	defer s.Cancel()

	// 2. One supervised goroutine per worker

	for _, worker := range s.workers {
		s.Start(supervisedCtx, worker)
	}
	// 3. Block until each of them has returned
	s.wg.Wait()
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Start runs a worker under supervision. A panic or an error restarts the
// worker after the restart interval; a nil return ends it.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	workerName := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()

		for {
			if ctx.Err() != nil {
				s.log.Info(fmt.Sprintf("Stopping : %s", workerName))
				return
			}

			err := func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						// The panic value is kept for the crash log
						err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
					}
				}()
				// Only the worker's Run is restarted after a crash,
				// never the supervising goroutine itself
				return worker.Run(ctx)
			}()

			if err == nil {
				// Terminated properly, never restart !
				s.log.Info(fmt.Sprintf("Worker finished : %s", workerName))
				return
			}

			if ctx.Err() != nil {
				s.log.Info("Worker stopped (context canceled)", "name", workerName)
				return
			}

			s.log.Warn("Worker crashed, restarting", "name", workerName, "error", err)
			select {
			case <-ctx.Done():
				// Context canceled: priority stop.
				// Exit without waiting for the restart delay.
				return
			case <-time.After(s.restartInterval):
				// Delay elapsed and the context is still active.
				// Loop around and restart the worker.
			}
		}
	}()
}

// Stop cancels the workers' context
// Run returns once every goroutine has finished
func (s *Supervisor) Stop() {
	if s.Cancel != nil {
		s.Cancel()
	}
}
