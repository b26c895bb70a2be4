package workers

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

type countingCounter struct {
	calls chan struct{}
	err   error
}

func (c countingCounter) GetMessageCount(_ context.Context) (uint64, error) {
	select {
	case c.calls <- struct{}{}:
	default:
	}
	return 3, c.err
}

func TestHealthMonitoringWorker_ReportsUntilCanceled(t *testing.T) {
	req := require.New(t)
	counter := countingCounter{calls: make(chan struct{}, 1)}
	worker := NewHealthMonitoringWorker(slog.Default(), counter, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	select {
	case <-counter.calls:
	case <-time.After(time.Second):
		req.Fail("health worker never read the message count")
	}
	cancel()
	req.NoError(<-done)
}

func TestHealthMonitoringWorker_SurvivesCounterErrors(t *testing.T) {
	req := require.New(t)
	counter := countingCounter{calls: make(chan struct{}, 1), err: fmt.Errorf("store closed")}
	worker := NewHealthMonitoringWorker(slog.Default(), counter, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req.NoError(worker.Run(ctx))
}

func TestValueLogGCWorker(t *testing.T) {
	t.Run("should stop on cancel", func(t *testing.T) {
		req := require.New(t)
		db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
		req.NoError(err)
		t.Cleanup(func() { _ = db.Close() })

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		req.NoError(NewValueLogGCWorker(db, slog.Default(), 10*time.Millisecond).Run(ctx))
	})

	t.Run("should finish at once in memory", func(t *testing.T) {
		req := require.New(t)
		db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
		req.NoError(err)
		t.Cleanup(func() { _ = db.Close() })

		req.NoError(NewValueLogGCWorker(db, slog.Default(), time.Hour).Run(context.Background()))
	})
}
