package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const gcDiscardRatio = 0.5

// ValueLogGCWorker reclaims value log space left behind by expired and
// rewritten ledger entries.
type ValueLogGCWorker struct {
	db       *badger.DB
	log      *slog.Logger
	interval time.Duration
}

func NewValueLogGCWorker(db *badger.DB, log *slog.Logger, interval time.Duration) *ValueLogGCWorker {
	return &ValueLogGCWorker{db: db, log: log, interval: interval}
}

func (w *ValueLogGCWorker) Run(ctx context.Context) error {
	if w.db.Opts().InMemory {
		w.log.Debug("In-memory database, value log GC disabled")
		return nil
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := w.collect(ctx); err != nil {
				return err
			}
		}
	}
}

// collect rewrites value log files until badger finds nothing worth rewriting.
func (w *ValueLogGCWorker) collect(ctx context.Context) error {
	rewritten := 0
	for ctx.Err() == nil {
		err := w.db.RunValueLogGC(gcDiscardRatio)
		switch {
		case err == nil:
			rewritten++
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrRejected):
			if rewritten > 0 {
				w.log.Debug("Value log garbage collected", "files", rewritten)
			}
			return nil
		default:
			return err
		}
	}
	return nil
}
