package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// MessageCounter is the read side the health report needs.
type MessageCounter interface {
	GetMessageCount(ctx context.Context) (uint64, error)
}

// HealthMonitoringWorker periodically logs the ledger size together with
// the memory and cpu usage of the process.
type HealthMonitoringWorker struct {
	log            *slog.Logger
	counter        MessageCounter
	metricInterval time.Duration
}

func NewHealthMonitoringWorker(log *slog.Logger, counter MessageCounter, metricInterval time.Duration) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{log: log, counter: counter, metricInterval: metricInterval}
}

func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health reports")
			return nil
		case <-ticker.C:
			w.report(ctx, p)
		}
	}
}

func (w *HealthMonitoringWorker) report(ctx context.Context, p *process.Process) {
	count, err := w.counter.GetMessageCount(ctx)
	if err != nil {
		w.log.Error("Error while reading message count", "err", err)
		return
	}
	memInfo, err := p.MemoryInfo()
	if err != nil {
		w.log.Error("Error while finding process ram usage", "err", err)
		return
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		w.log.Error("Error while finding process cpu usage", "err", err)
		return
	}
	w.log.Info("Ledger health",
		"messages", count,
		"rss_bytes", memInfo.RSS,
		"cpu_percent", cpu)
}
