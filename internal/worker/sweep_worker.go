package worker

import (
	"context"
	"taskify/internal/logger"
	"time"

	"go.uber.org/zap"
)

// Sweeper удаляет устаревшие записи на момент now и возвращает их количество
type Sweeper interface {
	Sweep(now time.Time) int
}

type SweepWorker struct {
	name     string
	target   Sweeper
	interval time.Duration
	now      func() time.Time
}

func NewSweepWorker(name string, target Sweeper, interval *time.Duration) *SweepWorker {
	var intervalToSet time.Duration
	if interval == nil || *interval <= 0 {
		intervalToSet = time.Minute
	} else {
		intervalToSet = *interval
	}

	return &SweepWorker{
		name:     name,
		target:   target,
		interval: intervalToSet,
		now:      time.Now,
	}
}

func (w *SweepWorker) Interval() time.Duration {
	return w.interval
}

func (w *SweepWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Worker: запуск очистки", zap.String("worker", w.name), zap.Duration("interval", w.interval))

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: очистка останавливается", zap.String("worker", w.name))
			return
		}
	}
}

func (w *SweepWorker) Check(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}

	start := time.Now()
	removed := w.target.Sweep(w.now())

	if removed > 0 {
		logger.Info(
			"Worker: Завершение очистки",
			zap.String("worker", w.name),
			zap.Duration("ms", time.Since(start)),
			zap.Int("removed", removed),
		)
	}
	return removed
}
