// internal/app/system/workers/purge.go
//
// Package workers hosts background jobs. The purge worker runs the
// trash sweep on a cron schedule.
package workers

import (
	"context"
	"fmt"

	"github.com/filehaven/filehaven/internal/app/service/library"
	"github.com/filehaven/filehaven/internal/app/system/timeouts"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// PurgeWorker periodically removes files that sit in the trash.
type PurgeWorker struct {
	svc      *library.Service
	schedule string
	cron     *cron.Cron
	log      *zap.Logger
}

// NewPurgeWorker builds a worker with a cron schedule such as
// "@every 720h" or "0 3 * * *".
func NewPurgeWorker(svc *library.Service, schedule string, log *zap.Logger) *PurgeWorker {
	return &PurgeWorker{
		svc:      svc,
		schedule: schedule,
		cron:     cron.New(),
		log:      log,
	}
}

// Start registers the sweep and begins the schedule.
func (w *PurgeWorker) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.sweep); err != nil {
		return fmt.Errorf("purge worker: bad schedule %q: %w", w.schedule, err)
	}
	w.cron.Start()
	w.log.Info("purge worker started", zap.String("schedule", w.schedule))
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (w *PurgeWorker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.log.Info("purge worker stopped")
}

// RunOnce triggers a sweep outside the schedule, for admin endpoints
// and tests.
func (w *PurgeWorker) RunOnce(ctx context.Context) (library.PurgeStats, error) {
	return w.svc.PurgeTrashed(ctx)
}

func (w *PurgeWorker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Batch())
	defer cancel()

	if _, err := w.svc.PurgeTrashed(ctx); err != nil {
		w.log.Error("purge sweep failed", zap.Error(err))
	}
}
