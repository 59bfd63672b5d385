package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ReconcileTimeout bounds a single pass over all faculties.
const ReconcileTimeout = 2 * time.Minute

// facultyReconciler is implemented by service.FacultyService.
type facultyReconciler interface {
	ReconcileAll(ctx context.Context) (int, error)
}

// ReconcileWorker periodically rebuilds every faculty's embedded course list
// from the courses collection, repairing drift left by writes made outside
// this service.
type ReconcileWorker struct {
	faculties facultyReconciler
	interval  time.Duration
	log       zerolog.Logger
}

func NewReconcileWorker(faculties facultyReconciler, interval time.Duration, log zerolog.Logger) *ReconcileWorker {
	return &ReconcileWorker{
		faculties: faculties,
		interval:  interval,
		log:       log.With().Str("component", "reconcile_worker").Logger(),
	}
}

// Start runs a pass every interval until ctx is cancelled. It returns
// immediately when the interval is not positive.
func (w *ReconcileWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.log.Info().Msg("ReconcileWorker disabled")
		return
	}
	w.log.Info().Dur("interval", w.interval).Msg("ReconcileWorker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("ReconcileWorker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ReconcileWorker) runOnce(ctx context.Context) {
	passCtx, cancel := context.WithTimeout(ctx, ReconcileTimeout)
	defer cancel()

	start := time.Now()
	repaired, err := w.faculties.ReconcileAll(passCtx)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error().Err(err).Int("repaired", repaired).Msg("Reconcile pass failed")
		}
		return
	}

	evt := w.log.Debug()
	if repaired > 0 {
		evt = w.log.Info()
	}
	evt.Int("repaired", repaired).Dur("took", time.Since(start)).Msg("Reconcile pass finished")
}
