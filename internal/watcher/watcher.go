// Package watcher re-runs the upload sweep and ingest on a schedule,
// so exports dropped into the shared folder land in the ledger without
// a manual import.
package watcher

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// SweepFunc performs one sweep-and-ingest pass. It reports whether
// anything new was written.
type SweepFunc func() (bool, error)

// Watcher owns the cron scheduler driving periodic sweeps.
type Watcher struct {
	schedule string
	sweep    SweepFunc
	log      zerolog.Logger
	cron     *cron.Cron
}

func New(schedule string, sweep SweepFunc, log zerolog.Logger) *Watcher {
	return &Watcher{
		schedule: schedule,
		sweep:    sweep,
		log:      log.With().Str("component", "watcher").Logger(),
	}
}

// Run sweeps once immediately, then on every schedule tick until the
// context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.runOnce()

	w.cron = cron.New()
	if _, err := w.cron.AddFunc(w.schedule, w.runOnce); err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", w.schedule, err)
	}
	w.cron.Start()
	w.log.Info().Str("schedule", w.schedule).Msg("Watching upload folder")

	<-ctx.Done()
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	w.log.Info().Msg("Watcher stopped")
	return nil
}

func (w *Watcher) runOnce() {
	wrote, err := w.sweep()
	if err != nil {
		w.log.Error().Err(err).Msg("Sweep failed")
		return
	}
	if wrote {
		w.log.Info().Msg("New transactions ingested")
	} else {
		w.log.Debug().Msg("Nothing new to ingest")
	}
}
