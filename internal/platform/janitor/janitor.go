// Package janitor prunes spent one-time codes on a cron schedule.
package janitor

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Store deletes used codes and codes that expired before the cutoff,
// returning how many rows were removed.
type Store interface {
	DeleteSpentOTPs(ctx context.Context, expiredBefore time.Time) (int64, error)
}

// Janitor runs the OTP cleanup job. Verification never deletes rows, it only
// flips the used flag, so without the janitor the otp_codes table grows
// unbounded.
type Janitor struct {
	cron      *cron.Cron
	schedule  string
	retention time.Duration
	store     Store
	logger    zerolog.Logger
}

func New(schedule string, retention time.Duration, store Store, logger zerolog.Logger) *Janitor {
	return &Janitor{
		cron:      cron.New(),
		schedule:  schedule,
		retention: retention,
		store:     store,
		logger:    logger.With().Str("component", "otp-janitor").Logger(),
	}
}

// Start registers the cleanup job and starts the scheduler. The schedule uses
// standard cron syntax or a descriptor like "@hourly".
func (j *Janitor) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Msg("otp janitor started")
	return nil
}

// Stop halts the scheduler and waits for a running cleanup to finish.
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.Info().Msg("otp janitor stopped")
}

// RunOnce performs a single cleanup pass: used codes go immediately, expired
// ones are kept for the retention window (they are harmless and occasionally
// useful when debugging delivery issues).
func (j *Janitor) RunOnce(ctx context.Context) {
	cutoff := time.Now().Add(-j.retention)
	deleted, err := j.store.DeleteSpentOTPs(ctx, cutoff)
	if err != nil {
		j.logger.Error().Err(err).Msg("otp cleanup failed")
		return
	}
	if deleted > 0 {
		j.logger.Info().Int64("deleted", deleted).Msg("pruned spent otp codes")
	}
}
