package service

import (
	"context"
	"time"

	"fitlife/fitness-backend/internal/repository"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// MissedExerciseSweeper is a long-lived background job that marks stale,
// incomplete exercises as missed. It runs once per day, independently of
// request handling.
//
// The sweep is batch and best-effort: a failed cycle is logged and simply
// retried on the next one. Re-running is idempotent because already-missed
// and already-completed rows are excluded by the update filter.
type MissedExerciseSweeper struct {
	exerciseRepo repository.ExerciseRepository
	cron         *cron.Cron
	logger       *log.Entry
}

// NewMissedExerciseSweeper creates a sweeper. Call Start to begin sweeping.
func NewMissedExerciseSweeper(exerciseRepo repository.ExerciseRepository) *MissedExerciseSweeper {
	return &MissedExerciseSweeper{
		exerciseRepo: exerciseRepo,
		cron:         cron.New(),
		logger:       log.WithField("component", "missed-exercise-sweeper"),
	}
}

// Start schedules the daily sweep and runs one immediately, so a restart
// never leaves stale rows waiting a full day.
func (s *MissedExerciseSweeper) Start() error {
	s.logger.Info("missed exercise sweeper starting")
	if _, err := s.cron.AddFunc("@midnight", func() {
		s.Sweep(context.Background())
	}); err != nil {
		return err
	}
	s.cron.Start()

	go s.Sweep(context.Background())
	return nil
}

// Stop prevents new cycles from starting and waits for a running sweep to
// finish. A sweep in flight is not cancelled mid-batch.
func (s *MissedExerciseSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("missed exercise sweeper stopped")
}

// Sweep performs one cycle: every exercise dated before today that is still
// open transitions to missed. Exercises dated today or later are never
// touched, and completed exercises are never overridden.
func (s *MissedExerciseSweeper) Sweep(ctx context.Context) {
	count, err := s.exerciseRepo.MarkMissedBefore(ctx, time.Now().UTC())
	if err != nil {
		s.logger.WithError(err).Error("failed to mark missed exercises, will retry next cycle")
		return
	}
	s.logger.WithField("count", count).Info("marked exercises as missed")
}
