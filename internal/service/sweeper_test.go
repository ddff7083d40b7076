package service

import (
	"context"
	"testing"
	"time"

	"fitlife/fitness-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSweeper_MarksOnlyPastOpenExercises(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	now := time.Now().UTC()

	pastScheduled := fx.seedExercise(t, now.AddDate(0, 0, -2), domain.StatusScheduled, false)
	pastStarted := fx.seedExercise(t, now.AddDate(0, 0, -1), domain.StatusStarted, true, false)
	pastCompleted := fx.seedExercise(t, now.AddDate(0, 0, -1), domain.StatusCompleted, true)
	todayOpen := fx.seedExercise(t, now, domain.StatusScheduled, false)
	future := fx.seedExercise(t, now.AddDate(0, 0, 1), domain.StatusScheduled, false)

	sweeper := NewMissedExerciseSweeper(fx.exercises)
	sweeper.Sweep(context.Background())

	assert.Equal(t, domain.StatusMissed, fx.exercises.byID(pastScheduled.ID).Status)
	assert.Equal(t, domain.StatusMissed, fx.exercises.byID(pastStarted.ID).Status)
	// Completed is terminal: the sweep never overrides it.
	assert.Equal(t, domain.StatusCompleted, fx.exercises.byID(pastCompleted.ID).Status)
	// Today and the future are untouched.
	assert.Equal(t, domain.StatusScheduled, fx.exercises.byID(todayOpen.ID).Status)
	assert.Equal(t, domain.StatusScheduled, fx.exercises.byID(future.ID).Status)
}

func TestSweeper_Idempotent(t *testing.T) {
	fx := newWorkoutServiceFixture(t)
	now := time.Now().UTC()

	e := fx.seedExercise(t, now.AddDate(0, 0, -3), domain.StatusScheduled, false)

	sweeper := NewMissedExerciseSweeper(fx.exercises)
	sweeper.Sweep(context.Background())
	sweeper.Sweep(context.Background())

	assert.Equal(t, domain.StatusMissed, fx.exercises.byID(e.ID).Status)

	count, err := fx.exercises.MarkMissedBefore(context.Background(), now)
	assert.NoError(t, err)
	assert.Zero(t, count, "second sweep should find nothing to mark")
}

func TestSweeper_MissedStepsStayAddressable(t *testing.T) {
	// After the sweep, completing a step of a missed exercise must fail and
	// leave the row untouched.
	fx := newWorkoutServiceFixture(t)
	now := time.Now().UTC()

	e := fx.seedExercise(t, now.AddDate(0, 0, -1), domain.StatusStarted, true, false)

	sweeper := NewMissedExerciseSweeper(fx.exercises)
	sweeper.Sweep(context.Background())

	err := fx.service.CompleteStep(context.Background(), e.Steps[1].ID, fx.userID)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
	assert.Equal(t, domain.StatusMissed, fx.exercises.byID(e.ID).Status)
	assert.False(t, fx.exercises.byID(e.ID).Steps[1].Completed)
}
