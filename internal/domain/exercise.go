package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseStatus is the lifecycle state of a scheduled exercise.
//
// Legal transitions:
//
//	Scheduled -> Started -> Completed
//	Scheduled -> Missed
//	Started   -> Missed
//
// Completed and Missed are terminal: once an exercise reaches either, no
// further mutation is allowed.
type ExerciseStatus string

const (
	StatusScheduled ExerciseStatus = "scheduled"
	StatusStarted   ExerciseStatus = "started"
	StatusCompleted ExerciseStatus = "completed"
	StatusMissed    ExerciseStatus = "missed"
)

// Terminal reports whether the status permits no further transitions.
func (s ExerciseStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusMissed
}

// CanTransition reports whether moving from s to target is a legal move.
// All transition checks in the system go through here so the
// mutual-exclusion and terminality rules live in one place.
func (s ExerciseStatus) CanTransition(target ExerciseStatus) bool {
	if s.Terminal() {
		return false
	}
	switch target {
	case StatusStarted:
		return s == StatusScheduled || s == StatusStarted
	case StatusCompleted, StatusMissed:
		return s == StatusScheduled || s == StatusStarted
	default:
		return false
	}
}

// Step is a single unit of progress inside an exercise. Completion is
// monotonic: a step never goes back to incomplete.
type Step struct {
	ID              string `bson:"id" json:"id"` // UUID, unique within the collection
	Description     string `bson:"description" json:"description"`
	DurationMinutes int    `bson:"durationMinutes" json:"durationMinutes"`
	Completed       bool   `bson:"completed" json:"isCompleted"`
}

// Exercise is a single scheduled workout occurrence. Steps are embedded in
// the exercise document so that step completion, the completion cascade and
// the missed sweep are all single-document writes.
type Exercise struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID          primitive.ObjectID `bson:"planId" json:"planId"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"`
	Date            time.Time          `bson:"date" json:"date"` // Calendar date, midnight UTC
	Status          ExerciseStatus     `bson:"status" json:"status"`
	Steps           []Step             `bson:"steps" json:"steps"`
	ImageURL        string             `bson:"-" json:"imageUrl,omitempty"` // Presigned, filled per request
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Transition applies a status change after validating it.
func (e *Exercise) Transition(target ExerciseStatus) error {
	if !e.Status.CanTransition(target) {
		return fmt.Errorf("illegal exercise transition %s -> %s", e.Status, target)
	}
	e.Status = target
	return nil
}

// AllStepsCompleted reports whether every owned step is done. An exercise
// may only be completed once this holds.
func (e *Exercise) AllStepsCompleted() bool {
	for _, s := range e.Steps {
		if !s.Completed {
			return false
		}
	}
	return true
}

// StepByID returns the embedded step with the given ID, or nil.
func (e *Exercise) StepByID(stepID string) *Step {
	for i := range e.Steps {
		if e.Steps[i].ID == stepID {
			return &e.Steps[i]
		}
	}
	return nil
}

// Started/Completed/Missed mirror the wire format the mobile clients expect;
// the booleans are derived from the tagged status and never stored.

func (e *Exercise) IsStarted() bool   { return e.Status == StatusStarted || e.Status == StatusCompleted }
func (e *Exercise) IsCompleted() bool { return e.Status == StatusCompleted }
func (e *Exercise) IsMissed() bool    { return e.Status == StatusMissed }
