package repository

import (
	"context"
	"time"

	"fitlife/fitness-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
	// ErrStaleState is returned by conditional (compare-and-set) updates when
	// the filter matched no document: the row was concurrently completed,
	// missed or removed between the caller's read and its write.
	ErrStaleState   = RepositoryError("stale state")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// WorkoutPlanRepository defines the interface for interacting with workout
// plan data.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error)
	// GetLatestByUserID returns the most recently created plan for the user,
	// used for the one-plan-per-calendar-month check.
	GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error)
	Update(ctx context.Context, plan *domain.WorkoutPlan) error
	Delete(ctx context.Context, planID, userID primitive.ObjectID) error
}

// ExerciseRepository defines the interface for interacting with scheduled
// exercises. Steps are embedded in the exercise document, so the
// compare-and-set methods below are single-document (atomic) updates.
type ExerciseRepository interface {
	InsertMany(ctx context.Context, exercises []domain.Exercise) error
	DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error

	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Exercise, error)
	GetByStepID(ctx context.Context, stepID string, userID primitive.ObjectID) (*domain.Exercise, error)
	// GetOpenByUserOnDate returns the user's not-yet-completed exercises
	// scheduled for the given calendar date, sorted by name.
	GetOpenByUserOnDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.Exercise, error)
	// GetPastByUser returns exercises dated strictly before the cutoff,
	// newest first, at most limit rows.
	GetPastByUser(ctx context.Context, userID primitive.ObjectID, before time.Time, limit int64) ([]domain.Exercise, error)
	GetByUserInRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Exercise, error)
	GetCompletedInRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.Exercise, error)
	// GetByUserSortedDesc returns the user's exercises ordered by date
	// descending, at most limit rows (0 means no limit).
	GetByUserSortedDesc(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.Exercise, error)
	CountCompleted(ctx context.Context, userID primitive.ObjectID) (int64, error)

	// MarkStepCompleted sets the step's completed flag and moves the parent
	// exercise to started, guarded on the exercise being non-terminal and the
	// step still incomplete. Returns ErrStaleState when the guard fails.
	MarkStepCompleted(ctx context.Context, stepID string, userID primitive.ObjectID) error
	// CompleteIfAllStepsDone transitions the exercise to completed when no
	// incomplete step remains; reports whether the transition happened.
	CompleteIfAllStepsDone(ctx context.Context, exerciseID, userID primitive.ObjectID) (bool, error)
	// CompleteExercise transitions the exercise to completed, guarded on it
	// being non-terminal with every step completed. Returns ErrStaleState
	// when the guard fails.
	CompleteExercise(ctx context.Context, exerciseID, userID primitive.ObjectID) error
	// MarkMissedBefore flips every non-terminal exercise dated strictly
	// before the cutoff to missed and returns the number of rows touched.
	MarkMissedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ExerciseLogRepository defines the interface for free-form activity logs.
type ExerciseLogRepository interface {
	Create(ctx context.Context, entry *domain.ExerciseLog) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ExerciseLog, error)
}
