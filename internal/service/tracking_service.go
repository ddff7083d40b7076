package service

import (
	"context"
	"errors"

	"fitlife/fitness-backend/internal/domain"
	"fitlife/fitness-backend/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseTrackingService records free-form activity outside generated plans.
type ExerciseTrackingService interface {
	LogExercise(ctx context.Context, userID primitive.ObjectID, exerciseName string, durationMinutes, caloriesBurned int) (*domain.ExerciseLog, error)
	GetUserExercises(ctx context.Context, userID primitive.ObjectID) ([]domain.ExerciseLog, error)
}

type exerciseTrackingService struct {
	userRepo repository.UserRepository
	logRepo  repository.ExerciseLogRepository
}

// NewExerciseTrackingService creates a new instance of exerciseTrackingService.
func NewExerciseTrackingService(userRepo repository.UserRepository, logRepo repository.ExerciseLogRepository) ExerciseTrackingService {
	return &exerciseTrackingService{
		userRepo: userRepo,
		logRepo:  logRepo,
	}
}

// LogExercise stores one activity entry for the user.
func (s *exerciseTrackingService) LogExercise(ctx context.Context, userID primitive.ObjectID, exerciseName string, durationMinutes, caloriesBurned int) (*domain.ExerciseLog, error) {
	if exerciseName == "" {
		return nil, errors.New("exercise name is required")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	entry := &domain.ExerciseLog{
		UserID:          userID,
		ExerciseName:    exerciseName,
		DurationMinutes: durationMinutes,
		CaloriesBurned:  caloriesBurned,
	}
	entryID, err := s.logRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID

	log.WithFields(log.Fields{
		"userID":   userID.Hex(),
		"exercise": exerciseName,
	}).Info("exercise logged")
	return entry, nil
}

// GetUserExercises lists the user's logged activity, newest first.
func (s *exerciseTrackingService) GetUserExercises(ctx context.Context, userID primitive.ObjectID) ([]domain.ExerciseLog, error) {
	return s.logRepo.GetByUserID(ctx, userID)
}
