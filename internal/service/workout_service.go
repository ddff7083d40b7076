package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"fitlife/fitness-backend/internal/domain"
	"fitlife/fitness-backend/internal/repository"
	"fitlife/fitness-backend/internal/storage"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrPlanNotFound         = errors.New("workout plan not found")
	ErrPlanAlreadyExists    = errors.New("workout plan already exists for the current month")
	ErrExerciseNotFound     = errors.New("exercise not found or no longer open")
	ErrStepNotFound         = errors.New("step not found")
	ErrStepAlreadyCompleted = errors.New("step is already completed")
	ErrStepsNotCompleted    = errors.New("not all steps are completed")
)

// streakScanWindow bounds the streak walk; a streak cannot be longer than a
// year of rows, so there is no point scanning a user's full history.
const streakScanWindow = 366 * 2

// pastWorkoutsLimit caps the past-workouts summary.
const pastWorkoutsLimit = 5

// WeatherProvider is the narrow contract to the weather collaborator.
// Unavailability is expected and recovered locally with a default snapshot.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, city string) (domain.WeatherSnapshot, error)
}

// PlanDetails is a plan together with its generated exercises.
type PlanDetails struct {
	domain.WorkoutPlan
	Exercises []domain.Exercise `json:"exercises"`
}

// WorkoutService is the workout progress engine: plan generation and
// lifecycle, step/exercise completion, and derived statistics.
type WorkoutService interface {
	CreatePlan(ctx context.Context, userID primitive.ObjectID, planType domain.PlanType) (*PlanDetails, error)
	UpdatePlan(ctx context.Context, planID, userID primitive.ObjectID, planType domain.PlanType) (*PlanDetails, error)
	DeletePlan(ctx context.Context, planID, userID primitive.ObjectID) error

	GetExercisesForToday(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	GetExerciseWithSteps(ctx context.Context, exerciseID, userID primitive.ObjectID) (*domain.Exercise, error)
	GetPastWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)

	CompleteStep(ctx context.Context, stepID string, userID primitive.ObjectID) error
	CompleteExercise(ctx context.Context, exerciseID, userID primitive.ObjectID) error

	GetTotalWorkouts(ctx context.Context, userID primitive.ObjectID) (int64, error)
	GetWeeklyStats(ctx context.Context, userID primitive.ObjectID) (*WeeklyStats, error)
	GetLastWeekStats(ctx context.Context, userID primitive.ObjectID) (*WeeklyStats, error)
	GetStreak(ctx context.Context, userID primitive.ObjectID) (int, error)
	GetGraphData(ctx context.Context, userID primitive.ObjectID) ([]GraphPoint, error)
}

type workoutService struct {
	userRepo     repository.UserRepository
	planRepo     repository.WorkoutPlanRepository
	exerciseRepo repository.ExerciseRepository
	weather      WeatherProvider
	fileStorage  storage.FileStorage // Optional; exercise images degrade gracefully
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	userRepo repository.UserRepository,
	planRepo repository.WorkoutPlanRepository,
	exerciseRepo repository.ExerciseRepository,
	weather WeatherProvider,
	fileStorage storage.FileStorage,
) WorkoutService {
	return &workoutService{
		userRepo:     userRepo,
		planRepo:     planRepo,
		exerciseRepo: exerciseRepo,
		weather:      weather,
		fileStorage:  fileStorage,
	}
}

// === Plan lifecycle ===

// CreatePlan generates and persists a month's workout plan for the user.
// At most one plan may be created per user per calendar month.
func (s *workoutService) CreatePlan(ctx context.Context, userID primitive.ObjectID, planType domain.PlanType) (*PlanDetails, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	latest, err := s.planRepo.GetLatestByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if latest != nil &&
		latest.CreatedAt.Month() == now.Month() &&
		latest.CreatedAt.Year() == now.Year() {
		log.WithField("userID", userID.Hex()).Debug("workout plan already exists for the current month")
		return nil, ErrPlanAlreadyExists
	}

	exercises, err := s.generateExercises(ctx, user, planType, now)
	if err != nil {
		return nil, err
	}

	plan := &domain.WorkoutPlan{
		UserID:      userID,
		Description: string(planType),
	}
	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("create workout plan: %w", err)
	}
	plan.ID = planID

	for i := range exercises {
		exercises[i].PlanID = planID
	}
	if err := s.exerciseRepo.InsertMany(ctx, exercises); err != nil {
		return nil, fmt.Errorf("persist generated exercises: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":    userID.Hex(),
		"planID":    planID.Hex(),
		"planType":  planType,
		"exercises": len(exercises),
	}).Info("workout plan created")

	return &PlanDetails{WorkoutPlan: *plan, Exercises: exercises}, nil
}

// UpdatePlan regenerates the plan's schedule for the new goal. The previous
// exercise set is fully replaced, not merged.
func (s *workoutService) UpdatePlan(ctx context.Context, planID, userID primitive.ObjectID, planType domain.PlanType) (*PlanDetails, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.UserID != userID {
		log.WithField("planID", planID.Hex()).Debug("plan does not belong to user")
		return nil, ErrPlanNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	exercises, err := s.generateExercises(ctx, user, planType, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	for i := range exercises {
		exercises[i].PlanID = planID
	}

	// Replace: discard the old generation before inserting the new one.
	if err := s.exerciseRepo.DeleteByPlanID(ctx, planID); err != nil {
		return nil, fmt.Errorf("discard previous exercises: %w", err)
	}
	if err := s.exerciseRepo.InsertMany(ctx, exercises); err != nil {
		return nil, fmt.Errorf("persist regenerated exercises: %w", err)
	}

	plan.Description = string(planType)
	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	log.WithFields(log.Fields{
		"planID":    planID.Hex(),
		"planType":  planType,
		"exercises": len(exercises),
	}).Info("workout plan updated")

	return &PlanDetails{WorkoutPlan: *plan, Exercises: exercises}, nil
}

// DeletePlan removes the plan and all exercises generated for it.
func (s *workoutService) DeletePlan(ctx context.Context, planID, userID primitive.ObjectID) error {
	if err := s.planRepo.Delete(ctx, planID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	if err := s.exerciseRepo.DeleteByPlanID(ctx, planID); err != nil {
		return fmt.Errorf("delete plan exercises: %w", err)
	}
	log.WithField("planID", planID.Hex()).Info("workout plan deleted")
	return nil
}

// generateExercises resolves the generation inputs (user preferences,
// current weather) and runs the schedule generator. Weather unavailability
// is tolerated: the generator substitutes a default snapshot.
func (s *workoutService) generateExercises(ctx context.Context, user *domain.User, planType domain.PlanType, now time.Time) ([]domain.Exercise, error) {
	var snapshot *domain.WeatherSnapshot
	if s.weather != nil {
		w, err := s.weather.CurrentWeather(ctx, user.City)
		if err != nil {
			log.WithError(err).WithField("city", user.City).
				Warn("weather lookup failed, using default snapshot")
		} else {
			snapshot = &w
		}
	}
	return GenerateSchedule(user.ID, planType, user.Frequency, user.CreatedAt, now, snapshot)
}

// === Exercise views ===

// GetExercisesForToday returns the user's still-open exercises for today.
func (s *workoutService) GetExercisesForToday(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.GetOpenByUserOnDate(ctx, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.attachImages(ctx, exercises)
	return exercises, nil
}

// GetExerciseWithSteps returns a single exercise with its embedded steps.
func (s *workoutService) GetExerciseWithSteps(ctx context.Context, exerciseID, userID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	s.attachImage(ctx, exercise, rand.Intn(4)+1)
	return exercise, nil
}

// GetPastWorkouts returns the most recent exercises dated before today.
func (s *workoutService) GetPastWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.GetPastByUser(ctx, userID, time.Now().UTC(), pastWorkoutsLimit)
	if err != nil {
		return nil, err
	}
	s.attachImages(ctx, exercises)
	return exercises, nil
}

// attachImages decorates a listing with presigned illustration URLs,
// best-effort: listing must not fail because storage is down.
func (s *workoutService) attachImages(ctx context.Context, exercises []domain.Exercise) {
	for i := range exercises {
		s.attachImage(ctx, &exercises[i], i%5+1)
	}
}

func (s *workoutService) attachImage(ctx context.Context, exercise *domain.Exercise, n int) {
	if s.fileStorage == nil {
		return
	}
	key := fmt.Sprintf("exercise-images/Health%d.png", n)
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
	if err != nil {
		log.WithError(err).WithField("key", key).Debug("failed to presign exercise image")
		return
	}
	exercise.ImageURL = url
}

// === Completion state machine ===

// CompleteStep marks one step completed and moves its parent exercise to
// started; when the last incomplete step completes, the exercise cascades to
// completed within the same conditional write. Steps are the atomic unit of
// user progress; the exercise aggregate is never completed out from under
// its steps.
func (s *workoutService) CompleteStep(ctx context.Context, stepID string, userID primitive.ObjectID) error {
	exercise, err := s.exerciseRepo.GetByStepID(ctx, stepID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStepNotFound
		}
		return err
	}

	if exercise.Status.Terminal() {
		log.WithFields(log.Fields{
			"exerciseID": exercise.ID.Hex(),
			"status":     exercise.Status,
		}).Debug("cannot complete step of a closed exercise")
		return ErrExerciseNotFound
	}
	if step := exercise.StepByID(stepID); step != nil && step.Completed {
		return ErrStepAlreadyCompleted
	}

	if err := s.exerciseRepo.MarkStepCompleted(ctx, stepID, userID); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			// Lost a race: someone completed the step, completed the
			// exercise, or the sweeper marked it missed since our read.
			return s.classifyStepConflict(ctx, stepID, userID)
		}
		return err
	}

	completed, err := s.exerciseRepo.CompleteIfAllStepsDone(ctx, exercise.ID, userID)
	if err != nil {
		return err
	}
	if completed {
		log.WithField("exerciseID", exercise.ID.Hex()).Info("exercise completed via final step")
	}
	return nil
}

// classifyStepConflict re-reads the row after a failed compare-and-set to
// report the precise reason.
func (s *workoutService) classifyStepConflict(ctx context.Context, stepID string, userID primitive.ObjectID) error {
	exercise, err := s.exerciseRepo.GetByStepID(ctx, stepID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStepNotFound
		}
		return err
	}
	if exercise.Status.Terminal() {
		return ErrExerciseNotFound
	}
	if step := exercise.StepByID(stepID); step != nil && step.Completed {
		return ErrStepAlreadyCompleted
	}
	return repository.ErrUpdateFailed
}

// CompleteExercise is the direct completion shortcut. It requires every step
// to already be completed.
func (s *workoutService) CompleteExercise(ctx context.Context, exerciseID, userID primitive.ObjectID) error {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	if exercise.Status.Terminal() {
		return ErrExerciseNotFound
	}
	if !exercise.AllStepsCompleted() {
		log.WithField("exerciseID", exerciseID.Hex()).Debug("not all steps are completed")
		return ErrStepsNotCompleted
	}

	if err := s.exerciseRepo.CompleteExercise(ctx, exerciseID, userID); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			// Terminal state won the race.
			return ErrExerciseNotFound
		}
		return err
	}
	log.WithField("exerciseID", exerciseID.Hex()).Info("exercise marked as completed")
	return nil
}

// === Stats ===

// GetTotalWorkouts counts the user's completed exercises.
func (s *workoutService) GetTotalWorkouts(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	total, err := s.exerciseRepo.CountCompleted(ctx, userID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		log.WithField("userID", userID.Hex()).Debug("no completed workouts found")
	}
	return total, nil
}

// GetWeeklyStats summarizes the current calendar week (Sunday-based).
func (s *workoutService) GetWeeklyStats(ctx context.Context, userID primitive.ObjectID) (*WeeklyStats, error) {
	from := startOfWeek(time.Now().UTC())
	exercises, err := s.exerciseRepo.GetByUserInRange(ctx, userID, from, from.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}
	stats := buildWeeklyStats(exercises)
	return &stats, nil
}

// GetLastWeekStats summarizes completed workouts in the trailing week
// window [today-7, today).
func (s *workoutService) GetLastWeekStats(ctx context.Context, userID primitive.ObjectID) (*WeeklyStats, error) {
	today := truncateToDay(time.Now().UTC())
	completed, err := s.exerciseRepo.GetCompletedInRange(ctx, userID, today.AddDate(0, 0, -7), today)
	if err != nil {
		return nil, err
	}
	stats := buildLastWeekStats(completed)
	return &stats, nil
}

// GetStreak computes the user's consecutive-day workout streak.
func (s *workoutService) GetStreak(ctx context.Context, userID primitive.ObjectID) (int, error) {
	exercises, err := s.exerciseRepo.GetByUserSortedDesc(ctx, userID, streakScanWindow)
	if err != nil {
		return 0, err
	}
	return calculateStreak(exercises), nil
}

// GetGraphData returns the 7-point completed-workouts series ending today.
func (s *workoutService) GetGraphData(ctx context.Context, userID primitive.ObjectID) ([]GraphPoint, error) {
	now := time.Now().UTC()
	today := truncateToDay(now)
	completed, err := s.exerciseRepo.GetCompletedInRange(ctx, userID, today.AddDate(0, 0, -6), today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return buildGraphSeries(completed, now), nil
}
