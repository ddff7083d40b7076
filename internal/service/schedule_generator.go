package service

import (
	"errors"
	"fmt"
	"time"

	"fitlife/fitness-backend/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidFrequency = errors.New("invalid workout frequency")
	ErrInvalidPlanType  = errors.New("invalid plan type")
)

// workoutDaysFor maps the onboarding frequency answer to workouts per week.
// Unknown or missing answers default to 3.
func workoutDaysFor(frequency domain.WorkoutFrequency) int {
	switch frequency {
	case domain.FrequencyOneToTwo:
		return 2
	case domain.FrequencyThreeFour:
		return 4
	case domain.FrequencyFiveSix:
		return 5
	case domain.FrequencyEveryday:
		return 7
	default:
		return 3
	}
}

// GenerateSchedule procedurally builds the month's exercises for a user.
//
// Candidate dates are every day of the calendar month containing
// referenceDate; a date is selected when the day distance from the user's
// registration date is a multiple of max(1, 7/workoutDays). The selection is
// deterministic and ascending, capped at workoutDays*4 dates (roughly one
// month at the weekly rate). For every selected date two exercises are
// emitted from the template pair picked by weather bucket and goal.
//
// For frequencies that don't divide 7 evenly the real-world gaps are
// uneven (e.g. "3-4 times a week" maps to a stride of 1); mobile clients
// rely on this exact spacing, so don't "fix" it.
//
// An empty result is valid (a stale registration date can leave the modulo
// with no hits); callers must treat it as an empty schedule, not a failure.
func GenerateSchedule(
	userID primitive.ObjectID,
	goal domain.PlanType,
	frequency domain.WorkoutFrequency,
	registrationDate time.Time,
	referenceDate time.Time,
	weather *domain.WeatherSnapshot,
) ([]domain.Exercise, error) {
	workoutDays := workoutDaysFor(frequency)
	if workoutDays <= 0 {
		return nil, ErrInvalidFrequency
	}

	snapshot := domain.DefaultWeather()
	if weather != nil {
		snapshot = *weather
	}

	bucket := bucketForWeather(snapshot)
	pair, err := templatePairFor(bucket, goal)
	if err != nil {
		return nil, err
	}

	interval := 7 / workoutDays
	if interval < 1 {
		interval = 1
	}

	regDate := truncateToDay(registrationDate)
	refDate := truncateToDay(referenceDate)
	monthStart := time.Date(refDate.Year(), refDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := monthStart.AddDate(0, 1, -1).Day()
	maxDates := workoutDays * 4

	var workoutDates []time.Time
	for d := 0; d < daysInMonth && len(workoutDates) < maxDates; d++ {
		date := monthStart.AddDate(0, 0, d)
		daysSinceRegistration := int(date.Sub(regDate).Hours() / 24)
		if daysSinceRegistration%interval == 0 {
			workoutDates = append(workoutDates, date)
		}
	}

	if len(workoutDates) == 0 {
		log.WithFields(log.Fields{
			"userID":           userID.Hex(),
			"registrationDate": regDate.Format("2006-01-02"),
			"referenceDate":    refDate.Format("2006-01-02"),
			"workoutDays":      workoutDays,
		}).Warn("no workout dates generated")
		return []domain.Exercise{}, nil
	}

	exercises := make([]domain.Exercise, 0, len(workoutDates)*2)
	for i, date := range workoutDates {
		day := i + 1
		for _, tmpl := range pair {
			exercises = append(exercises, buildExercise(userID, tmpl, day, date))
		}
	}
	return exercises, nil
}

// buildExercise instantiates one template for a concrete date. Every step
// gets a fresh UUID so step completion can address it directly.
func buildExercise(userID primitive.ObjectID, tmpl exerciseTemplate, day int, date time.Time) domain.Exercise {
	steps := make([]domain.Step, len(tmpl.steps))
	for i, st := range tmpl.steps {
		steps[i] = domain.Step{
			ID:              uuid.NewString(),
			Description:     st.description,
			DurationMinutes: st.minutes,
			Completed:       false,
		}
	}
	return domain.Exercise{
		UserID:          userID,
		Name:            fmt.Sprintf("%s - Day %d", tmpl.name, day),
		Description:     tmpl.description,
		DurationMinutes: tmpl.minutes,
		Date:            date,
		Status:          domain.StatusScheduled,
		Steps:           steps,
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
