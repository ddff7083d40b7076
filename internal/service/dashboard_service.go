package service

import (
	"context"
	"fmt"

	"fitlife/fitness-backend/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardOverview aggregates everything the home screen shows in a single
// payload.
type DashboardOverview struct {
	Temperature              float64      `json:"temperature"`
	TotalWorkouts            int64        `json:"totalWorkouts"`
	Streak                   int          `json:"streak"`
	WeeklyStats              WeeklyStats  `json:"weeklyStats"`
	DaysWorkedOut            int          `json:"daysWorkedOut"`
	MotivationalMessage      string       `json:"motivationalMessage,omitempty"`
	GraphData                []GraphPoint `json:"graphData"`
	AvgWorkoutTime           string       `json:"avgWorkoutTime"` // e.g. "38 min"
	GoalCompletionPercentage float64      `json:"goalCompletionPercentage"`
	GoalCompletionDetails    string       `json:"goalCompletionDetails"` // e.g. "5 of 6 days"
}

// DashboardService composes weather, workout stats and advice into the
// overview payload.
type DashboardService interface {
	GetOverview(ctx context.Context, userID primitive.ObjectID) (*DashboardOverview, error)
}

type dashboardService struct {
	workoutService WorkoutService
	adviceService  HealthAdviceService
	weather        WeatherProvider
	city           string
}

// NewDashboardService creates a new instance of dashboardService.
func NewDashboardService(
	workoutService WorkoutService,
	adviceService HealthAdviceService,
	weather WeatherProvider,
	city string,
) DashboardService {
	return &dashboardService{
		workoutService: workoutService,
		adviceService:  adviceService,
		weather:        weather,
		city:           city,
	}
}

// GetOverview assembles the dashboard. Weather failure degrades to a canned
// snapshot; every other collaborator error is surfaced.
func (s *dashboardService) GetOverview(ctx context.Context, userID primitive.ObjectID) (*DashboardOverview, error) {
	logger := log.WithField("userID", userID.Hex())
	logger.Info("fetching dashboard overview")

	snapshot := domain.WeatherSnapshot{Temperature: 29.7, IsRaining: false}
	if s.weather != nil {
		if w, err := s.weather.CurrentWeather(ctx, s.city); err != nil {
			logger.WithError(err).Warn("weather data not available for dashboard")
		} else {
			snapshot = w
		}
	}

	totalWorkouts, err := s.workoutService.GetTotalWorkouts(ctx, userID)
	if err != nil {
		return nil, err
	}
	weeklyStats, err := s.workoutService.GetWeeklyStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	streak, err := s.workoutService.GetStreak(ctx, userID)
	if err != nil {
		return nil, err
	}
	graphData, err := s.workoutService.GetGraphData(ctx, userID)
	if err != nil {
		return nil, err
	}

	motivationalMessage := ""
	if advice, err := s.adviceService.GetPersonalisedAdvice(ctx, userID); err != nil {
		logger.WithError(err).Warn("failed to fetch motivational advice")
	} else if len(advice) > 0 {
		motivationalMessage = advice[0].Content
	}

	daysWorkedOut := weeklyStats.DaysWorkedOut
	divisor := daysWorkedOut
	if divisor == 0 {
		divisor = 1
	}
	avgWorkoutTime := weeklyStats.TotalWorkoutTime / divisor

	return &DashboardOverview{
		Temperature:              snapshot.Temperature,
		TotalWorkouts:            totalWorkouts,
		Streak:                   streak,
		WeeklyStats:              *weeklyStats,
		DaysWorkedOut:            daysWorkedOut,
		MotivationalMessage:      motivationalMessage,
		GraphData:                graphData,
		AvgWorkoutTime:           fmt.Sprintf("%d min", avgWorkoutTime),
		GoalCompletionPercentage: float64(daysWorkedOut) / 7.0 * 100,
		GoalCompletionDetails:    fmt.Sprintf("%d of 6 days", daysWorkedOut),
	}, nil
}
