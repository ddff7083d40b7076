package service

import (
	"time"

	"fitlife/fitness-backend/internal/domain"
)

// WeeklyStats summarizes the current calendar week's workouts.
type WeeklyStats struct {
	TotalWorkoutsForTheWeek int `json:"totalWorkoutsForTheWeek"`
	CompletedWorkouts       int `json:"completedWorkouts"`
	TotalWorkoutTime        int `json:"totalWorkoutTime"` // Minutes, completed only
	DaysWorkedOut           int `json:"daysWorkedOut"`
}

// GraphPoint is one day's entry in the 7-point workout series.
type GraphPoint struct {
	Name  string `json:"name"` // Day-of-week name
	Total int    `json:"total"`
}

// The aggregations below are deterministic, side-effect-free functions of a
// fetched exercise snapshot and a reference time; all clock and storage
// access stays in the callers.

// startOfWeek returns midnight of the current week's Sunday.
func startOfWeek(now time.Time) time.Time {
	today := truncateToDay(now)
	return today.AddDate(0, 0, -int(today.Weekday()))
}

// buildWeeklyStats aggregates exercises already filtered to the week window.
func buildWeeklyStats(exercises []domain.Exercise) WeeklyStats {
	stats := WeeklyStats{TotalWorkoutsForTheWeek: len(exercises)}
	days := make(map[time.Time]struct{})
	for _, e := range exercises {
		if !e.IsCompleted() {
			continue
		}
		stats.CompletedWorkouts++
		stats.TotalWorkoutTime += e.DurationMinutes
		days[truncateToDay(e.Date)] = struct{}{}
	}
	stats.DaysWorkedOut = len(days)
	return stats
}

// calculateStreak counts consecutive workout days scanning backward.
//
// The input must be ordered by date descending. The walk stops at the first
// exercise that is not completed — any incomplete exercise truncates the
// streak there, even when the same day also has completed ones — and
// otherwise counts an exercise only when its date is exactly one day before
// the previous counted date.
func calculateStreak(exercises []domain.Exercise) int {
	streak := 0
	var lastDate *time.Time

	for _, e := range exercises {
		if !e.IsCompleted() {
			break
		}
		date := truncateToDay(e.Date)
		if lastDate == nil || date.Equal(lastDate.AddDate(0, 0, -1)) {
			streak++
			lastDate = &date
		} else {
			break
		}
	}
	return streak
}

// buildGraphSeries produces one point per day for the trailing 7 days ending
// today, zero-filled for days without completed workouts.
func buildGraphSeries(completed []domain.Exercise, now time.Time) []GraphPoint {
	counts := make(map[time.Time]int)
	for _, e := range completed {
		counts[truncateToDay(e.Date)]++
	}

	today := truncateToDay(now)
	start := today.AddDate(0, 0, -6)

	points := make([]GraphPoint, 0, 7)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i)
		points = append(points, GraphPoint{
			Name:  date.Weekday().String(),
			Total: counts[date],
		})
	}
	return points
}

// buildLastWeekStats aggregates completed-only exercises from the trailing
// week window [today-7, today).
func buildLastWeekStats(completed []domain.Exercise) WeeklyStats {
	days := make(map[time.Time]struct{})
	totalTime := 0
	for _, e := range completed {
		totalTime += e.DurationMinutes
		days[truncateToDay(e.Date)] = struct{}{}
	}
	return WeeklyStats{
		// The trailing window always spans a full week of candidate days.
		TotalWorkoutsForTheWeek: 7,
		CompletedWorkouts:       len(completed),
		TotalWorkoutTime:        totalTime,
		DaysWorkedOut:           len(days),
	}
}
