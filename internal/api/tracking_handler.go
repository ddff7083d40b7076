package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitlife/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TrackingHandler exposes free-form exercise logging.
type TrackingHandler struct {
	trackingService service.ExerciseTrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(trackingService service.ExerciseTrackingService) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService}
}

type LogExerciseRequest struct {
	ExerciseName    string `json:"exerciseName" binding:"required"`
	DurationMinutes int    `json:"durationMinutes" binding:"required,min=1"`
	CaloriesBurned  int    `json:"caloriesBurned" binding:"min=0"`
}

// LogExercise records one activity entry outside the generated plan.
func (h *TrackingHandler) LogExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req LogExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.trackingService.LogExercise(c.Request.Context(), userID, req.ExerciseName, req.DurationMinutes, req.CaloriesBurned)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to log exercise")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetLoggedExercises lists the user's logged activity, newest first.
func (h *TrackingHandler) GetLoggedExercises(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	entries, err := h.trackingService.GetUserExercises(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch logged exercises")
		return
	}

	c.JSON(http.StatusOK, entries)
}
