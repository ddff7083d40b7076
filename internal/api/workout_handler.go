package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitlife/fitness-backend/internal/domain"
	"fitlife/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler exposes the workout plan lifecycle, completion and stats
// endpoints.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request/Response Structs ---

type CreatePlanRequest struct {
	PlanType string `json:"planType" binding:"required"`
}

type UpdatePlanRequest struct {
	PlanType string `json:"planType" binding:"required"`
}

// --- Plan lifecycle ---

// CreatePlan generates a month's workout plan for the authenticated user.
func (h *WorkoutHandler) CreatePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	planType, err := domain.ParsePlanType(req.PlanType)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.workoutService.CreatePlan(c.Request.Context(), userID, planType)
	if err != nil {
		h.handleWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// UpdatePlan changes the plan's goal and regenerates its schedule.
func (h *WorkoutHandler) UpdatePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	planType, err := domain.ParsePlanType(req.PlanType)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.workoutService.UpdatePlan(c.Request.Context(), planID, userID, planType)
	if err != nil {
		h.handleWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeletePlan removes the plan and its generated exercises.
func (h *WorkoutHandler) DeletePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	if err := h.workoutService.DeletePlan(c.Request.Context(), planID, userID); err != nil {
		h.handleWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workout plan deleted"})
}

// --- Exercise views ---

// GetTodayExercises lists the user's still-open exercises scheduled for today.
func (h *WorkoutHandler) GetTodayExercises(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	exercises, err := h.workoutService.GetExercisesForToday(c.Request.Context(), userID)
	if err != nil {
		h.handleWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, exercises)
}

// GetExercise returns one exercise with its steps.
func (h *WorkoutHandler) GetExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	exercise, err := h.workoutService.GetExerciseWithSteps(c.Request.Context(), exerciseID, userID)
	if err != nil {
		h.handleWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, exercise)
}

// GetPastWorkouts lists the most recent exercises dated before today.
func (h *WorkoutHandler) GetPastWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	exercises, err := h.workoutService.GetPastWorkouts(c.Request.Context(), userID)
	if err != nil {
		h.handleWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, exercises)
}

// --- Completion ---

// CompleteStep marks a single step completed, cascading to the exercise when
// it was the last one open.
func (h *WorkoutHandler) CompleteStep(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	stepID := c.Param("stepId")
	if stepID == "" {
		abortWithError(c, http.StatusBadRequest, "Step ID is required")
		return
	}

	if err := h.workoutService.CompleteStep(c.Request.Context(), stepID, userID); err != nil {
		h.handleWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Step completed"})
}

// CompleteExercise marks an exercise completed once all its steps are done.
func (h *WorkoutHandler) CompleteExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	if err := h.workoutService.CompleteExercise(c.Request.Context(), exerciseID, userID); err != nil {
		h.handleWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exercise completed"})
}

// --- Stats ---

func (h *WorkoutHandler) GetTotalWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	total, err := h.workoutService.GetTotalWorkouts(c.Request.Context(), userID)
	if err != nil {
		h.handleWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"totalWorkouts": total})
}

func (h *WorkoutHandler) GetWeeklyStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	stats, err := h.workoutService.GetWeeklyStats(c.Request.Context(), userID)
	if err != nil {
		h.handleWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *WorkoutHandler) GetLastWeekStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	stats, err := h.workoutService.GetLastWeekStats(c.Request.Context(), userID)
	if err != nil {
		h.handleWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *WorkoutHandler) GetStreak(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	streak, err := h.workoutService.GetStreak(c.Request.Context(), userID)
	if err != nil {
		h.handleWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"streak": streak})
}

func (h *WorkoutHandler) GetGraphData(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	graph, err := h.workoutService.GetGraphData(c.Request.Context(), userID)
	if err != nil {
		h.handleWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, graph)
}

// handleWorkoutError maps service errors to HTTP status codes.
func (h *WorkoutHandler) handleWorkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrStepNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanAlreadyExists),
		errors.Is(err, service.ErrStepAlreadyCompleted),
		errors.Is(err, service.ErrStepsNotCompleted):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidFrequency),
		errors.Is(err, service.ErrInvalidPlanType):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
