package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fitlife/fitness-backend/internal/domain"
	"fitlife/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubWorkoutService returns a fixed error (or zero values) from every
// operation; the handler tests only exercise the HTTP mapping.
type stubWorkoutService struct {
	err error
}

func (s *stubWorkoutService) CreatePlan(context.Context, primitive.ObjectID, domain.PlanType) (*service.PlanDetails, error) {
	return &service.PlanDetails{}, s.err
}
func (s *stubWorkoutService) UpdatePlan(context.Context, primitive.ObjectID, primitive.ObjectID, domain.PlanType) (*service.PlanDetails, error) {
	return &service.PlanDetails{}, s.err
}
func (s *stubWorkoutService) DeletePlan(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return s.err
}
func (s *stubWorkoutService) GetExercisesForToday(context.Context, primitive.ObjectID) ([]domain.Exercise, error) {
	return []domain.Exercise{}, s.err
}
func (s *stubWorkoutService) GetExerciseWithSteps(context.Context, primitive.ObjectID, primitive.ObjectID) (*domain.Exercise, error) {
	return &domain.Exercise{}, s.err
}
func (s *stubWorkoutService) GetPastWorkouts(context.Context, primitive.ObjectID) ([]domain.Exercise, error) {
	return []domain.Exercise{}, s.err
}
func (s *stubWorkoutService) CompleteStep(context.Context, string, primitive.ObjectID) error {
	return s.err
}
func (s *stubWorkoutService) CompleteExercise(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return s.err
}
func (s *stubWorkoutService) GetTotalWorkouts(context.Context, primitive.ObjectID) (int64, error) {
	return 0, s.err
}
func (s *stubWorkoutService) GetWeeklyStats(context.Context, primitive.ObjectID) (*service.WeeklyStats, error) {
	return &service.WeeklyStats{}, s.err
}
func (s *stubWorkoutService) GetLastWeekStats(context.Context, primitive.ObjectID) (*service.WeeklyStats, error) {
	return &service.WeeklyStats{}, s.err
}
func (s *stubWorkoutService) GetStreak(context.Context, primitive.ObjectID) (int, error) {
	return 0, s.err
}
func (s *stubWorkoutService) GetGraphData(context.Context, primitive.ObjectID) ([]service.GraphPoint, error) {
	return []service.GraphPoint{}, s.err
}

func newWorkoutTestRouter(svc service.WorkoutService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewWorkoutHandler(svc)

	// Inject the user ID directly instead of going through JWT parsing.
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserIDKey, primitive.NewObjectID().Hex())
	})
	router.POST("/plans", handler.CreatePlan)
	router.POST("/exercises/:id/complete", handler.CompleteExercise)
	router.POST("/exercises/steps/:stepId/complete", handler.CompleteStep)
	router.GET("/exercises/:id", handler.GetExercise)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWorkoutHandler_ErrorMapping(t *testing.T) {
	exerciseID := primitive.NewObjectID().Hex()
	cases := []struct {
		name   string
		err    error
		method string
		path   string
		body   string
		want   int
	}{
		{"plan conflict", service.ErrPlanAlreadyExists, http.MethodPost, "/plans", `{"planType":"LoseWeight"}`, http.StatusConflict},
		{"user missing", service.ErrUserNotFound, http.MethodPost, "/plans", `{"planType":"LoseWeight"}`, http.StatusNotFound},
		{"exercise missing", service.ErrExerciseNotFound, http.MethodGet, "/exercises/" + exerciseID, "", http.StatusNotFound},
		{"step missing", service.ErrStepNotFound, http.MethodPost, "/exercises/steps/abc/complete", "", http.StatusNotFound},
		{"step done twice", service.ErrStepAlreadyCompleted, http.MethodPost, "/exercises/steps/abc/complete", "", http.StatusConflict},
		{"steps open", service.ErrStepsNotCompleted, http.MethodPost, "/exercises/" + exerciseID + "/complete", "", http.StatusConflict},
		{"bad plan type", service.ErrInvalidPlanType, http.MethodPost, "/plans", `{"planType":"LoseWeight"}`, http.StatusBadRequest},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			router := newWorkoutTestRouter(&stubWorkoutService{err: c.err})
			rec := doJSON(router, c.method, c.path, c.body)
			assert.Equal(t, c.want, rec.Code)
		})
	}
}

func TestWorkoutHandler_CreatePlan_ValidatesInput(t *testing.T) {
	router := newWorkoutTestRouter(&stubWorkoutService{})

	rec := doJSON(router, http.MethodPost, "/plans", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(router, http.MethodPost, "/plans", `{"planType":"BecomeAstronaut"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(router, http.MethodPost, "/plans", `{"planType":"GainMuscle"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWorkoutHandler_InvalidObjectID(t *testing.T) {
	router := newWorkoutTestRouter(&stubWorkoutService{})

	rec := doJSON(router, http.MethodGet, "/exercises/not-an-id", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
