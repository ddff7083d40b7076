package api

import (
	"net/http"

	"fitlife/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	workoutService service.WorkoutService,
	dashboardService service.DashboardService,
	adviceService service.HealthAdviceService,
	trackingService service.ExerciseTrackingService,
	weather service.WeatherProvider,
	defaultCity string,
) {
	authHandler := NewAuthHandler(authService)
	workoutHandler := NewWorkoutHandler(workoutService)
	dashboardHandler := NewDashboardHandler(dashboardService)
	adviceHandler := NewAdviceHandler(adviceService)
	trackingHandler := NewTrackingHandler(trackingService)
	weatherHandler := NewWeatherHandler(weather, defaultCity)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
		})

		// --- Workout plan lifecycle ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", workoutHandler.CreatePlan)
			planGroup.PUT("/:id", workoutHandler.UpdatePlan)
			planGroup.DELETE("/:id", workoutHandler.DeletePlan)
		}

		// --- Exercises and completion ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("/today", workoutHandler.GetTodayExercises)
			exerciseGroup.GET("/past", workoutHandler.GetPastWorkouts)
			exerciseGroup.GET("/:id", workoutHandler.GetExercise)
			exerciseGroup.POST("/:id/complete", workoutHandler.CompleteExercise)
			exerciseGroup.POST("/steps/:stepId/complete", workoutHandler.CompleteStep)
		}

		// --- Stats ---
		statsGroup := protected.Group("/stats")
		{
			statsGroup.GET("/total", workoutHandler.GetTotalWorkouts)
			statsGroup.GET("/weekly", workoutHandler.GetWeeklyStats)
			statsGroup.GET("/last-week", workoutHandler.GetLastWeekStats)
			statsGroup.GET("/streak", workoutHandler.GetStreak)
			statsGroup.GET("/graph", workoutHandler.GetGraphData)
		}

		// --- Dashboard, advice, tracking, weather ---
		protected.GET("/dashboard", dashboardHandler.GetOverview)
		protected.GET("/advice", adviceHandler.GetAdvice)

		trackingGroup := protected.Group("/tracking")
		{
			trackingGroup.POST("/exercises", trackingHandler.LogExercise)
			trackingGroup.GET("/exercises", trackingHandler.GetLoggedExercises)
		}

		protected.GET("/weather", weatherHandler.GetCurrentWeather)
	}
}
