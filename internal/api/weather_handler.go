package api

import (
	"net/http"

	"fitlife/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// WeatherHandler exposes the current-conditions lookup used by the mobile
// client to explain why a schedule looks the way it does.
type WeatherHandler struct {
	weather     service.WeatherProvider
	defaultCity string
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(weather service.WeatherProvider, defaultCity string) *WeatherHandler {
	return &WeatherHandler{weather: weather, defaultCity: defaultCity}
}

// GetCurrentWeather returns the snapshot for ?city=, falling back to the
// configured default city.
func (h *WeatherHandler) GetCurrentWeather(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		city = h.defaultCity
	}

	snapshot, err := h.weather.CurrentWeather(c.Request.Context(), city)
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Weather data is currently unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"city":        city,
		"temperature": snapshot.Temperature,
		"isRaining":   snapshot.IsRaining,
	})
}
