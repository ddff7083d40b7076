package api

import (
	"net/http"

	"fitlife/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the aggregated home-screen payload.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetOverview returns the user's dashboard in one response.
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	overview, err := h.dashboardService.GetOverview(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to build dashboard overview")
		return
	}

	c.JSON(http.StatusOK, overview)
}
