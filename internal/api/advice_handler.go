package api

import (
	"errors"
	"net/http"

	"fitlife/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AdviceHandler serves wellness tips.
type AdviceHandler struct {
	adviceService service.HealthAdviceService
}

// NewAdviceHandler creates a new AdviceHandler.
func NewAdviceHandler(adviceService service.HealthAdviceService) *AdviceHandler {
	return &AdviceHandler{adviceService: adviceService}
}

// GetAdvice returns a small selection of health tips for the user.
func (h *AdviceHandler) GetAdvice(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	advice, err := h.adviceService.GetPersonalisedAdvice(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch health advice")
		return
	}

	c.JSON(http.StatusOK, advice)
}
