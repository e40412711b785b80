package handlers

import (
	"net/http"

	"fraud-radar.backend/internal/interfaces/http/middleware"
	"fraud-radar.backend/internal/interfaces/http/response"
	"fraud-radar.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

type UsageHandler struct {
	usageUsecase *usecases.UsageUsecase
}

func NewUsageHandler(usageUsecase *usecases.UsageUsecase) *UsageHandler {
	return &UsageHandler{usageUsecase: usageUsecase}
}

// ListUsage lists the caller's per-period usage counters, newest first
func (h *UsageHandler) ListUsage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
		return
	}

	records, err := h.usageUsecase.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"usage": records})
}
