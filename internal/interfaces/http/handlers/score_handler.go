package handlers

import (
	"net/http"

	"fraud-radar.backend/internal/domain/entities"
	"fraud-radar.backend/internal/interfaces/http/middleware"
	"fraud-radar.backend/internal/interfaces/http/response"
	"fraud-radar.backend/internal/metrics"
	"fraud-radar.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

type ScoreHandler struct {
	scoreUsecase *usecases.ScoreUsecase
}

func NewScoreHandler(scoreUsecase *usecases.ScoreUsecase) *ScoreHandler {
	return &ScoreHandler{scoreUsecase: scoreUsecase}
}

// ScoreTransaction scores a transaction for fraud and records it
func (h *ScoreHandler) ScoreTransaction(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
		return
	}
	apiKeyID, exists := middleware.GetApiKeyID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
		return
	}

	var input entities.ScoreTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: must be a positive number"})
		return
	}

	result, err := h.scoreUsecase.ScoreTransaction(c.Request.Context(), userID, apiKeyID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.TransactionsScoredTotal.WithLabelValues(string(result.RiskLevel)).Inc()
	response.Success(c, http.StatusOK, result)
}
