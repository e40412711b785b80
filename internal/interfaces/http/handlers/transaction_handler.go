package handlers

import (
	"net/http"
	"strconv"

	"fraud-radar.backend/internal/interfaces/http/middleware"
	"fraud-radar.backend/internal/interfaces/http/response"
	"fraud-radar.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	txUsecase *usecases.TransactionUsecase
}

func NewTransactionHandler(txUsecase *usecases.TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{txUsecase: txUsecase}
}

// ListTransactions lists the caller's transactions with pagination and an
// optional risk_level filter
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	riskLevel := c.Query("risk_level")

	txs, meta, err := h.txUsecase.ListTransactions(c.Request.Context(), userID, riskLevel, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"transactions": txs,
		"pagination":   meta,
	})
}

// GetTransaction fetches one transaction owned by the caller
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return
	}

	tx, err := h.txUsecase.GetTransaction(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transaction": tx})
}
