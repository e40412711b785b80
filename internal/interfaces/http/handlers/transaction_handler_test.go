package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fraud-radar.backend/internal/domain/entities"
	"fraud-radar.backend/internal/interfaces/http/handlers"
	"fraud-radar.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransactionRouter(txRepo *stubTxRepo, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewTransactionHandler(usecases.NewTransactionUsecase(txRepo))

	r := gin.New()
	auth := authAs(userID, uuid.New())
	r.GET("/api/v1/transactions", auth, h.ListTransactions)
	r.GET("/api/v1/transactions/:id", auth, h.GetTransaction)
	return r
}

func getPath(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func seedStubTransaction(t *testing.T, repo *stubTxRepo, userID uuid.UUID, level entities.RiskLevel) *entities.Transaction {
	t.Helper()
	tx := &entities.Transaction{
		UserID:     userID,
		Amount:     100,
		Currency:   "USD",
		FraudScore: 0.1,
		RiskLevel:  level,
		Prediction: entities.PredictionLegitimate,
	}
	require.NoError(t, repo.Create(context.Background(), tx))
	return tx
}

func TestListTransactionsEndpoint(t *testing.T) {
	userID := uuid.New()
	txRepo := newStubTxRepo()
	seedStubTransaction(t, txRepo, userID, entities.RiskLevelLow)
	seedStubTransaction(t, txRepo, userID, entities.RiskLevelHigh)
	seedStubTransaction(t, txRepo, uuid.New(), entities.RiskLevelLow) // someone else's
	r := newTransactionRouter(txRepo, userID)

	w := getPath(r, "/api/v1/transactions")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Transactions []json.RawMessage `json:"transactions"`
		Pagination   struct {
			Limit  int   `json:"limit"`
			Offset int   `json:"offset"`
			Total  int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Transactions, 2)
	assert.Equal(t, int64(2), resp.Pagination.Total)
	assert.Equal(t, 50, resp.Pagination.Limit)
}

func TestListTransactionsEndpoint_RiskLevelFilter(t *testing.T) {
	userID := uuid.New()
	txRepo := newStubTxRepo()
	seedStubTransaction(t, txRepo, userID, entities.RiskLevelLow)
	seedStubTransaction(t, txRepo, userID, entities.RiskLevelHigh)
	r := newTransactionRouter(txRepo, userID)

	w := getPath(r, "/api/v1/transactions?risk_level=high")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"riskLevel":"high"`)
	assert.NotContains(t, w.Body.String(), `"riskLevel":"low"`)
}

func TestListTransactionsEndpoint_InvalidRiskLevel(t *testing.T) {
	r := newTransactionRouter(newStubTxRepo(), uuid.New())

	w := getPath(r, "/api/v1/transactions?risk_level=severe")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid risk_level")
}

func TestGetTransactionEndpoint(t *testing.T) {
	userID := uuid.New()
	txRepo := newStubTxRepo()
	tx := seedStubTransaction(t, txRepo, userID, entities.RiskLevelLow)
	r := newTransactionRouter(txRepo, userID)

	w := getPath(r, "/api/v1/transactions/"+tx.ID.String())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), tx.ID.String())
}

func TestGetTransactionEndpoint_InvalidID(t *testing.T) {
	r := newTransactionRouter(newStubTxRepo(), uuid.New())

	w := getPath(r, "/api/v1/transactions/not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid transaction ID"}`, w.Body.String())
}

func TestGetTransactionEndpoint_ForeignOwner(t *testing.T) {
	txRepo := newStubTxRepo()
	tx := seedStubTransaction(t, txRepo, uuid.New(), entities.RiskLevelLow)
	r := newTransactionRouter(txRepo, uuid.New())

	w := getPath(r, "/api/v1/transactions/"+tx.ID.String())

	// Indistinguishable from a record that does not exist.
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"transaction not found"}`, w.Body.String())
}

func TestGetTransactionEndpoint_NotFound(t *testing.T) {
	r := newTransactionRouter(newStubTxRepo(), uuid.New())

	w := getPath(r, "/api/v1/transactions/"+uuid.NewString())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"transaction not found"}`, w.Body.String())
}
