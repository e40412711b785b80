package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"fraud-radar.backend/internal/interfaces/http/middleware"
	pkgredis "fraud-radar.backend/pkg/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	pkgredis.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return mr
}

func newIdempotencyRouter(userID uuid.UUID, handlerCalls *int32, status int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/score",
		func(c *gin.Context) { c.Set(middleware.UserIDKey, userID) },
		middleware.IdempotencyMiddleware(),
		func(c *gin.Context) {
			n := atomic.AddInt32(handlerCalls, 1)
			if status >= 400 {
				c.JSON(status, gin.H{"error": "boom"})
				return
			}
			c.JSON(status, gin.H{"attempt": n})
		})
	return r
}

func postScore(r *gin.Engine, idempotencyKey string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(`{}`))
	if idempotencyKey != "" {
		req.Header.Set(middleware.IdempotencyHeader, idempotencyKey)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	setupMiniredis(t)
	var calls int32
	r := newIdempotencyRouter(uuid.New(), &calls, http.StatusOK)

	postScore(r, "")
	postScore(r, "")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	setupMiniredis(t)
	var calls int32
	r := newIdempotencyRouter(uuid.New(), &calls, http.StatusOK)

	first := postScore(r, "retry-1")
	second := postScore(r, "retry-1")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	// The second response is the stored body, not a re-run.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
	assert.Empty(t, first.Header().Get("X-Idempotency-Hit"))
}

func TestIdempotency_DistinctKeysRunSeparately(t *testing.T) {
	setupMiniredis(t)
	var calls int32
	r := newIdempotencyRouter(uuid.New(), &calls, http.StatusOK)

	postScore(r, "key-a")
	postScore(r, "key-b")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_ScopedPerUser(t *testing.T) {
	setupMiniredis(t)
	var callsA, callsB int32
	routerA := newIdempotencyRouter(uuid.New(), &callsA, http.StatusOK)
	routerB := newIdempotencyRouter(uuid.New(), &callsB, http.StatusOK)

	postScore(routerA, "shared-key")
	postScore(routerB, "shared-key")

	// Same header value, different owners: both run.
	assert.Equal(t, int32(1), atomic.LoadInt32(&callsA))
	assert.Equal(t, int32(1), atomic.LoadInt32(&callsB))
}

func TestIdempotency_InProgressConflict(t *testing.T) {
	mr := setupMiniredis(t)
	userID := uuid.New()
	var calls int32
	r := newIdempotencyRouter(userID, &calls, http.StatusOK)

	mr.Set("idempotency:"+userID.String()+":busy-key", "processing")

	w := postScore(r, "busy-key")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestIdempotency_FailureReleasesLock(t *testing.T) {
	mr := setupMiniredis(t)
	userID := uuid.New()
	var calls int32
	r := newIdempotencyRouter(userID, &calls, http.StatusInternalServerError)

	first := postScore(r, "retry-after-failure")
	assert.Equal(t, http.StatusInternalServerError, first.Code)

	// The failed attempt is not replayable and the lock is gone.
	assert.False(t, mr.Exists("idempotency:"+userID.String()+":retry-after-failure"))

	second := postScore(r, "retry-after-failure")
	assert.Equal(t, http.StatusInternalServerError, second.Code)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestIdempotency_StoredResponseExpires(t *testing.T) {
	mr := setupMiniredis(t)
	var calls int32
	r := newIdempotencyRouter(uuid.New(), &calls, http.StatusOK)

	postScore(r, "expiring")
	mr.FastForward(middleware.RetentionDuration + time.Second)
	postScore(r, "expiring")

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
