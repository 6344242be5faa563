package middlewarectx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newNoopLoggerLimit() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/login/", nil)
	req.RemoteAddr = addr
	return req
}

func TestRateLimiter_PerIP(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	var handlerCalls int
	h := limiter.Middleware(newNoopLoggerLimit())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlerCalls++
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, requestFrom("10.0.0.1:5000"))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 2, handlerCalls)

	t.Run("other client has its own budget", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, requestFrom("10.0.0.2:6000"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("throttled body", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, requestFrom("10.0.0.1:5001"))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.JSONEq(t, `{"detail":"Request was throttled."}`, w.Body.String())
	})

	t.Run("tokens refill over time", func(t *testing.T) {
		clock = clock.Add(2 * time.Second)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, requestFrom("10.0.0.1:5000"))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimiter_ForgetsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	assert.True(t, limiter.allow("10.0.0.1"))
	assert.Len(t, limiter.clients, 1)

	clock = clock.Add(idleTTL + time.Minute)
	assert.True(t, limiter.allow("10.0.0.2"))
	assert.Len(t, limiter.clients, 1)
	assert.Contains(t, limiter.clients, "10.0.0.2")
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "192.168.1.5", clientIP(requestFrom("192.168.1.5:4431")))
	assert.Equal(t, "203.0.113.9", clientIP(requestFrom("203.0.113.9")))
}
