package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Second)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("192.168.1.1"), "request %d should be allowed", i+1)
	}
	assert.False(t, limiter.Allow("192.168.1.1"), "4th request should be blocked")
	assert.True(t, limiter.Allow("192.168.1.2"), "other clients are independent")
}

func TestRateLimiter_WindowExpiration(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(2, 500*time.Millisecond)
	limiter.now = func() time.Time { return now }

	limiter.Allow("192.168.1.1")
	limiter.Allow("192.168.1.1")
	assert.False(t, limiter.Allow("192.168.1.1"))

	now = now.Add(600 * time.Millisecond)
	assert.True(t, limiter.Allow("192.168.1.1"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(5, 100*time.Millisecond)
	limiter.now = func() time.Time { return now }

	limiter.Allow("192.168.1.1")
	limiter.Allow("192.168.1.2")
	limiter.Allow("192.168.1.3")
	assert.Len(t, limiter.clients, 3)

	now = now.Add(50 * time.Millisecond)
	limiter.Allow("192.168.1.1")
	now = now.Add(60 * time.Millisecond)
	limiter.cleanup()
	assert.Len(t, limiter.clients, 1, "recently active client is kept")

	now = now.Add(time.Second)
	limiter.cleanup()
	assert.Empty(t, limiter.clients)
}

func TestRateLimiter_RefillsGradually(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(4, time.Second)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 4; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"))
	}
	assert.False(t, limiter.Allow("10.0.0.1"))

	// One token every 250ms.
	now = now.Add(260 * time.Millisecond)
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.Equal(t, 1, limiter.retryAfter())
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	h := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPut, "/api/services/1/security", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req.RemoteAddr = "10.0.0.1:6666" // new port, same client
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}
