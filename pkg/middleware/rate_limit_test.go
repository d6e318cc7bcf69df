package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samuelpalacioss/cue/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Service: "middleware-test",
	})
}

func TestClientRateLimiter_Allow(t *testing.T) {
	rl := NewClientRateLimiter(3, time.Minute, DefaultClientKeyExtractor, testLogger())
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("fourth request within the window should be rejected")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("separate client keys must not share a window")
	}
}

func TestClientRateLimiter_WindowExpiry(t *testing.T) {
	rl := NewClientRateLimiter(1, 20*time.Millisecond, DefaultClientKeyExtractor, testLogger())
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("second request inside window should be rejected")
	}

	time.Sleep(30 * time.Millisecond)
	if !rl.Allow("10.0.0.1") {
		t.Error("request after window expiry should be allowed")
	}
}

func TestClientRateLimitMiddleware(t *testing.T) {
	rl := NewClientRateLimiter(1, time.Minute, DefaultClientKeyExtractor, testLogger())
	defer rl.Stop()

	handler := ClientRateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/alice/intro-call", nil)
	req.RemoteAddr = "10.0.0.1:54321"

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", second.Code)
	}
}

func TestDefaultClientKeyExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	if got := DefaultClientKeyExtractor(req); got != "10.0.0.1" {
		t.Errorf("expected 10.0.0.1, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := DefaultClientKeyExtractor(req); got != "203.0.113.7" {
		t.Errorf("expected first forwarded hop, got %q", got)
	}
}
