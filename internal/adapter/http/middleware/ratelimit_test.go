package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rr := httptest.NewRecorder()

		rl.Limit(next).ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d rejected with %d", i, rr.Code)
		}
	}
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"

	rr := httptest.NewRecorder()
	rl.Limit(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("first request rejected with %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	rl.Limit(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
}

func TestRateLimiterIsPerIP(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.RemoteAddr = "203.0.113.7:1234"
	rr := httptest.NewRecorder()
	rl.Limit(next).ServeHTTP(rr, first)

	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.RemoteAddr = "198.51.100.9:1234"
	rr = httptest.NewRecorder()
	rl.Limit(next).ServeHTTP(rr, second)

	if rr.Code != http.StatusOK {
		t.Fatalf("different IP should have its own bucket, got %d", rr.Code)
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	rr := httptest.NewRecorder()
	rl.Limit(next).ServeHTTP(rr, req)

	rl.CleanupLimiters()

	rr = httptest.NewRecorder()
	rl.Limit(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("cleanup should reset buckets, got %d", rr.Code)
	}
}
