package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		statusCode int
	}{
		{
			name:       "normalizes transaction path",
			method:     http.MethodGet,
			path:       "/api/v1/transactions/01ABC123",
			statusCode: http.StatusOK,
		},
		{
			name:       "keeps non-matching path as-is",
			method:     http.MethodPost,
			path:       "/health",
			statusCode: http.StatusCreated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			httpRequestsTotal.Reset()
			httpRequestDuration.Reset()
			httpRequestsInFlight.Set(0)

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(tc.statusCode)
			})

			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()

			Metrics(next).ServeHTTP(rr, req)

			if !handlerCalled {
				t.Fatalf("next handler was not invoked")
			}

			if got := testutil.ToFloat64(httpRequestsInFlight); got != 0 {
				t.Fatalf("expected in-flight gauge to return to 0, got %v", got)
			}

			normalized := normalizePath(tc.path)
			counter := httpRequestsTotal.WithLabelValues(tc.method, normalized, strconv.Itoa(tc.statusCode))
			if got := testutil.ToFloat64(counter); got != 1 {
				t.Fatalf("expected counter to be 1, got %v", got)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "transaction path without suffix",
			input:    "/api/v1/transactions/01ABC123",
			expected: "/api/v1/transactions/:id",
		},
		{
			name:     "transaction path with suffix",
			input:    "/api/v1/transactions/01ABC123/reverse",
			expected: "/api/v1/transactions/:id/reverse",
		},
		{
			name:     "account stats path",
			input:    "/api/v1/accounts/01XYZ789/topups/stats",
			expected: "/api/v1/accounts/:id/topups/stats",
		},
		{
			name:     "alias lookup path",
			input:    "/api/v1/aliases/maria.pago",
			expected: "/api/v1/aliases/:id",
		},
		{
			name:     "collection path untouched",
			input:    "/api/v1/transactions/",
			expected: "/api/v1/transactions/",
		},
		{
			name:     "non-matching path",
			input:    "/api/v1/carriers",
			expected: "/api/v1/carriers",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizePath(tc.input); got != tc.expected {
				t.Fatalf("normalizePath(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}
