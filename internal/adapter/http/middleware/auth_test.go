package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/condorpay/banking/internal/domain"
	"github.com/condorpay/banking/internal/infrastructure/auth"
)

func newTestToken(t *testing.T, manager *auth.JWTManager) string {
	t.Helper()

	token, err := manager.Generate(
		&domain.Client{ID: "client-1"},
		&domain.Account{ID: "acc-1", Number: "2200000001"},
	)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return token
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)
	token := newTestToken(t, manager)

	var clientID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if client, ok := domain.ClientFromContext(r.Context()); ok {
			clientID = client.ID
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	AuthMiddleware(manager)(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if clientID != "client-1" {
		t.Fatalf("expected client-1 in context, got %q", clientID)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)
	otherManager := auth.NewJWTManager("other-secret", time.Hour)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Token abc"},
		{"wrong secret", "Bearer " + newTestToken(t, otherManager)},
		{"garbage token", "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			called := false
			AuthMiddleware(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})).ServeHTTP(rr, req)

			if called {
				t.Fatal("handler must not run without valid credentials")
			}
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rr.Code)
			}
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", -time.Minute)
	token := newTestToken(t, manager)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	AuthMiddleware(auth.NewJWTManager("test-secret", time.Hour))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an expired token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestOptionalAuth(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/carriers", nil)
	rr := httptest.NewRecorder()

	var hasClient bool
	OptionalAuth(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasClient = domain.ClientFromContext(r.Context())
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected anonymous request to pass, got %d", rr.Code)
	}
	if hasClient {
		t.Fatal("anonymous request must not carry a client")
	}
}
