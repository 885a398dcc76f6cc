package middleware

import (
	"net/http"
	"strings"

	"github.com/condorpay/banking/internal/domain"
	"github.com/condorpay/banking/internal/infrastructure/auth"
)

// AuthMiddleware verifies the bearer token and stores the authenticated
// client in the request context.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifyBearer(jwtManager, r)
			if err != "" {
				http.Error(w, err, http.StatusUnauthorized)
				return
			}

			ctx := domain.ContextWithClient(r.Context(), &domain.Client{ID: claims.ClientID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth extracts the client if a valid token is present but lets the
// request through either way.
func OptionalAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, errMsg := verifyBearer(jwtManager, r)
			if errMsg != "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := domain.ContextWithClient(r.Context(), &domain.Client{ID: claims.ClientID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verifyBearer(jwtManager *auth.JWTManager, r *http.Request) (*auth.Claims, string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, "missing authorization header"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "invalid authorization header format"
	}

	claims, err := jwtManager.Verify(parts[1])
	if err != nil {
		return nil, "invalid or expired token"
	}

	return claims, ""
}
