package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"scribe-api/internal/infra/logger"
	"scribe-api/internal/infra/provider"
)

type contextKey string

const userIDKey contextKey = "userID"

// AuthMiddleware requires a bearer token on every request and delegates
// verification to the identity provider. The verified subject is stored on
// the request context for handlers.
func AuthMiddleware(log *logger.Logger, identity provider.IIdentityProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			userID, err := identity.VerifyToken(r.Context(), token)
			if err != nil {
				log.Warn(fmt.Sprintf("Token verification failed: %v", err))
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the verified user identifier, or "" when auth context is
// missing.
func UserID(r *http.Request) string {
	if id, ok := r.Context().Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// UserIDOr falls back to a sentinel identifier when auth context is
// unexpectedly absent.
func UserIDOr(r *http.Request, fallback string) string {
	if id := UserID(r); id != "" {
		return id
	}
	return fallback
}

// WithUserID injects a user identifier into a request context. Used by
// tests exercising handlers without the full middleware chain.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized", "message": message})
}
