package http

import (
	"context"
	"net/http"
	"strings"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/logger"
	"atelier-backend/internal/security"
)

type contextKey string

const scopeContextKey contextKey = "caller_scope"

// AuthMiddleware validates the bearer token and attaches the resolved caller
// scope to the request context. Handlers below it can assume a scope exists.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization header"})
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authorization header must use Bearer scheme"})
			return
		}

		claims, err := m.tokens.Validate(token)
		if err != nil {
			logger.Debug("Token rejected", "error", err)
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
			return
		}

		ctx := context.WithValue(r.Context(), scopeContextKey, claims.Scope())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ScopeFrom returns the caller scope attached by the auth middleware.
func ScopeFrom(r *http.Request) domain.CallerScope {
	scope, _ := r.Context().Value(scopeContextKey).(domain.CallerScope)
	return scope
}

// RequestLogger logs each request at debug level.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("HTTP request", "http_method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
