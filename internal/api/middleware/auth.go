package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Context keys for storing caller information
type contextKey string

const userIDKey contextKey = "user_id"

// Authenticator resolves a caller identity for protected routes.
// Routes take this interface so tests can inject a stub identity.
type Authenticator interface {
	RequireAuth(next http.Handler) http.Handler
}

// JWTAuthMiddleware authenticates requests with HS256 bearer tokens.
// The token's sub claim carries the caller's user id. Token issuance
// (registration, login) lives with an external collaborator; this side
// only verifies.
type JWTAuthMiddleware struct {
	secret []byte
}

// NewJWTAuthMiddleware creates an authenticator verifying with the
// given shared secret
func NewJWTAuthMiddleware(secret []byte) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{secret: secret}
}

// RequireAuth ensures the request carries a valid bearer token.
// On success the caller's user id is injected into the request context;
// otherwise the request is rejected with 401.
func (m *JWTAuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		userID, err := m.verify(token)
		if err != nil {
			slog.Warn("auth failure",
				"ip", r.RemoteAddr,
				"method", r.Method,
				"path", r.URL.Path,
				"error", err.Error())
			writeAuthError(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// verify parses and validates the token, returning the subject user id
func (m *JWTAuthMiddleware) verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !parsed.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("missing user id in token subject")
	}
	return claims.Subject, nil
}

// GetUserID returns the authenticated caller's user id, or "" for
// unauthenticated requests
func GetUserID(r *http.Request) string {
	return UserIDFromContext(r.Context())
}

// UserIDFromContext extracts the authenticated user id from a context
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID returns a context carrying an authenticated user id.
// Exported for handler tests and stub authenticators.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": message}); err != nil {
		slog.Warn("failed to encode auth error response", "error", err.Error())
	}
}
