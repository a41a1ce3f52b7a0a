package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/DrHac-GH/firstrade-tax-app/src/logger"
	"github.com/DrHac-GH/firstrade-tax-app/src/security"
	"github.com/DrHac-GH/firstrade-tax-app/src/services"
	"github.com/DrHac-GH/firstrade-tax-app/src/utils"
)

type contextKey string

const sessionContextKey = contextKey("session")

// GetSessionFromContext retrieves the session attached by SessionMiddleware.
func GetSessionFromContext(ctx context.Context) (*services.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(*services.Session)
	return sess, ok
}

// SessionMiddleware validates the bearer token and attaches the live
// session to the request context. An expired store entry means the session
// data is gone even if the token is still cryptographically valid.
func SessionMiddleware(authService *security.AuthService, store *services.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.L.Debug("SessionMiddleware: Authorization header missing", "path", r.URL.Path)
				utils.SendJSONError(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" {
				utils.SendJSONError(w, "Malformed token", http.StatusUnauthorized)
				return
			}

			sessionID, err := authService.ValidateToken(tokenString)
			if err != nil {
				logger.L.Warn("SessionMiddleware: Token validation failed", "path", r.URL.Path, "error", err)
				utils.SendJSONError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			sess, found := store.Get(sessionID)
			if !found {
				logger.L.Warn("SessionMiddleware: Session expired or unknown", "sessionID", sessionID)
				utils.SendJSONError(w, "Session expired, start a new session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
