package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kapelokal/pos/internal/user/domain"
	"github.com/kapelokal/pos/pkg/auth"
	"github.com/kapelokal/pos/pkg/logger"
)

// Middleware wraps a handler with authentication or authorization
type Middleware func(http.HandlerFunc) http.HandlerFunc

// AuthMiddleware validates the bearer token and verifies the account is
// still active before letting a request through
func AuthMiddleware(userRepo domain.UserRepository) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn(r.Context()).Msg("Missing authorization header")
				respondError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Warn(r.Context()).Msg("Invalid authorization header format")
				respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			claims, err := auth.ValidateToken(parts[1])
			if err != nil {
				logger.Warn(r.Context()).Err(err).Msg("Invalid token")
				respondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			user, err := userRepo.FindByID(r.Context(), claims.UserID)
			if err != nil {
				logger.Warn(r.Context()).
					Err(err).
					Uint("user_id", claims.UserID).
					Msg("Token subject no longer exists")
				respondError(w, http.StatusUnauthorized, "User verification failed")
				return
			}
			if !user.IsActive {
				logger.Warn(r.Context()).
					Uint("user_id", user.ID).
					Msg("User account is disabled")
				respondError(w, http.StatusForbidden, "Account is disabled")
				return
			}

			ctx := auth.WithIdentity(r.Context(), user.ID, user.Name, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// AdminMiddleware requires an authenticated admin
func AdminMiddleware(userRepo domain.UserRepository) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return AuthMiddleware(userRepo)(func(w http.ResponseWriter, r *http.Request) {
			role, ok := auth.RoleFromContext(r.Context())
			if !ok || role != domain.RoleAdmin {
				logger.Warn(r.Context()).
					Str("role", role).
					Msg("Admin access denied")
				respondError(w, http.StatusForbidden, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Helper function for error responses
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		Success: false,
		Error:   message,
	})
}
