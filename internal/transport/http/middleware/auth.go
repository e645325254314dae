package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tasktrail/backend/internal/auth"
	"github.com/tasktrail/backend/internal/domain"
	"github.com/tasktrail/backend/internal/repository"
)

type contextKey string

const UserKey contextKey = "user"

// Auth resolves the acting user from the Authorization header. A token is
// accepted only if it verifies cryptographically, its subject still exists,
// and it equals the token currently stored on that user's record; logging
// out therefore kills the session immediately.
func Auth(tokens *auth.TokenManager, userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, `{"error":{"code":"MISSING_TOKEN","message":"Authentication required"}}`, http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")

			userID, err := tokens.Verify(tokenStr)
			if err != nil {
				http.Error(w, `{"error":{"code":"INVALID_TOKEN","message":"Invalid or expired token"}}`, http.StatusUnauthorized)
				return
			}

			user, err := userRepo.GetByID(r.Context(), userID)
			if err != nil {
				http.Error(w, `{"error":{"code":"INTERNAL","message":"Something went wrong"}}`, http.StatusInternalServerError)
				return
			}
			if user == nil {
				// Subject no longer exists; do not reveal which.
				http.Error(w, `{"error":{"code":"INVALID_TOKEN","message":"Invalid or expired token"}}`, http.StatusUnauthorized)
				return
			}

			if user.Token == nil || *user.Token != tokenStr {
				// Logged out, or a newer login superseded this session.
				http.Error(w, `{"error":{"code":"INVALID_TOKEN","message":"Invalid or expired token"}}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser extracts the authenticated user from request context
func GetUser(ctx context.Context) *domain.User {
	return ctx.Value(UserKey).(*domain.User)
}
