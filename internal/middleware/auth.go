package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/ayush/task-tracker/internal/auth"
	"github.com/ayush/task-tracker/internal/models"
	"github.com/ayush/task-tracker/internal/webutil"
)

// contextKey avoids context key collisions with other packages.
type contextKey string

const userKey contextKey = "current_user"

// UserStore defines the lookups token verification needs.
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
}

// CurrentUser returns the authenticated user injected by RequireToken, or
// nil when the request reached the handler without passing through it.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// RequireToken guards a handler with bearer-token verification: the handler
// only runs when the token resolves to a user whose token_expiration is
// strictly in the future. The cache is optional; a miss or nil cache falls
// through to the store.
func RequireToken(users UserStore, cache *auth.TokenCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				webutil.RespondWithError(w, http.StatusUnauthorized, "bearer token required")
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				webutil.RespondWithError(w, http.StatusUnauthorized, "invalid Authorization header format")
				return
			}
			token := parts[1]

			// The cache is only an index: a hit still has to match the
			// token the user currently holds, unexpired. A superseded or
			// stale entry falls through to the store path.
			if cache != nil {
				if userID, err := cache.Get(r.Context(), token); err == nil && userID != "" {
					user, err := users.GetUserByID(r.Context(), userID)
					if err == nil && user.Token != nil && *user.Token == token &&
						user.TokenExpiration != nil && user.TokenExpiration.After(time.Now()) {
						serveAs(w, r, next, user)
						return
					}
				}
			}

			user, err := users.GetUserByToken(r.Context(), token)
			if err != nil {
				webutil.RespondWithError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if user.TokenExpiration == nil || !user.TokenExpiration.After(time.Now()) {
				webutil.RespondWithError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if cache != nil {
				cache.Put(r.Context(), token, user.ID, *user.TokenExpiration)
			}
			serveAs(w, r, next, user)
		})
	}
}

func serveAs(w http.ResponseWriter, r *http.Request, next http.Handler, user *models.User) {
	ctx := context.WithValue(r.Context(), userKey, user)
	next.ServeHTTP(w, r.WithContext(ctx))
}
