package auth

import (
	"context"
	"net/http"

	"github.com/ayush/task-tracker/internal/models"
	"github.com/ayush/task-tracker/internal/webutil"
)

// UserStore defines the user lookup the token endpoint needs.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Handler serves GET /token.
type Handler struct {
	users  UserStore
	issuer *Issuer
}

func NewHandler(users UserStore, issuer *Issuer) *Handler {
	return &Handler{users: users, issuer: issuer}
}

// GetToken exchanges HTTP Basic credentials for a bearer token. Bad
// credentials get a 401 and no token is issued.
func (h *Handler) GetToken(w http.ResponseWriter, r *http.Request) {
	username, password, ok := r.BasicAuth()
	if !ok {
		webutil.RespondWithError(w, http.StatusUnauthorized, "basic auth credentials required")
		return
	}

	user, err := h.users.GetUserByUsername(r.Context(), username)
	if err != nil || !CheckPassword(user.Password, password) {
		webutil.RespondWithError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := h.issuer.GetOrIssue(r.Context(), user)
	if err != nil {
		webutil.RespondWithError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, token)
}
