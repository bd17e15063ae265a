package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ayush/task-tracker/internal/auth"
	"github.com/ayush/task-tracker/internal/middleware"
	"github.com/ayush/task-tracker/internal/models"
	"github.com/ayush/task-tracker/internal/store"
	"github.com/ayush/task-tracker/internal/webutil"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, firstName, lastName, username, email, hashedPassword string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id string) error
}

// Handler holds user HTTP handlers. The token cache may be nil.
type Handler struct {
	users UserStore
	cache *auth.TokenCache
}

func NewHandler(users UserStore, cache *auth.TokenCache) *Handler {
	return &Handler{users: users, cache: cache}
}

// Create registers a new user. The password is hashed before it ever
// reaches the store.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webutil.RespondWithError(w, http.StatusBadRequest, "request body must be JSON")
		return
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"username", req.Username},
		{"email", req.Email},
		{"password", req.Password},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		webutil.RespondWithError(w, http.StatusBadRequest, strings.Join(missing, ", ")+" must be in the request body")
		return
	}

	taken, err := h.users.UsernameOrEmailTaken(r.Context(), req.Username, req.Email)
	if err != nil {
		webutil.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}
	if taken {
		webutil.RespondWithError(w, http.StatusBadRequest, "a user with that username or email already exists")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		webutil.RespondWithError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.FirstName, req.LastName, req.Username, req.Email, hashed)
	if err != nil {
		// Pre-check raced with another registration.
		if errors.Is(err, store.ErrDuplicate) {
			webutil.RespondWithError(w, http.StatusBadRequest, "a user with that username or email already exists")
			return
		}
		webutil.RespondWithError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, user.Public())
}

// Get returns the public fields of a user.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookup(w, r)
	if !ok {
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, user.Public())
}

// Update applies the allow-listed profile fields. Fields outside the
// allow-list are silently ignored. Only the user themselves may update.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if !h.requireSelf(w, r, user) {
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webutil.RespondWithError(w, http.StatusBadRequest, "request body must be JSON")
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			webutil.RespondWithError(w, http.StatusInternalServerError, "failed to hash password")
			return
		}
		user.Password = hashed
	}

	if err := h.users.UpdateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			webutil.RespondWithError(w, http.StatusBadRequest, "a user with that username or email already exists")
			return
		}
		webutil.RespondWithError(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, user.Public())
}

// Delete removes a user and, through the store's cascade, all their tasks.
// Only the user themselves may delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if !h.requireSelf(w, r, user) {
		return
	}

	if err := h.users.DeleteUser(r.Context(), user.ID); err != nil {
		webutil.RespondWithError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	if h.cache != nil && user.Token != nil {
		h.cache.Invalidate(r.Context(), *user.Token)
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "user " + user.ID + " deleted"})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		webutil.RespondWithError(w, http.StatusNotFound, "user not found")
		return nil, false
	}
	user, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webutil.RespondWithError(w, http.StatusNotFound, "user not found")
		} else {
			webutil.RespondWithError(w, http.StatusInternalServerError, "database error")
		}
		return nil, false
	}
	return user, true
}

// requireSelf rejects mutation of any account other than the caller's own.
func (h *Handler) requireSelf(w http.ResponseWriter, r *http.Request, target *models.User) bool {
	current := middleware.CurrentUser(r.Context())
	if current == nil || current.ID != target.ID {
		webutil.RespondWithError(w, http.StatusForbidden, "you do not have permission to modify this user")
		return false
	}
	return true
}
