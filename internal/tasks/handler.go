package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ayush/task-tracker/internal/middleware"
	"github.com/ayush/task-tracker/internal/models"
	"github.com/ayush/task-tracker/internal/store"
	"github.com/ayush/task-tracker/internal/webutil"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, id string) (*models.Task, error)
	CreateTask(ctx context.Context, title, description, userID string, dueDate *time.Time) (*models.Task, error)
	UpdateTask(ctx context.Context, t *models.Task) error
	DeleteTask(ctx context.Context, id string) error
}

// Handler holds task HTTP handlers.
type Handler struct {
	tasks TaskStore
}

func NewHandler(tasks TaskStore) *Handler {
	return &Handler{tasks: tasks}
}

// List returns every task. No ordering is guaranteed.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		webutil.RespondWithError(w, http.StatusInternalServerError, "database error")
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, tasks)
}

// Get returns a single task by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	task, ok := h.lookup(w, r)
	if !ok {
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, task)
}

// Create adds a task owned by the current user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webutil.RespondWithError(w, http.StatusBadRequest, "request body must be JSON")
		return
	}
	if req.Title == "" {
		webutil.RespondWithError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Description == "" {
		webutil.RespondWithError(w, http.StatusBadRequest, "description is required")
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		parsed, err := time.Parse(models.TimeLayout, *req.DueDate)
		if err != nil {
			webutil.RespondWithError(w, http.StatusBadRequest, "dueDate must be formatted as YYYY-MM-DD HH:MM:SS")
			return
		}
		dueDate = &parsed
	}

	task, err := h.tasks.CreateTask(r.Context(), req.Title, req.Description, user.ID, dueDate)
	if err != nil {
		webutil.RespondWithError(w, http.StatusInternalServerError, "failed to create task")
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, task)
}

// Update rewrites a task's title, description, and completed flag. Only the
// owner may update; the due date cannot be changed here.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	task, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if !h.requireOwner(w, r, task) {
		return
	}

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		webutil.RespondWithError(w, http.StatusBadRequest, "request body must be JSON")
		return
	}
	if req.Title == nil || *req.Title == "" {
		webutil.RespondWithError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Description == nil || *req.Description == "" {
		webutil.RespondWithError(w, http.StatusBadRequest, "description is required")
		return
	}
	if req.Completed == nil {
		webutil.RespondWithError(w, http.StatusBadRequest, "completed is required")
		return
	}

	task.Title = *req.Title
	task.Description = *req.Description
	task.Completed = *req.Completed
	if err := h.tasks.UpdateTask(r.Context(), task); err != nil {
		webutil.RespondWithError(w, http.StatusInternalServerError, "failed to update task")
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, task)
}

// Delete removes a task. Only the owner may delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	task, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if !h.requireOwner(w, r, task) {
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), task.ID); err != nil {
		webutil.RespondWithError(w, http.StatusInternalServerError, "failed to delete task")
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

// lookup resolves the {id} path param to a task, responding 404 when the id
// is malformed or absent.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*models.Task, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		webutil.RespondWithError(w, http.StatusNotFound, "task not found")
		return nil, false
	}
	task, err := h.tasks.GetTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			webutil.RespondWithError(w, http.StatusNotFound, "task not found")
		} else {
			webutil.RespondWithError(w, http.StatusInternalServerError, "database error")
		}
		return nil, false
	}
	return task, true
}

// requireOwner rejects mutation by anyone but the task's owner.
func (h *Handler) requireOwner(w http.ResponseWriter, r *http.Request, task *models.Task) bool {
	user := middleware.CurrentUser(r.Context())
	if user == nil || user.ID != task.UserID {
		webutil.RespondWithError(w, http.StatusForbidden, "you do not own this task")
		return false
	}
	return true
}
