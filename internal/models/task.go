package models

import (
	"encoding/json"
	"time"
)

// TimeLayout is the wire format for task timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	DueDate     *time.Time
	UserID      string
}

// MarshalJSON renders the public task shape. Timestamps use TimeLayout and
// due_date is null when absent; the owner id is not serialized.
func (t Task) MarshalJSON() ([]byte, error) {
	var due *string
	if t.DueDate != nil {
		s := t.DueDate.Format(TimeLayout)
		due = &s
	}
	return json.Marshal(struct {
		ID          string  `json:"id"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Completed   bool    `json:"completed"`
		CreatedAt   string  `json:"created_at"`
		DueDate     *string `json:"due_date"`
	}{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.Format(TimeLayout),
		DueDate:     due,
	})
}

// CreateTaskRequest is the JSON body for POST /tasks.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"dueDate"`
}

// UpdateTaskRequest is the JSON body for PUT /tasks/{id}. All three fields
// are required; the due date cannot be changed through this path.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}
