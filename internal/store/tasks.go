package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ayush/task-tracker/internal/models"
)

const taskColumns = `id, title, description, completed, created_at, due_date, user_id`

func (s *PostgresStore) ListTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.DueDate, &t.UserID); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *PostgresStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	err := s.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.DueDate, &t.UserID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (s *PostgresStore) CreateTask(ctx context.Context, title, description, userID string, dueDate *time.Time) (*models.Task, error) {
	t := models.Task{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		UserID:      userID,
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO tasks (title, description, due_date, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, completed, created_at`,
		title, description, dueDate, userID,
	).Scan(&t.ID, &t.Completed, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", mapErr(err))
	}
	return &t, nil
}

// UpdateTask writes title, description, and completed. The due date is not
// updatable through this path.
func (s *PostgresStore) UpdateTask(ctx context.Context, t *models.Task) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tasks SET title = $1, description = $2, completed = $3 WHERE id = $4`,
		t.Title, t.Description, t.Completed, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteTask(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
