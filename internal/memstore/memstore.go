// Package memstore provides an in-memory implementation of the store
// interfaces for handler and auth tests, mirroring the Postgres store's
// contract: sentinel errors, uniqueness checks, and the user→task delete
// cascade.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayush/task-tracker/internal/models"
	"github.com/ayush/task-tracker/internal/store"
)

type Store struct {
	mu    sync.Mutex
	users map[string]*models.User
	tasks map[string]*models.Task
}

func New() *Store {
	return &Store{
		users: make(map[string]*models.User),
		tasks: make(map[string]*models.Task),
	}
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func (s *Store) CreateUser(ctx context.Context, firstName, lastName, username, email, hashedPassword string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return nil, fmt.Errorf("create user: %w", store.ErrDuplicate)
		}
	}
	u := &models.User{
		ID:          uuid.New().String(),
		FirstName:   firstName,
		LastName:    lastName,
		Username:    username,
		Email:       email,
		Password:    hashedPassword,
		DateCreated: time.Now(),
	}
	s.users[u.ID] = u
	return copyUser(u), nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyUser(u), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Token != nil && *u.Token == token {
			return copyUser(u), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) SaveToken(ctx context.Context, userID, token string, expiration time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.Token = &token
	u.TokenExpiration = &expiration
	return nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[user.ID]
	if !ok {
		return store.ErrNotFound
	}
	for _, other := range s.users {
		if other.ID == user.ID {
			continue
		}
		if other.Username == user.Username || other.Email == user.Email {
			return fmt.Errorf("update user: %w", store.ErrDuplicate)
		}
	}
	u.FirstName = user.FirstName
	u.LastName = user.LastName
	u.Username = user.Username
	u.Email = user.Email
	u.Password = user.Password
	return nil
}

// DeleteUser removes the user and cascades to their tasks.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.users, id)
	for tid, t := range s.tasks {
		if t.UserID == id {
			delete(s.tasks, tid)
		}
	}
	return nil
}

func copyTask(t *models.Task) *models.Task {
	c := *t
	return &c
}

func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var tasks []models.Task
	for _, t := range s.tasks {
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyTask(t), nil
}

func (s *Store) CreateTask(ctx context.Context, title, description, userID string, dueDate *time.Time) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return nil, fmt.Errorf("create task: owner %s: %w", userID, store.ErrNotFound)
	}
	t := &models.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
		DueDate:     dueDate,
		UserID:      userID,
	}
	s.tasks[t.ID] = t
	return copyTask(t), nil
}

func (s *Store) UpdateTask(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[task.ID]
	if !ok {
		return store.ErrNotFound
	}
	t.Title = task.Title
	t.Description = task.Description
	t.Completed = task.Completed
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}
