// Package memory keeps users and tasks in process memory. It backs the
// local environment and the service tests; data is lost on restart.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

type Storage struct {
	mu     sync.RWMutex
	now    func() time.Time
	users  map[string]models.User
	tasks  []models.Task
	lastID int64
}

var (
	_ storage.UserStorage = (*Storage)(nil)
	_ storage.TaskStorage = (*Storage)(nil)
)

func New() *Storage {
	return &Storage{
		now:   time.Now,
		users: make(map[string]models.User),
	}
}

func (s *Storage) InsertUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return fmt.Errorf("failed to insert user: %w", storage.ErrAlreadyExists)
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("failed to insert user: %w", storage.ErrAlreadyExists)
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *Storage) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Storage) FindUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u.WithoutPassword(), nil
}

func (s *Storage) CountTasks(_ context.Context, filter storage.TaskFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for i := range s.tasks {
		if matches(&s.tasks[i], filter) {
			total++
		}
	}
	return total, nil
}

func (s *Storage) FindTasks(_ context.Context, filter storage.TaskFilter, offset, limit int) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*models.Task, 0)
	skipped := 0
	// s.tasks is kept in insertion order, so walking it backwards yields
	// newest first with ties resolved by insertion order.
	for i := len(s.tasks) - 1; i >= 0 && len(tasks) < limit; i-- {
		if !matches(&s.tasks[i], filter) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		task := s.tasks[i]
		tasks = append(tasks, &task)
	}
	return tasks, nil
}

func (s *Storage) InsertTask(_ context.Context, task *models.Task) error {
	if task.Name == "" || task.UserID == "" {
		return fmt.Errorf("failed to insert task: %w", storage.ErrConstraintViolation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[task.UserID]; !ok {
		return fmt.Errorf("failed to insert task: %w", storage.ErrConstraintViolation)
	}

	createdAt := s.now()
	if n := len(s.tasks); n > 0 && createdAt.Before(s.tasks[n-1].CreatedAt) {
		createdAt = s.tasks[n-1].CreatedAt
	}

	s.lastID++
	task.ID = strconv.FormatInt(s.lastID, 10)
	task.CreatedAt = createdAt
	s.tasks = append(s.tasks, *task)
	return nil
}

func matches(task *models.Task, filter storage.TaskFilter) bool {
	if task.UserID != filter.UserID {
		return false
	}
	if filter.Search == "" {
		return true
	}
	term := strings.ToLower(filter.Search)
	return strings.Contains(strings.ToLower(task.Name), term) ||
		strings.Contains(strings.ToLower(task.Description), term)
}
