// Package storage defines the record store the services depend on.
//
// Every TaskStorage method takes the owning user ID as a mandatory part of
// its filter; implementations must never return or count tasks of other
// users.
package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/adanyl0v/go-task-tracker/internal/models"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrAlreadyExists       = errors.New("record already exists")
	ErrConstraintViolation = errors.New("record violates constraint")
)

type UserStorage interface {
	// InsertUser stores a new user. It returns ErrAlreadyExists if a
	// user with the same email (compared case-insensitively) exists.
	InsertUser(ctx context.Context, user *models.User) error

	// FindUserByEmail looks the user up case-insensitively, including
	// the password hash. It returns ErrNotFound if there is no such user.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// FindUserByID returns the user without the password hash or
	// ErrNotFound.
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// TaskFilter selects the tasks of exactly one owner. An empty Search
// matches every task of the owner; otherwise a task matches when Search
// is a case-insensitive substring of its name or description.
type TaskFilter struct {
	UserID string
	Search string
}

type TaskStorage interface {
	CountTasks(ctx context.Context, filter TaskFilter) (int64, error)

	// FindTasks returns at most limit matching tasks after skipping offset
	// of them, newest first. Tasks created at the same instant are
	// returned in reverse insertion order.
	FindTasks(ctx context.Context, filter TaskFilter, offset, limit int) ([]*models.Task, error)

	// InsertTask stores the task and fills in its ID and CreatedAt.
	// It returns ErrConstraintViolation if the store rejects the record.
	InsertTask(ctx context.Context, task *models.Task) error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE pattern, to be used with ESCAPE '\', that
// matches s literally anywhere in the value. An empty s matches everything.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
