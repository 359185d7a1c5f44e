package sqlite

import (
	"context"
	"fmt"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

type UserStorage struct {
	db DBTX
}

var _ storage.UserStorage = (*UserStorage)(nil)

func NewUserStorage(db DBTX) *UserStorage {
	return &UserStorage{db: db}
}

func (s *UserStorage) InsertUser(ctx context.Context, user *models.User) error {
	const insertUserQuery = `
INSERT INTO users (id, name, email, password, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`
	_, err := s.db.ExecContext(
		ctx,
		insertUserQuery,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		toUnix(user.CreatedAt),
		toUnix(user.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", translateError(err))
	}
	return nil
}

func (s *UserStorage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const selectUserQuery = `
SELECT id, name, email, password, created_at, updated_at
FROM users
WHERE fold(email) = fold(?)
`
	var createdAt, updatedAt int64
	user := &models.User{}
	err := s.db.QueryRowContext(ctx, selectUserQuery, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select user: %w", translateError(err))
	}
	user.CreatedAt = fromUnix(createdAt)
	user.UpdatedAt = fromUnix(updatedAt)
	return user, nil
}

func (s *UserStorage) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	const selectUserQuery = `
SELECT name, email, created_at, updated_at
FROM users
WHERE id = ?
`
	var createdAt, updatedAt int64
	user := &models.User{ID: id}
	err := s.db.QueryRowContext(ctx, selectUserQuery, id).Scan(
		&user.Name,
		&user.Email,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select user: %w", translateError(err))
	}
	user.CreatedAt = fromUnix(createdAt)
	user.UpdatedAt = fromUnix(updatedAt)
	return user, nil
}
