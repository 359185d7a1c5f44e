package postgres

import (
	"context"
	"fmt"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

type UserStorage struct {
	db DB
}

var _ storage.UserStorage = (*UserStorage)(nil)

func NewUserStorage(db DB) *UserStorage {
	return &UserStorage{db: db}
}

func (s *UserStorage) InsertUser(ctx context.Context, user *models.User) error {
	const insertUserQuery = `
INSERT INTO users (id,
                   name,
                   email,
                   password,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := s.db.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", translateError(err))
	}
	return nil
}

func (s *UserStorage) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const selectUserByEmailQuery = `
SELECT id,
       name,
       email,
       password,
       created_at,
       updated_at
FROM users
WHERE lower(email) = lower($1)
`
	user := new(models.User)
	err := s.db.QueryRow(
		ctx,
		selectUserByEmailQuery,
		email,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select user by email: %w", translateError(err))
	}
	return user, nil
}

func (s *UserStorage) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	const selectUserByIDQuery = `
SELECT name,
       email,
       created_at,
       updated_at
FROM users
WHERE id = $1
`
	user := &models.User{ID: id}
	err := s.db.QueryRow(
		ctx,
		selectUserByIDQuery,
		id,
	).Scan(
		&user.Name,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select user by id: %w", translateError(err))
	}
	return user, nil
}
