package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestUserStorage_InsertUser(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	user := &models.User{
		ID:        "0190b8a4-0000-7000-8000-000000000001",
		Name:      "Alice",
		Email:     "alice@example.com",
		Password:  "$argon2id$hash",
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.Run("ok", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(user.ID, user.Name, user.Email, user.Password, now, now).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := NewUserStorage(mock).InsertUser(context.Background(), user)
		require.NoError(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(user.ID, user.Name, user.Email, user.Password, now, now).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		err := NewUserStorage(mock).InsertUser(context.Background(), user)
		require.Error(t, err)
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("driver failure", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(user.ID, user.Name, user.Email, user.Password, now, now).
			WillReturnError(errors.New("connection reset"))

		err := NewUserStorage(mock).InsertUser(context.Background(), user)
		require.Error(t, err)
		assert.NotErrorIs(t, err, storage.ErrAlreadyExists)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestUserStorage_FindUserByEmail(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	columns := []string{"id", "name", "email", "password", "created_at", "updated_at"}

	t.Run("found case-insensitively", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE lower(email) = lower($1)")).
			WithArgs("ALICE@example.com").
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow("u1", "Alice", "alice@example.com", "hash", now, now))

		user, err := NewUserStorage(mock).FindUserByEmail(context.Background(), "ALICE@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "hash", user.Password)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
			WithArgs("nobody@example.com").
			WillReturnRows(pgxmock.NewRows(columns))

		_, err := NewUserStorage(mock).FindUserByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestUserStorage_FindUserByID(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("found without password", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
			WithArgs("u1").
			WillReturnRows(pgxmock.NewRows([]string{"name", "email", "created_at", "updated_at"}).
				AddRow("Alice", "alice@example.com", now, now))

		user, err := NewUserStorage(mock).FindUserByID(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "Alice", user.Name)
		assert.Empty(t, user.Password)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
			WithArgs("u2").
			WillReturnRows(pgxmock.NewRows([]string{"name", "email", "created_at", "updated_at"}))

		_, err := NewUserStorage(mock).FindUserByID(context.Background(), "u2")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
