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

func TestTaskStorage_CountTasks(t *testing.T) {
	t.Run("scoped to owner with search pattern", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*)")).
			WithArgs("u1", "%walk%").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

		total, err := NewTaskStorage(mock).CountTasks(context.Background(), storage.TaskFilter{
			UserID: "u1",
			Search: "walk",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("driver failure", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*)")).
			WithArgs("u1", "%%").
			WillReturnError(errors.New("timeout"))

		_, err := NewTaskStorage(mock).CountTasks(context.Background(), storage.TaskFilter{UserID: "u1"})
		assert.Error(t, err)
	})
}

func TestTaskStorage_FindTasks(t *testing.T) {
	newer := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)
	columns := []string{"id", "name", "description", "date", "created_at"}

	t.Run("ok", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC")).
			WithArgs("u1", "%%", 10, 20).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(int64(2), "Walk dog", "evening walk", "2026-03-01", newer).
				AddRow(int64(1), "Buy milk", "", "", older))

		tasks, err := NewTaskStorage(mock).FindTasks(context.Background(), storage.TaskFilter{UserID: "u1"}, 20, 10)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "2", tasks[0].ID)
		assert.Equal(t, "u1", tasks[0].UserID)
		assert.Equal(t, "Walk dog", tasks[0].Name)
		assert.Equal(t, "evening walk", tasks[0].Description)
		assert.Equal(t, "1", tasks[1].ID)
		assert.Equal(t, older, tasks[1].CreatedAt)
	})

	t.Run("empty page", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM tasks")).
			WithArgs("u1", "%x%", 10, 0).
			WillReturnRows(pgxmock.NewRows(columns))

		tasks, err := NewTaskStorage(mock).FindTasks(context.Background(), storage.TaskFilter{UserID: "u1", Search: "x"}, 0, 10)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("query failure", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM tasks")).
			WithArgs("u1", "%%", 10, 0).
			WillReturnError(errors.New("boom"))

		_, err := NewTaskStorage(mock).FindTasks(context.Background(), storage.TaskFilter{UserID: "u1"}, 0, 10)
		assert.Error(t, err)
	})
}

func TestTaskStorage_InsertTask(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("ok", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
			WithArgs("u1", "Buy milk", "", "2026-03-01").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), createdAt))

		task := &models.Task{UserID: "u1", Name: "Buy milk", Date: "2026-03-01"}
		err := NewTaskStorage(mock).InsertTask(context.Background(), task)
		require.NoError(t, err)
		assert.Equal(t, "7", task.ID)
		assert.Equal(t, createdAt, task.CreatedAt)
	})

	t.Run("check violation", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
			WithArgs("u1", "", "", "").
			WillReturnError(&pgconn.PgError{Code: pgerrcode.CheckViolation})

		err := NewTaskStorage(mock).InsertTask(context.Background(), &models.Task{UserID: "u1"})
		assert.ErrorIs(t, err, storage.ErrConstraintViolation)
	})
}
