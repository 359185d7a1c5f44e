package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

type TaskStorage struct {
	db  DBTX
	now func() time.Time
}

var _ storage.TaskStorage = (*TaskStorage)(nil)

func NewTaskStorage(db DBTX) *TaskStorage {
	return &TaskStorage{db: db, now: time.Now}
}

const taskFilterClause = `
WHERE user_id = ?
  AND (fold(name) LIKE fold(?) ESCAPE '\' OR fold(description) LIKE fold(?) ESCAPE '\')
`

func (s *TaskStorage) CountTasks(ctx context.Context, filter storage.TaskFilter) (int64, error) {
	pattern := storage.ContainsPattern(filter.Search)

	var total int64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT count(*) FROM tasks`+taskFilterClause,
		filter.UserID,
		pattern,
		pattern,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", translateError(err))
	}
	return total, nil
}

func (s *TaskStorage) FindTasks(ctx context.Context, filter storage.TaskFilter, offset, limit int) ([]*models.Task, error) {
	pattern := storage.ContainsPattern(filter.Search)

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, name, description, date, created_at FROM tasks`+taskFilterClause+
			`ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		filter.UserID,
		pattern,
		pattern,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", translateError(err))
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0, limit)
	for rows.Next() {
		var taskID, createdAt int64
		task := &models.Task{UserID: filter.UserID}
		err = rows.Scan(
			&taskID,
			&task.Name,
			&task.Description,
			&task.Date,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		task.ID = strconv.FormatInt(taskID, 10)
		task.CreatedAt = fromUnix(createdAt)
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return tasks, nil
}

// InsertTask never stores a created_at older than the newest task, so a
// clock stepping backwards cannot reorder the listing.
func (s *TaskStorage) InsertTask(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (user_id, name, description, date, created_at)
VALUES (?, ?, ?, ?, max(?, coalesce((SELECT max(created_at) FROM tasks), 0)))
RETURNING id, created_at
`
	var taskID, createdAt int64
	err := s.db.QueryRowContext(
		ctx,
		insertTaskQuery,
		task.UserID,
		task.Name,
		task.Description,
		task.Date,
		toUnix(s.now()),
	).Scan(
		&taskID,
		&createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", translateError(err))
	}
	task.ID = strconv.FormatInt(taskID, 10)
	task.CreatedAt = fromUnix(createdAt)
	return nil
}
