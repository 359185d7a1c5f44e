package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

type TaskStorage struct {
	db DB
}

var _ storage.TaskStorage = (*TaskStorage)(nil)

func NewTaskStorage(db DB) *TaskStorage {
	return &TaskStorage{db: db}
}

func (s *TaskStorage) CountTasks(ctx context.Context, filter storage.TaskFilter) (int64, error) {
	const countTasksQuery = `
SELECT count(*)
FROM tasks
WHERE user_id = $1
  AND (name ILIKE $2 ESCAPE '\' OR description ILIKE $2 ESCAPE '\')
`
	var total int64
	err := s.db.QueryRow(
		ctx,
		countTasksQuery,
		filter.UserID,
		storage.ContainsPattern(filter.Search),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", translateError(err))
	}
	return total, nil
}

func (s *TaskStorage) FindTasks(ctx context.Context, filter storage.TaskFilter, offset, limit int) ([]*models.Task, error) {
	const selectTasksQuery = `
SELECT id,
       name,
       description,
       date,
       created_at
FROM tasks
WHERE user_id = $1
  AND (name ILIKE $2 ESCAPE '\' OR description ILIKE $2 ESCAPE '\')
ORDER BY created_at DESC, id DESC
LIMIT $3 OFFSET $4
`
	rows, err := s.db.Query(
		ctx,
		selectTasksQuery,
		filter.UserID,
		storage.ContainsPattern(filter.Search),
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", translateError(err))
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0, limit)
	for rows.Next() {
		var taskID int64
		task := &models.Task{UserID: filter.UserID}
		err = rows.Scan(
			&taskID,
			&task.Name,
			&task.Description,
			&task.Date,
			&task.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		task.ID = strconv.FormatInt(taskID, 10)
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return tasks, nil
}

func (s *TaskStorage) InsertTask(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (user_id,
                   name,
                   description,
                   date)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at
`
	var taskID int64
	err := s.db.QueryRow(
		ctx,
		insertTaskQuery,
		task.UserID,
		task.Name,
		task.Description,
		task.Date,
	).Scan(
		&taskID,
		&task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", translateError(err))
	}
	task.ID = strconv.FormatInt(taskID, 10)
	return nil
}
