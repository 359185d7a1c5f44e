package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/storage"
)

const (
	DefaultTasksLimit = 10
	MaxTasksLimit     = 100
)

type taskServiceImpl struct {
	logger       zerolog.Logger
	tasks        storage.TaskStorage
	defaultLimit int
	maxLimit     int
}

// NewTaskService returns a TaskService paging with the given limits.
// Non-positive limits fall back to DefaultTasksLimit and MaxTasksLimit.
func NewTaskService(
	logger zerolog.Logger,
	tasks storage.TaskStorage,
	defaultLimit int,
	maxLimit int,
) TaskService {
	if maxLimit <= 0 {
		maxLimit = MaxTasksLimit
	}
	if defaultLimit <= 0 {
		defaultLimit = min(DefaultTasksLimit, maxLimit)
	}
	return &taskServiceImpl{
		logger:       logger,
		tasks:        tasks,
		defaultLimit: min(defaultLimit, maxLimit),
		maxLimit:     maxLimit,
	}
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, params ListTasksParams) (*models.TaskPage, error) {
	page, limit := s.normalizePaging(params.Page, params.Limit)
	filter := storage.TaskFilter{
		UserID: params.UserID,
		Search: params.Search,
	}

	total, err := s.tasks.CountTasks(ctx, filter)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", params.UserID).
			Msg("failed to count tasks")
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	pages := countPages(total, limit)
	tasks := make([]*models.Task, 0)
	// Pages past the last one are empty; skip the store round trip.
	if page <= pages {
		tasks, err = s.tasks.FindTasks(ctx, filter, (page-1)*limit, limit)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("user_id", params.UserID).
				Msg("failed to select tasks")
			return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
		}
	}

	s.logger.Info().
		Str("user_id", params.UserID).
		Int("count", len(tasks)).
		Int64("total", total).
		Int("page", page).
		Int("pages", pages).
		Msg("listed tasks")
	return &models.TaskPage{
		Tasks: tasks,
		Total: total,
		Page:  page,
		Pages: pages,
	}, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if params.Name == "" {
		s.logger.Error().
			Str("user_id", params.UserID).
			Msg("task name is empty")
		return nil, ErrEmptyTaskName
	}

	task := &models.Task{
		UserID:      params.UserID,
		Name:        params.Name,
		Description: params.Description,
		Date:        params.Date,
	}
	err := s.tasks.InsertTask(ctx, task)
	if err != nil {
		if errors.Is(err, storage.ErrConstraintViolation) {
			s.logger.Error().
				Err(err).
				Str("user_id", params.UserID).
				Msg("task rejected by store")
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}

		s.logger.Error().
			Err(err).
			Str("user_id", params.UserID).
			Msg("failed to insert task")
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	return page, limit
}

// countPages returns ceil(total / limit).
func countPages(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}
