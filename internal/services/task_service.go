package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"task-tracker.com/task-tracker/internal/cache"
	"task-tracker.com/task-tracker/internal/constants"
	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

type TaskService struct {
	repo   *repository.TaskRepository
	cache  cache.TaskCache
	logger zerolog.Logger
	now    func() time.Time
}

type TaskServiceOption func(*TaskService)

func WithTaskCache(c cache.TaskCache) TaskServiceOption {
	return func(s *TaskService) {
		if c != nil {
			s.cache = c
		}
	}
}

func WithClock(now func() time.Time) TaskServiceOption {
	return func(s *TaskService) {
		s.now = now
	}
}

type CreateTaskParams struct {
	Title       string                `json:"title" validate:"min=1,max=255"`
	Description *string               `json:"description"`
	Status      *constants.TaskStatus `json:"status" validate:"omitnil,oneof=pending in_progress done"`
}

type UpdateTaskParams struct {
	Title       *string               `json:"title" validate:"omitnil,min=1,max=255"`
	Description *string               `json:"description"`
	Status      *constants.TaskStatus `json:"status" validate:"omitnil,oneof=pending in_progress done"`
}

type ListTasksParams struct {
	Page     int
	PageSize int
	Status   *constants.TaskStatus `json:"status" validate:"omitnil,oneof=pending in_progress done"`
}

func NewTaskService(
	repo *repository.TaskRepository,
	logger zerolog.Logger,
	opts ...TaskServiceOption,
) *TaskService {
	s := &TaskService{
		repo:   repo,
		cache:  cache.NoopTaskCache{},
		logger: logger.With().Str("service", "task").Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskService) CreateTask(ctx context.Context, caller *model.User, params CreateTaskParams) (*model.Task, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	status := constants.StatusPending
	if params.Status != nil {
		status = *params.Status
	}

	now := s.now().UTC()
	task := &model.Task{
		Title:       params.Title,
		Description: params.Description,
		Status:      status,
		UserID:      caller.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Uint("user_id", caller.ID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Uint("user_id", caller.ID).Uint("task_id", task.ID).Msg("task created")
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, caller *model.User, id uint) (*model.Task, error) {
	task, err := s.cache.Get(ctx, caller.ID, id)
	if err == nil {
		s.logger.Debug().Uint("task_id", id).Msg("task served from cache")
		return task, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn().Err(err).Uint("task_id", id).Msg("task cache read failed")
	}

	task, err = s.repo.FindByIDForUser(ctx, id, caller.ID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrTaskNotFound) {
			s.logger.Error().Err(err).Uint("task_id", id).Msg("failed to load task")
		}
		return nil, err
	}

	if err := s.cache.Fill(ctx, task); err != nil {
		s.logger.Warn().Err(err).Uint("task_id", id).Msg("task cache write failed")
	}

	return task, nil
}

// ListTasks returns one page of the caller's tasks, newest first. Total
// counts every matching task, not just the page.
func (s *TaskService) ListTasks(ctx context.Context, caller *model.User, params ListTasksParams) (*dto.TaskPage, error) {
	if params.Page < 1 {
		return nil, fmt.Errorf("%w: page must be greater than 0", apperrors.ErrInvalidPagination)
	}
	if params.PageSize < 1 || params.PageSize > constants.MaxPageSize {
		return nil, fmt.Errorf("%w: page_size must be between 1 and %d",
			apperrors.ErrInvalidPagination, constants.MaxPageSize)
	}
	if params.Page-1 > math.MaxInt/params.PageSize {
		return nil, fmt.Errorf("%w: page is out of range", apperrors.ErrInvalidPagination)
	}
	if err := validateParams(params); err != nil {
		return nil, err
	}

	tasks, total, err := s.repo.ListForUser(ctx, repository.TaskFilter{
		UserID: caller.ID,
		Status: params.Status,
		Offset: (params.Page - 1) * params.PageSize,
		Limit:  params.PageSize,
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", caller.ID).Msg("failed to list tasks")
		return nil, err
	}

	return &dto.TaskPage{
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
		Items:    tasks,
	}, nil
}

// UpdateTask applies the supplied fields only. updated_at moves forward even
// when nothing else changes.
func (s *TaskService) UpdateTask(
	ctx context.Context,
	caller *model.User,
	id uint,
	params UpdateTaskParams,
) (*model.Task, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	task, err := s.repo.UpdateForUser(ctx, id, caller.ID, func(task *model.Task) {
		if params.Title != nil {
			task.Title = *params.Title
		}
		if params.Description != nil {
			task.Description = params.Description
		}
		if params.Status != nil {
			task.Status = *params.Status
		}
		task.UpdatedAt = s.nextUpdate(task.UpdatedAt)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrTaskNotFound) {
			s.logger.Error().Err(err).Uint("task_id", id).Msg("failed to update task")
		}
		return nil, err
	}

	s.invalidate(ctx, caller.ID, id)
	s.logger.Info().Uint("user_id", caller.ID).Uint("task_id", id).Msg("task updated")
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, caller *model.User, id uint) error {
	if err := s.repo.DeleteForUser(ctx, id, caller.ID); err != nil {
		if !errors.Is(err, apperrors.ErrTaskNotFound) {
			s.logger.Error().Err(err).Uint("task_id", id).Msg("failed to delete task")
		}
		return err
	}

	s.invalidate(ctx, caller.ID, id)
	s.logger.Info().Uint("user_id", caller.ID).Uint("task_id", id).Msg("task deleted")
	return nil
}

func (s *TaskService) invalidate(ctx context.Context, userID, taskID uint) {
	if err := s.cache.Invalidate(ctx, userID, taskID); err != nil {
		s.logger.Warn().Err(err).Uint("task_id", taskID).Msg("task cache invalidation failed")
	}
}

// nextUpdate keeps updated_at strictly increasing under a coarse clock.
func (s *TaskService) nextUpdate(previous time.Time) time.Time {
	now := s.now().UTC()
	if !now.After(previous) {
		return previous.Add(time.Microsecond)
	}
	return now
}
