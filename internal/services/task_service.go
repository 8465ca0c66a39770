package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/store"
)

// taskPartition scopes every store call to the owner. Ownership is
// encoded in the partition name, so no record-level check is needed.
func taskPartition(uid string) string {
	return "tasks:" + uid
}

type taskServiceImpl struct {
	logger zerolog.Logger
	store  store.Store
}

func NewTaskService(
	logger zerolog.Logger,
	store store.Store,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		store:  store,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, uid string, params CreateTaskParams) (*models.Task, error) {
	taskUUID, err := uuid.NewRandom()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}

	now := time.Now().UTC()
	task := &models.Task{
		TaskID:      taskUUID.String(),
		Title:       params.Title,
		Description: params.Description,
		Status:      params.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	doc, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task: %w", err)
	}

	err = s.store.Put(ctx, taskPartition(uid), task.TaskID, doc)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("uid", uid).
			Msg("failed to put task")
		return nil, err
	}

	s.logger.Info().
		Str("uid", uid).
		Str("task_id", task.TaskID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTasks(ctx context.Context, uid string) ([]*models.Task, error) {
	docs, err := s.store.ListAll(ctx, taskPartition(uid))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("uid", uid).
			Msg("failed to list tasks")
		return nil, err
	}

	tasks := make([]*models.Task, 0, len(docs))
	for _, doc := range docs {
		task := new(models.Task)
		if err := json.Unmarshal(doc, task); err != nil {
			return nil, fmt.Errorf("failed to unmarshal task: %w", err)
		}
		tasks = append(tasks, task)
	}

	s.logger.Debug().
		Str("uid", uid).
		Int("count", len(tasks)).
		Msg("listed tasks")
	return tasks, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, uid, taskID string) (*models.Task, error) {
	doc, err := s.store.Get(ctx, taskPartition(uid), taskID)
	if err != nil {
		if errors.Is(err, store.ErrDocNotFound) {
			s.logger.Warn().
				Str("uid", uid).
				Str("task_id", taskID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to get task")
		return nil, err
	}

	task := new(models.Task)
	if err := json.Unmarshal(doc, task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, uid, taskID string, patch TaskPatch) (*models.Task, error) {
	if patch.Title.Set && !patch.Title.Valid {
		return nil, ErrTitleRequired
	}

	task, err := s.GetTask(ctx, uid, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title.Set {
		task.Title = patch.Title.Value
	}
	if patch.Description.Set {
		task.Description = optionalValue(patch.Description)
	}
	if patch.Status.Set {
		task.Status = optionalValue(patch.Status)
	}
	// Refreshed unconditionally, even for an empty patch.
	task.UpdatedAt = time.Now().UTC()

	doc, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task: %w", err)
	}

	err = s.store.Update(ctx, taskPartition(uid), taskID, doc)
	if err != nil {
		if errors.Is(err, store.ErrDocNotFound) {
			// Deleted between the read and the write; the store
			// refuses to recreate it.
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Str("uid", uid).
		Str("task_id", taskID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, uid, taskID string) error {
	err := s.store.Delete(ctx, taskPartition(uid), taskID)
	if err != nil {
		if errors.Is(err, store.ErrDocNotFound) {
			s.logger.Warn().
				Str("uid", uid).
				Str("task_id", taskID).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Str("uid", uid).
		Str("task_id", taskID).
		Msg("deleted task")
	return nil
}

func optionalValue(o models.OptionalString) *string {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
