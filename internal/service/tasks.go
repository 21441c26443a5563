package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// TaskService implements Service on top of a Store.
// Every write is followed by a read so callers always get the stored record.
type TaskService struct {
	store Store
}

var _ Service = (*TaskService)(nil)

// NewTaskService creates a TaskService backed by store.
func NewTaskService(store Store) *TaskService {
	return &TaskService{store: store}
}

// List implements Service.
func (s *TaskService) List(ctx context.Context) ([]Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, unavailable("list tasks", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// Create implements Service.
func (s *TaskService) Create(ctx context.Context, descripcion string) (Task, error) {
	if strings.TrimSpace(descripcion) == "" {
		return Task{}, fmt.Errorf("descripcion is required: %w", ErrInvalidInput)
	}

	id, err := s.store.Insert(ctx, descripcion)
	if err != nil {
		return Task{}, unavailable("insert task", err)
	}

	task, err := s.store.Get(ctx, id)
	if err != nil {
		return Task{}, unavailable(fmt.Sprintf("read task %d", id), err)
	}
	return task, nil
}

// UpdateStatus implements Service.
// The update is issued without an existence check; a missing row shows up
// on the re-read and is reported as ErrNotFound.
func (s *TaskService) UpdateStatus(ctx context.Context, id int64, completada bool) (Task, error) {
	if err := s.store.UpdateCompleted(ctx, id, completada); err != nil {
		return Task{}, unavailable(fmt.Sprintf("update task %d", id), err)
	}

	task, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
		}
		return Task{}, unavailable(fmt.Sprintf("read task %d", id), err)
	}
	return task, nil
}

// DeleteAll implements Service.
func (s *TaskService) DeleteAll(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return unavailable("delete tasks", err)
	}
	return nil
}

// unavailable classifies a store failure as ErrUnavailable while keeping the cause.
func unavailable(op string, err error) error {
	if errors.Is(err, ErrUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
