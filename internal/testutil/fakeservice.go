// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"tareas/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// It keeps tasks newest first, like the real store.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int64
	clock  time.Time

	// Error injection for testing
	ListErr         error
	CreateErr       error
	UpdateStatusErr error
	DeleteAllErr    error
	HealthErr       error

	// Calls records the operations issued, e.g. "create:Buy milk" or "update:3:true".
	Calls []string
}

var (
	_ service.Service       = (*FakeService)(nil)
	_ service.HealthChecker = (*FakeService)(nil)
)

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		clock:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// AddTask seeds a task and returns it. Later seeds are newer.
func (f *FakeService) AddTask(descripcion string, completada bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(descripcion, completada)
}

// Tasks returns a copy of the current tasks, newest first.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

func (f *FakeService) insert(descripcion string, completada bool) service.Task {
	f.clock = f.clock.Add(time.Minute)
	t := service.Task{
		ID:            f.nextID,
		Descripcion:   descripcion,
		Completada:    completada,
		FechaCreacion: f.clock,
	}
	f.nextID++
	f.tasks = append([]service.Task{t}, f.tasks...)
	return t
}

// List implements service.Service.
func (f *FakeService) List(ctx context.Context) ([]service.Task, error) {
	f.record("list")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Tasks(), nil
}

// Create implements service.Service.
func (f *FakeService) Create(ctx context.Context, descripcion string) (service.Task, error) {
	f.record("create:" + descripcion)
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	if strings.TrimSpace(descripcion) == "" {
		return service.Task{}, service.ErrInvalidInput
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(descripcion, false), nil
}

// UpdateStatus implements service.Service.
func (f *FakeService) UpdateStatus(ctx context.Context, id int64, completada bool) (service.Task, error) {
	f.record(fmt.Sprintf("update:%d:%t", id, completada))
	if f.UpdateStatusErr != nil {
		return service.Task{}, f.UpdateStatusErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Completada = completada
			return f.tasks[i], nil
		}
	}
	return service.Task{}, service.ErrNotFound
}

// DeleteAll implements service.Service.
func (f *FakeService) DeleteAll(ctx context.Context) error {
	f.record("deleteall")
	if f.DeleteAllErr != nil {
		return f.DeleteAllErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = nil
	return nil
}

// Health implements service.HealthChecker.
func (f *FakeService) Health(ctx context.Context) (string, error) {
	if f.HealthErr != nil {
		return "", f.HealthErr
	}
	return "OK", nil
}

func (f *FakeService) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}
