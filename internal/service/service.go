package service

import "context"

// Service defines the task operations.
// The server implements it over a Store; the client implements it over HTTP.
// Commands and handlers never touch a database or an HTTP client directly.
type Service interface {
	// List returns every task, newest first.
	// The result is never nil.
	List(ctx context.Context) ([]Task, error)

	// Create stores a new open task and returns the persisted record.
	// Returns ErrInvalidInput if descripcion is empty or whitespace.
	Create(ctx context.Context, descripcion string) (Task, error)

	// UpdateStatus sets the completion flag and returns the persisted record.
	// Returns ErrNotFound if no task has the given id.
	UpdateStatus(ctx context.Context, id int64, completada bool) (Task, error)

	// DeleteAll removes every task. Used to reset fixtures.
	DeleteAll(ctx context.Context) error
}

// HealthChecker is implemented by backends that can report liveness.
type HealthChecker interface {
	Health(ctx context.Context) (string, error)
}

// Store is the persistence contract behind TaskService.
type Store interface {
	// Insert adds an open task and returns its new id.
	Insert(ctx context.Context, descripcion string) (int64, error)

	// Get returns the task with the given id, or an error wrapping ErrNotFound.
	Get(ctx context.Context, id int64) (Task, error)

	// List returns all tasks ordered by creation time, newest first.
	List(ctx context.Context) ([]Task, error)

	// UpdateCompleted sets the completion flag.
	// Updating an unknown id is a no-op, not an error.
	UpdateCompleted(ctx context.Context, id int64, completada bool) error

	// DeleteAll removes every task.
	DeleteAll(ctx context.Context) error

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close()
}
