// Package client holds the UI-side task state and keeps it in sync with a service.
package client

import (
	"context"
	"io"
	"log/slog"

	"tareas/internal/service"
)

// Fixed user-facing messages, one per operation.
// The underlying error is logged, never shown.
const (
	MsgLoadFailed   = "could not load tasks"
	MsgCreateFailed = "could not create task"
	MsgUpdateFailed = "could not update task"
)

// Controller owns the client's snapshot of the task list.
// The snapshot is only ever changed after the server confirms a write.
type Controller struct {
	svc service.Service
	log *slog.Logger

	tasks   []service.Task
	loading bool
	err     string
}

// New returns a controller in its initial state: loading, no tasks, no error.
func New(svc service.Service, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		svc:     svc,
		log:     logger,
		tasks:   []service.Task{},
		loading: true,
	}
}

// Tasks returns a copy of the current snapshot, newest first.
func (c *Controller) Tasks() []service.Task {
	out := make([]service.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Loading reports whether the first load has not finished yet.
func (c *Controller) Loading() bool { return c.loading }

// Err returns the current error message, or "" when there is none.
func (c *Controller) Err() string { return c.err }

// Load replaces the snapshot with the server's list.
// On failure the previous snapshot is kept.
func (c *Controller) Load(ctx context.Context) error {
	c.loading = true
	defer func() { c.loading = false }()

	tasks, err := c.svc.List(ctx)
	if err != nil {
		c.fail(ctx, MsgLoadFailed, err)
		return err
	}
	c.tasks = tasks
	c.err = ""
	return nil
}

// Create asks the server for a new task and prepends the confirmed record.
func (c *Controller) Create(ctx context.Context, descripcion string) (service.Task, error) {
	task, err := c.svc.Create(ctx, descripcion)
	if err != nil {
		c.fail(ctx, MsgCreateFailed, err)
		return service.Task{}, err
	}
	c.tasks = append([]service.Task{task}, c.tasks...)
	c.err = ""
	return task, nil
}

// Toggle sets the completion flag of task id and, once the server confirms,
// flips the matching entry in place.
func (c *Controller) Toggle(ctx context.Context, id int64, completada bool) (service.Task, error) {
	task, err := c.svc.UpdateStatus(ctx, id, completada)
	if err != nil {
		c.fail(ctx, MsgUpdateFailed, err)
		return service.Task{}, err
	}
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i].Completada = completada
		}
	}
	c.err = ""
	return task, nil
}

func (c *Controller) fail(ctx context.Context, msg string, err error) {
	c.err = msg
	c.log.ErrorContext(ctx, msg, slog.Any("error", err))
}
