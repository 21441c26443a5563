package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tareas/internal/client"
	"tareas/internal/config"
	"tareas/internal/exitcode"
	"tareas/internal/output"
	"tareas/internal/service"
)

func init() {
	Register(&ToggleCmd{})
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

// toggleMode selects the completion flag sent for a task.
type toggleMode int

const (
	modeFlip toggleMode = iota
	modeDone
	modeUndo
)

// target returns the flag to send for a task currently at current.
func (m toggleMode) target(current bool) bool {
	switch m {
	case modeDone:
		return true
	case modeUndo:
		return false
	default:
		return !current
	}
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string       { return "toggle" }
func (c *ToggleCmd) Aliases() []string  { return []string{"t"} }
func (c *ToggleCmd) Synopsis() string   { return "Flip a task between pending and completed" }
func (c *ToggleCmd) Usage() string      { return "tareas toggle <n | id:N>" }
func (c *ToggleCmd) NeedsBackend() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, svc, modeFlip, args, out, errOut)
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "tareas done <n | id:N>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, svc, modeDone, args, out, errOut)
}

// UndoCmd implements the undo command.
type UndoCmd struct{}

func (c *UndoCmd) Name() string       { return "undo" }
func (c *UndoCmd) Aliases() []string  { return nil }
func (c *UndoCmd) Synopsis() string   { return "Mark a task pending again" }
func (c *UndoCmd) Usage() string      { return "tareas undo <n | id:N>" }
func (c *UndoCmd) NeedsBackend() bool { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, svc, modeUndo, args, out, errOut)
}

// runToggle loads the list so row numbers match what `tareas list` shows,
// then updates the referenced task.
func runToggle(ctx context.Context, cfg *config.Config, svc service.Service, mode toggleMode, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	ctrl := client.New(svc, newLogger(cfg, errOut))
	if err := ctrl.Load(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", ctrl.Err())
		return codeFor(err)
	}
	return toggleRef(ctx, cfg, ctrl, mode, ref, out, errOut)
}

// toggleRef resolves ref against the controller snapshot and sends the update.
func toggleRef(ctx context.Context, cfg *config.Config, ctrl *client.Controller, mode toggleMode, ref TaskRef, out, errOut io.Writer) int {
	task, num, err := ref.Resolve(ctrl.Tasks())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	completada := mode.target(task.Completada)

	updated, err := ctrl.Toggle(ctx, task.ID, completada)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", ctrl.Err())
		return codeFor(err)
	}

	if !cfg.Quiet {
		output.FormatTask(out, num, updated, !cfg.NoColor)
	}
	return exitcode.Success
}
