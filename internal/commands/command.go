// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"

	"tareas/internal/config"
	"tareas/internal/exitcode"
	"tareas/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBackend returns true if the command talks to the API.
	// Commands like help, version and connect return false.
	NeedsBackend() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided.
	// svc is nil if NeedsBackend() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// newLogger returns the diagnostics logger for a command run.
// Underlying errors only reach the terminal with --debug.
func newLogger(cfg *config.Config, errOut io.Writer) *slog.Logger {
	if !cfg.Debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// codeFor maps a service error to an exit code.
func codeFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrNotFound):
		return exitcode.UserError
	default:
		return exitcode.BackendError
	}
}
