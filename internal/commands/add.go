package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"tareas/internal/client"
	"tareas/internal/config"
	"tareas/internal/exitcode"
	"tareas/internal/output"
	"tareas/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "tareas add <description...>" }
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ctrl := client.New(svc, newLogger(cfg, errOut))
	return runAdd(ctx, cfg, ctrl, strings.Join(args, " "), out, errOut)
}

// runAdd creates a task through ctrl and prints the confirmed row.
// Shared by the add command and the shell.
func runAdd(ctx context.Context, cfg *config.Config, ctrl *client.Controller, input string, out, errOut io.Writer) int {
	descripcion, err := output.NormalizeDescription(input)
	if errors.Is(err, output.ErrEmptyDescription) {
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	}

	task, err := ctrl.Create(ctx, descripcion)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", ctrl.Err())
		return codeFor(err)
	}

	if !cfg.Quiet {
		output.FormatTask(out, 1, task, !cfg.NoColor)
	}
	return exitcode.Success
}
