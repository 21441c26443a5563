package commands

import (
	"context"
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
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `tareas` (no args) and `tareas list`.
type ListCmd struct{}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks, newest first" }
func (c *ListCmd) Usage() string      { return "tareas list" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	ctrl := client.New(svc, newLogger(cfg, errOut))
	if err := ctrl.Load(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", ctrl.Err())
		return codeFor(err)
	}

	tasks := ctrl.Tasks()
	if len(tasks) == 0 && cfg.Quiet {
		return exitcode.Success
	}
	output.FormatList(out, tasks, !cfg.NoColor)
	return exitcode.Success
}
