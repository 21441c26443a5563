package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tareas/internal/config"
	"tareas/internal/exitcode"
	"tareas/internal/service"
)

func init() {
	Register(&HealthCmd{})
}

// HealthCmd implements the health command.
type HealthCmd struct{}

func (c *HealthCmd) Name() string       { return "health" }
func (c *HealthCmd) Aliases() []string  { return nil }
func (c *HealthCmd) Synopsis() string   { return "Check that the server is reachable" }
func (c *HealthCmd) Usage() string      { return "tareas health" }
func (c *HealthCmd) NeedsBackend() bool { return true }

func (c *HealthCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HealthCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	hc, ok := svc.(service.HealthChecker)
	if !ok {
		fmt.Fprintln(errOut, "error: backend does not support health checks")
		return exitcode.BackendError
	}

	status, err := hc.Health(ctx)
	if err != nil {
		newLogger(cfg, errOut).ErrorContext(ctx, "health check failed", "api_url", cfg.APIURL, "error", err)
		fmt.Fprintf(errOut, "error: server unreachable: %s\n", cfg.APIURL)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "%s %s\n", status, cfg.APIURL)
	}
	return exitcode.Success
}
