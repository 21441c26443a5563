package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tareas/internal/backend/tareasapi"
	"tareas/internal/config"
	"tareas/internal/exitcode"
	"tareas/internal/service"
)

func init() {
	Register(&ConnectCmd{})
}

// ConnectCmd implements the connect command.
// It stores the API base URL in config.yaml after checking the server answers.
type ConnectCmd struct {
	noCheck bool
}

// SetNoCheck skips the health probe (for testing).
func (c *ConnectCmd) SetNoCheck(v bool) {
	c.noCheck = v
}

func (c *ConnectCmd) Name() string       { return "connect" }
func (c *ConnectCmd) Aliases() []string  { return nil }
func (c *ConnectCmd) Synopsis() string   { return "Save the server URL to the config file" }
func (c *ConnectCmd) Usage() string      { return "tareas connect [--no-check] <url>" }
func (c *ConnectCmd) NeedsBackend() bool { return false }

func (c *ConnectCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.noCheck, "no-check", false, "")
}

func (c *ConnectCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(errOut, "error: server url required")
		return exitcode.UserError
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}
	apiURL := strings.TrimRight(strings.TrimSpace(args[0]), "/")

	api, err := tareasapi.NewWithHTTPClient(apiURL, &http.Client{})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}

	if !c.noCheck {
		if _, err := api.Health(ctx); err != nil {
			newLogger(cfg, errOut).ErrorContext(ctx, "health check failed", "api_url", apiURL, "error", err)
			fmt.Fprintf(errOut, "error: server unreachable: %s\n", apiURL)
			return exitcode.BackendError
		}
	}

	cfg.APIURL = apiURL
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(errOut, "error: failed to save config: %v\n", err)
		return exitcode.ConfigError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
