package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tareas/internal/config"
	"tareas/internal/exitcode"
	"tareas/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
// Registry defaults to DefaultRegistry.
type HelpCmd struct {
	Registry *Registry
}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "tareas help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	reg := c.Registry
	if reg == nil {
		reg = DefaultRegistry
	}

	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %-34s %s\n", "tareas", "List tasks (same as tareas list)")
	for _, cmd := range reg.All() {
		line := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			line += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(out, "  %-34s %s\n", cmd.Usage(), line)
	}
	fmt.Fprint(out, commonFlagsText)
	return exitcode.Success
}

const commonFlagsText = `
Common flags:
  --config <dir>   Override config directory
  --api <url>      Override the server URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
  --no-color       Disable ANSI styling

Task references:
  <n>              Row number as shown by tareas list
  id:<id>          Task id
  '#<id>'          Task id (quote it; shells drop an unquoted #)
`
