package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"tareas/internal/client"
	"tareas/internal/config"
	"tareas/internal/exitcode"
	"tareas/internal/output"
	"tareas/internal/service"
)

const shellPrompt = "> "

func init() {
	Register(&ShellCmd{})
}

// ShellCmd implements an interactive session over one controller.
// The list is loaded once on start and re-rendered after every change.
type ShellCmd struct {
	in io.Reader
}

// SetInput sets the session input (for testing). Defaults to os.Stdin.
func (c *ShellCmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *ShellCmd) Name() string       { return "shell" }
func (c *ShellCmd) Aliases() []string  { return []string{"sh"} }
func (c *ShellCmd) Synopsis() string   { return "Interactive session" }
func (c *ShellCmd) Usage() string      { return "tareas shell" }
func (c *ShellCmd) NeedsBackend() bool { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	in := c.in
	if in == nil {
		in = os.Stdin
	}

	s := &session{
		cfg:    cfg,
		ctrl:   client.New(svc, newLogger(cfg, errOut)),
		out:    out,
		errOut: errOut,
	}

	if !cfg.Quiet && s.ctrl.Loading() {
		fmt.Fprintln(out, output.LoadingMessage)
	}
	s.refresh(ctx)

	scanner := bufio.NewScanner(in)
	for {
		if ctx.Err() != nil {
			return exitcode.Success
		}
		fmt.Fprint(out, shellPrompt)
		if !scanner.Scan() {
			break
		}
		if done := s.exec(ctx, scanner.Text()); done {
			return exitcode.Success
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "error: reading input: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintln(out)
	return exitcode.Success
}

type session struct {
	cfg    *config.Config
	ctrl   *client.Controller
	out    io.Writer
	errOut io.Writer
}

// exec runs one input line. It returns true when the session should end.
func (s *session) exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "quit", "q", "exit":
		return true
	case "help", "?":
		fmt.Fprint(s.out, shellHelpText)
	case "refresh", "r", "list", "ls":
		s.refresh(ctx)
	case "add", "a":
		s.add(ctx, rest)
	case "toggle", "t":
		s.toggle(ctx, modeFlip, rest)
	case "done", "d":
		s.toggle(ctx, modeDone, rest)
	case "undo", "u":
		s.toggle(ctx, modeUndo, rest)
	default:
		fmt.Fprintf(s.errOut, "error: unknown command: %s (try help)\n", verb)
	}
	return false
}

func (s *session) refresh(ctx context.Context) {
	if err := s.ctrl.Load(ctx); err != nil {
		fmt.Fprintf(s.errOut, "error: %s\n", s.ctrl.Err())
		return
	}
	s.render()
}

func (s *session) add(ctx context.Context, input string) {
	descripcion, err := output.NormalizeDescription(input)
	if errors.Is(err, output.ErrEmptyDescription) {
		fmt.Fprintln(s.errOut, "error: description required")
		return
	}
	if _, err := s.ctrl.Create(ctx, descripcion); err != nil {
		fmt.Fprintf(s.errOut, "error: %s\n", s.ctrl.Err())
		return
	}
	s.render()
}

func (s *session) toggle(ctx context.Context, mode toggleMode, input string) {
	ref, err := ParseTaskRef(strings.Fields(input))
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(s.errOut, "error: task reference required")
		} else {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
		}
		return
	}

	task, _, err := ref.Resolve(s.ctrl.Tasks())
	if err != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return
	}

	completada := mode.target(task.Completada)

	if _, err := s.ctrl.Toggle(ctx, task.ID, completada); err != nil {
		fmt.Fprintf(s.errOut, "error: %s\n", s.ctrl.Err())
		return
	}
	s.render()
}

func (s *session) render() {
	output.FormatList(s.out, s.ctrl.Tasks(), !s.cfg.NoColor)
}

const shellHelpText = `Commands:
  add <description>   Create a task (a)
  toggle <n | #id>    Flip a task (t)
  done <n | #id>      Mark a task completed (d)
  undo <n | #id>      Mark a task pending (u)
  refresh             Reload the list (r)
  help                Show this help (?)
  quit                Leave the shell (q)
`
