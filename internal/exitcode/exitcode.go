// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty description, unknown task).
	UserError = 1

	// ConfigError indicates an unreadable config file or a bad API URL.
	ConfigError = 2

	// BackendError indicates an API, network or server-side error.
	BackendError = 3
)
