// Package main is the entry point for the tareas API server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the server version. Set at build time.
var Version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "tareas-server",
		Short:         "tareas - REST API for a shared to-do list",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "optional YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(serveCmd(opts))
	rootCmd.AddCommand(migrateCmd(opts))
	rootCmd.AddCommand(resetCmd(opts))

	return rootCmd
}
