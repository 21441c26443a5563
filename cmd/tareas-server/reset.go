package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tareas/internal/service"
	"tareas/internal/store"
)

func resetCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every task",
		Long: `Delete every task from the store.

This cannot be undone. Ids keep increasing after a reset.

Examples:
  tareas-server reset --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete all tasks without --yes")
			}
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}

			st, err := store.Open(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			defer st.Close()

			if err := service.NewTaskService(st).DeleteAll(cmd.Context()); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			logger.Info("all tasks deleted", "database_url", store.Redact(cfg.DatabaseURL))
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting every task")
	return cmd
}
