package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tareas/internal/store"
)

func migrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tareas table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts)
			if err != nil {
				return err
			}

			st, err := store.Open(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			st.Close()

			logger.Info("schema ready", "database_url", store.Redact(cfg.DatabaseURL), "table", store.TableName)
			return nil
		},
	}
}
