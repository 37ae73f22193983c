package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and indexes in the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		db, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close(context.Background())

		if err := db.Migrate(ctx); err != nil {
			return err
		}
		slog.Info("migrations applied", "driver", cfg.StoreDriver)
		return nil
	},
}
