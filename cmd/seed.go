package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tasnim.dev/cloud-console/internal/store"
	"tasnim.dev/cloud-console/internal/store/sqlite"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a sqlite database holding the built-in fixtures",
		Long: `Create a sqlite database holding the built-in fixtures. The target is
--database or the configured database path and must be empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			path := a.cfg.DatabasePath()

			db, err := sqlite.Open(ctx, path, store.WithLogger(a.logger))
			if err != nil {
				return err
			}
			defer db.Close()

			src, err := store.NewSeededStore(store.WithLatency(0), store.WithLogger(a.logger))
			if err != nil {
				return err
			}
			if err := sqlite.Seed(ctx, db, src); err != nil {
				return fmt.Errorf("seeding %s: %w", path, err)
			}

			a.logger.Info("database seeded", "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s\n", path)
			return nil
		},
	}
}
