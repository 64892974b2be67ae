package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dblab/twitterclone/internal/persistence"
)

func newMigrateCmd(rt *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			pg, err := persistence.NewPostgres(cmd.Context(), rt.cfg.Postgres, rt.logger)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer pg.Close()

			return persistence.RunMigrations(cmd.Context(), pg.PoolHandle(), rt.logger)
		},
	}
}
