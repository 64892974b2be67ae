package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dblab/twitterclone/internal/config"
	"github.com/dblab/twitterclone/internal/observability"
)

// cliState carries what PersistentPreRunE loaded for subcommands.
type cliState struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	rt := &cliState{}

	root := &cobra.Command{
		Use:           "twitterclone",
		Short:         "twitterclone API server",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := observability.NewLogger(cfg.Logger)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			rt.cfg = cfg
			rt.logger = logger.With(zap.String("service", cfg.App.Name), zap.String("env", cfg.App.Env))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	root.AddCommand(newServeCmd(rt))
	root.AddCommand(newMigrateCmd(rt))
	return root
}
