package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables",
		Long: `Creates the readings, events and daily_summaries tables when they do not
exist. This is useful for CI/CD pipelines or initial setup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger, err := setupLogging(cfg.Logging, os.Stderr)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			cfg.Database.Migrate = true
			repo, err := openStore(ctx, cfg.Database, nil, logger)
			if err != nil {
				return err
			}
			defer repo.Close()

			logger.Info("Database schema is up to date")
			return nil
		},
	}
}
