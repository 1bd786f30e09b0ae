package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tejusbharadwaj/sumpwatch/internal/config"
	"github.com/tejusbharadwaj/sumpwatch/internal/database"
	"github.com/tejusbharadwaj/sumpwatch/internal/metrics"
)

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

type options struct {
	cfgFile   string
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "sumpwatch",
		Short: "Sump pit telemetry monitor",
		Long: `sumpwatch evaluates sump pit telemetry stored in Postgres.

Functions:
- Report live health: sensor connectivity, water level, mains power, backup battery
- Serve water level history, daily pump statistics and a calendar heatmap over gRPC
- Refresh daily summaries on a schedule
- Publish health transitions to MQTT and Redis streams`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags
	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "config.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level, overrides logging.level")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "json or text, overrides logging.format")

	// Add commands
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newMigrateCmd(opts))

	return rootCmd
}

func execute() int {
	err := newRootCmd().ExecuteContext(context.Background())
	if err == nil {
		return 0
	}
	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}

// load reads the configuration and applies the logging flags.
func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	return cfg, nil
}

// setupLogging builds the process logger from the logging section.
func setupLogging(cfg config.LoggingConfig, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}

// openStore connects to Postgres and applies the schema when configured to.
func openStore(ctx context.Context, cfg config.DatabaseConfig, m *metrics.Metrics, logger *logrus.Logger) (*database.PostgresRepo, error) {
	repo, err := database.NewPostgresRepo(ctx, cfg.DSN(), m)
	if err != nil {
		return nil, err
	}
	repo.SetMaxOpenConns(cfg.MaxConnections)

	if cfg.Migrate {
		logger.Info("Applying database schema")
		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, err
		}
	}
	return repo, nil
}
