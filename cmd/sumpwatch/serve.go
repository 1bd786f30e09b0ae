package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tejusbharadwaj/sumpwatch/internal/api"
	"github.com/tejusbharadwaj/sumpwatch/internal/config"
	server "github.com/tejusbharadwaj/sumpwatch/internal/grpc"
	"github.com/tejusbharadwaj/sumpwatch/internal/metrics"
	"github.com/tejusbharadwaj/sumpwatch/internal/monitor"
	"github.com/tejusbharadwaj/sumpwatch/internal/notify"
	"github.com/tejusbharadwaj/sumpwatch/internal/scheduler"
	"github.com/tejusbharadwaj/sumpwatch/internal/web"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC server, ops HTTP server and background jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger, err := setupLogging(cfg.Logging, os.Stderr)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	logger.WithFields(logrus.Fields{
		"grpc_addr": cfg.GRPCAddr(),
		"timezone":  cfg.Analytics.Timezone,
	}).Info("Starting sumpwatch")

	repo, err := openStore(ctx, cfg.Database, m, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer repo.Close()

	dashCfg, err := cfg.Dashboard()
	if err != nil {
		return err
	}
	dashboard := api.NewDashboard(repo, dashCfg, logger)

	publishers := buildPublishers(ctx, cfg, logger)
	fanout := notify.NewMulti(logger, m, publishers...)
	defer fanout.Close()

	tracker := monitor.NewTracker(time.Now())

	srv, health, err := server.SetupServer(dashboard, cfg.GRPCServer(), logger, m)
	if err != nil {
		return fmt.Errorf("setup server: %w", err)
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	errChan := make(chan error, 2)

	go func() {
		logger.WithField("addr", cfg.GRPCAddr()).Info("Starting gRPC server")
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	var ops *web.Server
	if cfg.HTTP.Enabled {
		ops = web.New(cfg.HTTPAddr(), tracker, registry, logger)
		go func() {
			logger.WithField("addr", cfg.HTTPAddr()).Info("Starting ops HTTP server")
			if err := ops.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("http server: %w", err)
			}
		}()
	}

	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs = scheduler.NewScheduler(ctx, cfg.Jobs(), dashboard, tracker, fanout, m, logger)
		if err := jobs.Start(); err != nil {
			srv.Stop()
			return fmt.Errorf("start scheduler: %w", err)
		}
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown requested")
	case runErr = <-errChan:
		logger.WithError(runErr).Error("Service error, shutting down")
	}

	// Perform graceful shutdown
	health.Shutdown()
	if jobs != nil {
		jobs.Stop()
	}
	if ops != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := ops.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("HTTP shutdown incomplete")
		}
		cancel()
	}
	srv.GracefulStop()
	logger.Info("Server stopped")

	return runErr
}

// buildPublishers connects the enabled alert sinks. A sink that cannot be
// reached at startup is logged and skipped.
func buildPublishers(ctx context.Context, cfg *config.Config, logger *logrus.Logger) []notify.Publisher {
	var publishers []notify.Publisher

	if cfg.MQTT.Enabled {
		p, err := notify.NewMQTTPublisher(notify.MQTTConfig{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Topic:    cfg.MQTT.Topic,
		})
		if err != nil {
			logger.WithError(err).WithField("broker", cfg.MQTT.Broker).Error("MQTT publisher disabled")
		} else {
			publishers = append(publishers, p)
		}
	}

	if cfg.Redis.Enabled {
		p, err := notify.NewRedisStreamPublisher(ctx, notify.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Stream:   cfg.Redis.Stream,
			MaxLen:   cfg.Redis.MaxLen,
		})
		if err != nil {
			logger.WithError(err).WithField("addr", cfg.Redis.Addr).Error("Redis publisher disabled")
		} else {
			publishers = append(publishers, p)
		}
	}

	logger.WithField("count", len(publishers)).Info("Alert publishers ready")
	return publishers
}
