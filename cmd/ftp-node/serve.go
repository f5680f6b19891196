package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-ftp/internal/admission"
	"github.com/aescanero/dago-node-ftp/internal/charset"
	"github.com/aescanero/dago-node-ftp/internal/config"
	"github.com/aescanero/dago-node-ftp/internal/events"
	"github.com/aescanero/dago-node-ftp/internal/ftpserver"
	"github.com/aescanero/dago-node-ftp/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the FTP server and the control plane",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting ftp node",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("node_id", cfg.NodeID),
		zap.String("system_charset", charset.SystemName()),
	)

	// Log configuration (without sensitive data)
	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	ctx := cmd.Context()

	var (
		redisClient *redis.Client
		publisher   events.Publisher = events.Nop{}
	)
	if cfg.ControlEnabled() {
		redisClient = redis.NewClient(cfg.RedisOptions())
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis connection", zap.Error(err))
			}
		}()

		// Test Redis connection
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

		publisher = events.NewRedisPublisher(redisClient, cfg.EventStream, cfg.NodeID, logger)
	} else {
		logger.Warn("redis address not provided (control plane disabled)")
	}

	service := ftpserver.NewService(cfg.ServiceOptions(), afero.NewOsFs(), publisher, logger)

	if cfg.FTPAutostart {
		// A failed start is logged and published by the service; the node
		// keeps running so a control request can fix the configuration.
		service.Start(ctx, cfg.FTPParams())
	}

	var w *worker.Worker
	if redisClient != nil {
		admitter, err := admission.NewAdmitter(admission.AllowList(cfg.AdmissionRules), logger)
		if err != nil {
			return fmt.Errorf("invalid admission rules: %w", err)
		}

		w = worker.NewWorker(cfg, redisClient, service, admitter, publisher, logger)
		if err := w.Start(); err != nil {
			return fmt.Errorf("failed to start worker: %w", err)
		}
	}

	// Start health server
	var healthServer *worker.HealthServer
	if redisClient != nil {
		healthServer = worker.NewHealthServer(cfg.HealthPort, service, redisClient, logger)
	} else {
		healthServer = worker.NewHealthServer(cfg.HealthPort, service, nil, logger)
	}
	if err := healthServer.Start(); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	logger.Info("ftp node running, press Ctrl+C to stop")
	<-ctx.Done()

	logger.Info("shutdown signal received, stopping ftp node")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Stop health server
	if err := healthServer.Stop(); err != nil {
		logger.Error("failed to stop health server", zap.Error(err))
	}

	// Stop worker
	if w != nil {
		if err := w.Stop(shutdownCtx); err != nil {
			logger.Error("failed to stop worker", zap.Error(err))
		}
	}

	// Stop ftp server
	if err := service.Stop(shutdownCtx); err != nil {
		logger.Error("failed to stop ftp server", zap.Error(err))
	}

	logger.Info("ftp node stopped")
	return nil
}
