package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fightforgift/reward-engine/internal/adapter"
	"github.com/fightforgift/reward-engine/internal/config"
	"github.com/fightforgift/reward-engine/internal/gateway"
	"github.com/fightforgift/reward-engine/internal/logger"
	"github.com/fightforgift/reward-engine/internal/store"
	"github.com/fightforgift/reward-engine/internal/worker"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadNotifierConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "notifier",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Notifier")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize delivery gateway
	gw := gateway.NewTelegramGateway(gateway.Config{
		APIBaseURL:     cfg.Gateway.APIBaseURL,
		APIToken:       cfg.Gateway.APIToken,
		HTTPTimeout:    cfg.Gateway.HTTPTimeout,
		SendRatePerSec: cfg.Gateway.SendRatePerSec,
	})

	// Initialize clock adapter
	clock := adapter.NewClock()

	// Initialize round notifier
	roundConfig := &worker.RoundNotifierConfig{
		Interval:      cfg.Notifier.RoundInterval,
		BatchSize:     cfg.Notifier.RoundBatch,
		PoolSize:      cfg.Notifier.PoolSize,
		WebAppBaseURL: cfg.WebAppBaseURL,
	}
	roundNotifier := worker.NewRoundNotifier(roundConfig, dataStore, gw, clock)

	// Initialize free spin notifier
	freeSpinConfig := &worker.FreeSpinNotifierConfig{
		Interval:      cfg.Notifier.FreeSpinInterval,
		Window:        cfg.Notifier.FreeSpinWindow,
		WebAppBaseURL: cfg.WebAppBaseURL,
	}
	freeSpinNotifier := worker.NewFreeSpinNotifier(freeSpinConfig, dataStore, gw, clock)

	workers := []worker.Worker{roundNotifier, freeSpinNotifier}

	logger.InfoCtx(ctx, "Initialized notifier workers",
		zap.Duration("round_interval", cfg.Notifier.RoundInterval),
		zap.Duration("free_spin_interval", cfg.Notifier.FreeSpinInterval),
		zap.Duration("free_spin_window", cfg.Notifier.FreeSpinWindow),
	)

	// Start each worker in its own goroutine
	errChan := make(chan error, len(workers))
	for _, w := range workers {
		go func(w worker.Worker) {
			if err := w.Start(ctx); err != nil {
				errChan <- fmt.Errorf("%s: %w", w.Name(), err)
			}
		}(w)
	}

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the workers
	cancel()

	// Give the workers time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	for _, w := range workers {
		if err := w.Stop(shutdownCtx); err != nil {
			logger.ErrorCtx(shutdownCtx, err, zap.String("worker", w.Name()))
		}
	}

	logger.InfoCtx(shutdownCtx, "Notifier stopped")
}
