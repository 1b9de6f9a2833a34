package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"watcard/internal/backend"
	"watcard/internal/cli"
	applog "watcard/internal/log"
	"watcard/internal/services"
	"watcard/internal/sheets"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentSnapshot)

	logger.Info("Starting snapshot-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	sqliteRepo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer sqliteRepo.Close()

	// Summary export is optional for snapshots; without a configured
	// backend they are persisted locally only.
	var exporter sheets.SummaryExporter
	if backendCfg, err := backend.FromAppConfig(cfg); err == nil && backendCfg.Validate() == nil {
		factory := backend.NewFactory(logger.Logger)
		if result, err := factory.CreateExporter(context.Background(), backendCfg); err == nil {
			exporter = result.Exporter
			logger.Info("Snapshot summaries will be exported", "type", backendCfg.Type)
		} else {
			logger.Warn("Failed to create export backend, snapshots stay local", "error", err)
		}
	}

	processor, err := services.NewSnapshotProcessor(sqliteRepo, exporter, services.SnapshotProcessorConfig{
		Cadence:       cfg.SnapshotCadence,
		CheckInterval: cfg.SnapshotInterval,
	})
	if err != nil {
		logger.Error("Failed to create snapshot processor", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := processor.Start(ctx); err != nil {
		logger.Error("Failed to start snapshot processor", "error", err)
		os.Exit(1)
	}

	logger.Info("Snapshot processor configured",
		"cadence", cfg.SnapshotCadence,
		"check_interval", cfg.SnapshotInterval,
		"sqlite_db", cfg.SQLiteDBPath)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := processor.Stop(shutdownCtx); err != nil {
		logger.Warn("Snapshot processor stop error", "error", err)
	}

	logger.Info("Snapshot-worker shutdown complete")
}
