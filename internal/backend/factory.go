package backend

import (
	"context"
	"fmt"
	"log/slog"

	gsheet "watcard/internal/sheets/google"
	"watcard/internal/sheets/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new export backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateExporter implements Factory.CreateExporter
func (f *DefaultFactory) CreateExporter(ctx context.Context, config Config) (*ExporterResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SheetsBackend:
		return f.createSheetsExporter(ctx, config)
	case MemoryBackend:
		return f.createMemoryExporter(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSheetsExporter(ctx context.Context, config Config) (*ExporterResult, error) {
	cli, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets export backend",
		"spreadsheet_id", config.GoogleSpreadsheetID,
		"transaction_sheet", config.GoogleTransactionSheet,
		"summary_sheet", config.GoogleSummarySheet)

	return &ExporterResult{
		Exporter: cli,
		Cleanup:  nil, // No cleanup needed for sheets backend
	}, nil
}

func (f *DefaultFactory) createMemoryExporter(config Config) (*ExporterResult, error) {
	store := memory.New()

	f.logger.Info("Initialized memory export backend")

	return &ExporterResult{
		Exporter: store,
		Cleanup:  nil, // No cleanup needed for memory backend
	}, nil
}
