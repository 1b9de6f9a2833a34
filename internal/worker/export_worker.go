package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"watcard/internal/amqp"
	"watcard/internal/core"
	"watcard/internal/sheets"
	"watcard/internal/storage"
)

// ExportWorker mirrors the stored transaction history and its summary to the
// configured export backend whenever a batch is ingested.
type ExportWorker struct {
	storage  *storage.SQLiteRepository
	exporter sheets.Exporter
}

func NewExportWorker(storage *storage.SQLiteRepository, exporter sheets.Exporter) *ExportWorker {
	return &ExportWorker{
		storage:  storage,
		exporter: exporter,
	}
}

// HandleBatchIngested processes a single batch ingested message from AMQP.
func (w *ExportWorker) HandleBatchIngested(ctx context.Context, msg *amqp.BatchIngestedMessage) error {
	slog.InfoContext(ctx, "Processing batch ingested message",
		"batch_id", msg.BatchID,
		"count", msg.Count,
		"rejected", msg.Rejected)

	txns, err := w.storage.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	if err := w.exporter.ExportBatch(ctx, msg.BatchID, txns); err != nil {
		return fmt.Errorf("export batch: %w", err)
	}

	balance := 0.0
	if stored, ok := w.storage.GetBalance(ctx); ok {
		balance = stored
	}

	summary := core.Summarize(txns, time.Now(), balance)
	if err := w.exporter.ExportSummary(ctx, time.Now(), summary); err != nil {
		return fmt.Errorf("export summary: %w", err)
	}

	slog.InfoContext(ctx, "Successfully exported batch",
		"batch_id", msg.BatchID,
		"transactions", len(txns),
		"total_spent", summary.TotalSpent,
		"persona", summary.Persona)

	return nil
}

// StartupExportCheck re-exports the stored history at worker startup.
// This recovers from missed AMQP messages or worker downtime.
func (w *ExportWorker) StartupExportCheck(ctx context.Context) error {
	count, err := w.storage.CountTransactions(ctx)
	if err != nil {
		return fmt.Errorf("count transactions: %w", err)
	}

	if count == 0 {
		slog.InfoContext(ctx, "No stored transactions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found stored transactions on startup, re-exporting...",
		"count", count)

	lastIngested := "never"
	if at, ok := w.storage.LastIngestedAt(ctx); ok {
		lastIngested = at.Format(time.RFC3339)
	}

	msg := amqp.NewBatchIngestedMessage(fmt.Sprintf("startup-%d", time.Now().Unix()), count, 0)
	if err := w.HandleBatchIngested(ctx, msg); err != nil {
		return fmt.Errorf("startup export: %w", err)
	}

	slog.InfoContext(ctx, "Startup export completed",
		"count", count,
		"last_ingested", lastIngested)

	return nil
}
