package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"watcard/internal/amqp"
	"watcard/internal/core"
	"watcard/internal/storage"
)

// IngestResult reports the outcome of a batch ingestion.
type IngestResult struct {
	BatchID  string `json:"batchId"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected"`
}

// AnalyticsService orchestrates transaction analytics across SQLite and AMQP.
type AnalyticsService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewAnalyticsService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *AnalyticsService {
	return &AnalyticsService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// IngestBatch normalizes a raw statement batch, replaces the stored history
// with the accepted rows, and announces the batch over AMQP. Unparsable rows
// are dropped and counted, never fatal.
func (s *AnalyticsService) IngestBatch(ctx context.Context, raws []core.RawTransaction) (IngestResult, error) {
	txns, rejected := core.NormalizeBatch(raws)

	batchID := fmt.Sprintf("batch-%d", time.Now().UnixNano())

	// Save to SQLite first (fast, reliable)
	if err := s.storage.ReplaceBatch(ctx, batchID, txns); err != nil {
		return IngestResult{}, fmt.Errorf("replace batch: %w", err)
	}

	result := IngestResult{
		BatchID:  batchID,
		Accepted: len(txns),
		Rejected: rejected,
	}

	// Publish async export message (non-blocking)
	if err := s.publishBatchIngested(ctx, result); err != nil {
		slog.ErrorContext(ctx, "Failed to publish batch ingested message",
			"batch_id", batchID, "error", err)
		// Don't fail the request, the batch is saved locally
	}

	return result, nil
}

// Summary recomputes the full metric set from the stored history. When
// balance is nil the stored balance (if any) is used; a zero balance
// suppresses the forecast.
func (s *AnalyticsService) Summary(ctx context.Context, balance *float64) (core.Summary, error) {
	txns, err := s.storage.ListTransactions(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("list transactions: %w", err)
	}

	effective := 0.0
	if balance != nil {
		effective = *balance
	} else if stored, ok := s.storage.GetBalance(ctx); ok {
		effective = stored
	}

	return core.Summarize(txns, time.Now(), effective), nil
}

// Transactions returns the stored canonical history in insertion order.
func (s *AnalyticsService) Transactions(ctx context.Context) ([]core.Transaction, error) {
	return s.storage.ListTransactions(ctx)
}

// SetBalance stores the current card balance for forecasting.
func (s *AnalyticsService) SetBalance(ctx context.Context, balance float64) error {
	if balance < 0 {
		return fmt.Errorf("balance must not be negative")
	}
	return s.storage.SetBalance(ctx, balance)
}

// Clear wipes the stored history, balance, and snapshots.
func (s *AnalyticsService) Clear(ctx context.Context) error {
	return s.storage.Clear(ctx)
}

func (s *AnalyticsService) publishBatchIngested(ctx context.Context, result IngestResult) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping batch message")
		return nil
	}

	return s.amqpClient.PublishBatchIngested(ctx, result.BatchID, result.Accepted, result.Rejected)
}

// Close closes both storage and AMQP connections.
func (s *AnalyticsService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close analytics service: %v", errs)
	}

	return nil
}
