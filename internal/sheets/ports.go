package sheets

import (
	"context"
	"time"

	"watcard/internal/core"
)

// Ports for outbound export adapters.
type (
	// BatchExporter replaces the exported transaction history with the
	// latest ingested batch.
	BatchExporter interface {
		ExportBatch(ctx context.Context, batchID string, txns []core.Transaction) error
	}

	// SummaryExporter appends one derived-metrics row per export run.
	SummaryExporter interface {
		ExportSummary(ctx context.Context, takenAt time.Time, s core.Summary) error
	}

	// Exporter is the full export surface the worker needs.
	Exporter interface {
		BatchExporter
		SummaryExporter
	}
)
