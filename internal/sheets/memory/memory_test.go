package memory

import (
	"context"
	"testing"
	"time"

	"watcard/internal/core"
)

func TestExportBatchReplaces(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := []core.Transaction{{Date: "2026-02-01 12:00:00", Terminal: "MUDIES", Amount: 5, Category: core.Dining}}
	if err := s.ExportBatch(ctx, "batch-1", first); err != nil {
		t.Fatalf("ExportBatch() error = %v", err)
	}

	second := []core.Transaction{
		{Date: "2026-02-02 12:00:00", Terminal: "UWP MARKET", Amount: 10, Category: core.Groceries},
		{Date: "2026-02-03 08:00:00", Terminal: "STARBUCKS STC", Amount: 3, Category: core.Dining},
	}
	if err := s.ExportBatch(ctx, "batch-2", second); err != nil {
		t.Fatalf("ExportBatch() error = %v", err)
	}

	batchID, txns := s.Batch()
	if batchID != "batch-2" {
		t.Errorf("batch id = %q, want batch-2", batchID)
	}
	if len(txns) != 2 {
		t.Errorf("stored %d transactions, want 2 (replace, not append)", len(txns))
	}
}

func TestExportSummaryAppends(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if err := s.ExportSummary(ctx, now.Add(time.Duration(i)*time.Hour), core.Summary{TotalSpent: float64(i)}); err != nil {
			t.Fatalf("ExportSummary() error = %v", err)
		}
	}

	rows := s.Summaries()
	if len(rows) != 3 {
		t.Fatalf("stored %d summary rows, want 3", len(rows))
	}
	if rows[2].Summary.TotalSpent != 2 {
		t.Errorf("last row total = %v, want 2", rows[2].Summary.TotalSpent)
	}
}
