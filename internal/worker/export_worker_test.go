package worker

import (
	"context"
	"path/filepath"
	"testing"

	"watcard/internal/amqp"
	"watcard/internal/core"
	"watcard/internal/sheets/memory"
	"watcard/internal/storage"
)

func newTestWorker(t *testing.T) (*ExportWorker, *storage.SQLiteRepository, *memory.Store) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	store := memory.New()
	return NewExportWorker(repo, store), repo, store
}

func TestHandleBatchIngested(t *testing.T) {
	w, repo, store := newTestWorker(t)
	ctx := context.Background()

	txns := []core.Transaction{
		{Date: "2026-02-02 12:05:00", Terminal: "TH-SLC", Amount: 4.50, Category: core.Dining},
		{Date: "2026-02-03 09:00:00", Terminal: "WEB LOAD", Amount: 50.00, IsDeposit: true, Category: core.Other},
	}
	if err := repo.ReplaceBatch(ctx, "batch-7", txns); err != nil {
		t.Fatalf("ReplaceBatch() error = %v", err)
	}
	if err := repo.SetBalance(ctx, 200); err != nil {
		t.Fatalf("SetBalance() error = %v", err)
	}

	msg := amqp.NewBatchIngestedMessage("batch-7", 2, 0)
	if err := w.HandleBatchIngested(ctx, msg); err != nil {
		t.Fatalf("HandleBatchIngested() error = %v", err)
	}

	batchID, exported := store.Batch()
	if batchID != "batch-7" {
		t.Errorf("exported batch ID = %q, want %q", batchID, "batch-7")
	}
	if len(exported) != 2 {
		t.Fatalf("exported %d transactions, want 2", len(exported))
	}

	rows := store.Summaries()
	if len(rows) != 1 {
		t.Fatalf("exported %d summaries, want 1", len(rows))
	}
	if rows[0].Summary.TotalSpent != 4.50 {
		t.Errorf("summary TotalSpent = %v, want 4.50", rows[0].Summary.TotalSpent)
	}
	if rows[0].Summary.Forecast == nil {
		t.Error("summary should carry a forecast with a stored balance")
	}
}

func TestStartupExportCheckEmpty(t *testing.T) {
	w, _, store := newTestWorker(t)

	if err := w.StartupExportCheck(context.Background()); err != nil {
		t.Fatalf("StartupExportCheck() error = %v", err)
	}

	if _, exported := store.Batch(); len(exported) != 0 {
		t.Error("nothing should be exported for an empty store")
	}
}

func TestStartupExportCheckWithHistory(t *testing.T) {
	w, repo, store := newTestWorker(t)
	ctx := context.Background()

	txns := []core.Transaction{
		{Date: "2026-02-02 12:05:00", Terminal: "TH-SLC", Amount: 4.50, Category: core.Dining},
	}
	if err := repo.ReplaceBatch(ctx, "batch-1", txns); err != nil {
		t.Fatalf("ReplaceBatch() error = %v", err)
	}

	if err := w.StartupExportCheck(ctx); err != nil {
		t.Fatalf("StartupExportCheck() error = %v", err)
	}

	if _, exported := store.Batch(); len(exported) != 1 {
		t.Errorf("exported %d transactions, want 1", len(exported))
	}
}
