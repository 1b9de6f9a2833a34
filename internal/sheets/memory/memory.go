// Package memory is an in-process stand-in for the Google Sheets export
// adapter, used in development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"watcard/internal/core"
)

type SummaryRow struct {
	TakenAt time.Time
	Summary core.Summary
}

type Store struct {
	mu        sync.Mutex
	batchID   string
	txns      []core.Transaction
	summaries []SummaryRow
}

func New() *Store {
	return &Store{}
}

// ExportBatch replaces the stored history, like the sheets adapter does.
func (s *Store) ExportBatch(_ context.Context, batchID string, txns []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batchID = batchID
	s.txns = append([]core.Transaction(nil), txns...)
	return nil
}

// ExportSummary appends a summary row.
func (s *Store) ExportSummary(_ context.Context, takenAt time.Time, summary core.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = append(s.summaries, SummaryRow{TakenAt: takenAt, Summary: summary})
	return nil
}

// Batch returns the last exported batch.
func (s *Store) Batch() (string, []core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batchID, append([]core.Transaction(nil), s.txns...)
}

// Summaries returns all exported summary rows.
func (s *Store) Summaries() []SummaryRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SummaryRow(nil), s.summaries...)
}
