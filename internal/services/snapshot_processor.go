package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"watcard/internal/core"
	"watcard/internal/sheets"
	"watcard/internal/storage"
)

// SnapshotProcessorConfig holds configuration for the snapshot processor.
type SnapshotProcessorConfig struct {
	// Cadence decides how often a new snapshot is due ("daily" or "weekly").
	Cadence string

	// CheckInterval is how often to check whether a snapshot is due.
	CheckInterval time.Duration
}

// DefaultSnapshotProcessorConfig returns sensible defaults.
func DefaultSnapshotProcessorConfig() SnapshotProcessorConfig {
	return SnapshotProcessorConfig{
		Cadence:       "daily",
		CheckInterval: 15 * time.Minute,
	}
}

// SnapshotProcessor periodically persists a summary snapshot of the stored
// history so spending trends survive batch replacement.
type SnapshotProcessor struct {
	storage  *storage.SQLiteRepository
	exporter sheets.SummaryExporter
	checker  CadenceChecker
	config   SnapshotProcessorConfig

	// Lifecycle management
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewSnapshotProcessor creates a new snapshot processor. The exporter is
// optional; when nil, snapshots are persisted locally only.
func NewSnapshotProcessor(
	storage *storage.SQLiteRepository,
	exporter sheets.SummaryExporter,
	config SnapshotProcessorConfig,
) (*SnapshotProcessor, error) {
	checker, err := GetCadenceChecker(config.Cadence)
	if err != nil {
		return nil, err
	}

	return &SnapshotProcessor{
		storage:  storage,
		exporter: exporter,
		checker:  checker,
		config:   config,
	}, nil
}

// Start begins the processing loop. Returns an error if already running.
func (p *SnapshotProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("snapshot processor is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	go p.runLoop(ctx)

	slog.InfoContext(ctx, "Snapshot processor started",
		"cadence", p.config.Cadence,
		"check_interval", p.config.CheckInterval)

	return nil
}

// Stop gracefully stops the processor and waits for completion.
func (p *SnapshotProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	close(p.stopCh)

	select {
	case <-p.doneCh:
		slog.InfoContext(ctx, "Snapshot processor stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Snapshot processor stop timed out")
		return ctx.Err()
	}

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()

	return nil
}

// IsRunning returns whether the processor is currently running.
func (p *SnapshotProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *SnapshotProcessor) runLoop(ctx context.Context) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.config.CheckInterval)
	defer ticker.Stop()

	// Check immediately on startup
	p.checkAndSnapshot(ctx)

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.checkAndSnapshot(ctx)
		}
	}
}

// checkAndSnapshot takes a snapshot if one is due under the cadence.
func (p *SnapshotProcessor) checkAndSnapshot(ctx context.Context) {
	now := time.Now()

	var last time.Time
	if at, ok := p.storage.LatestSnapshotAt(ctx); ok {
		last = at
	}

	if !p.checker.IsDue(last, now) {
		return
	}

	if err := p.TakeSnapshot(ctx, now); err != nil {
		slog.ErrorContext(ctx, "Failed to take snapshot", "error", err)
	}
}

// TakeSnapshot computes a summary of the stored history and persists it.
// An empty history is skipped, not an error.
func (p *SnapshotProcessor) TakeSnapshot(ctx context.Context, now time.Time) error {
	txns, err := p.storage.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	if len(txns) == 0 {
		slog.DebugContext(ctx, "No transactions stored, skipping snapshot")
		return nil
	}

	balance := 0.0
	if stored, ok := p.storage.GetBalance(ctx); ok {
		balance = stored
	}

	summary := core.Summarize(txns, now, balance)

	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	if err := p.storage.SaveSnapshot(ctx, now, payload); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	if p.exporter != nil {
		if err := p.exporter.ExportSummary(ctx, now, summary); err != nil {
			slog.WarnContext(ctx, "Failed to export snapshot summary", "error", err)
			// Local snapshot succeeded, keep going
		}
	}

	slog.InfoContext(ctx, "Snapshot taken",
		"taken_at", now.Format(time.RFC3339),
		"total_spent", summary.TotalSpent,
		"persona", summary.Persona)

	return nil
}
