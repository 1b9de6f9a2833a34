package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"watcard/internal/core"

	_ "modernc.org/sqlite"
)

// State keys stored in the app_state table.
const (
	stateBalance        = "balance"
	stateLastIngestedAt = "last_ingested_at"
)

// SQLiteRepository owns the persisted copy of the last-ingested transaction
// history, the user balance, and summary snapshots. The analytics core
// itself never touches it; every analysis run reloads the full list.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReplaceBatch swaps the whole persisted history for the new batch. The
// history has replace-wholesale semantics: analytics always run over one
// complete ingestion, never a merge of several.
func (r *SQLiteRepository) ReplaceBatch(ctx context.Context, batchID string, txns []core.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear previous batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (occurred_at, terminal, amount, is_deposit, category, batch_id)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txns {
		isDeposit := 0
		if t.IsDeposit {
			isDeposit = 1
		}
		if _, err := stmt.ExecContext(ctx, t.Date, t.Terminal, t.Amount, isDeposit, string(t.Category), batchID); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		stateLastIngestedAt, now); err != nil {
		return fmt.Errorf("record ingest timestamp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	slog.InfoContext(ctx, "Transaction batch persisted",
		"batch_id", batchID,
		"count", len(txns))

	return nil
}

// ListTransactions returns the full persisted history, deposits included,
// in ingestion order.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT occurred_at, terminal, amount, is_deposit, category
		FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var isDeposit int
		var category string
		if err := rows.Scan(&t.Date, &t.Terminal, &t.Amount, &isDeposit, &category); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.IsDeposit = isDeposit != 0
		t.Category = core.Category(category)
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txns, nil
}

// CountTransactions returns the size of the persisted history.
func (r *SQLiteRepository) CountTransactions(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

// Clear drops the persisted history and all derived state.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM transactions`,
		`DELETE FROM app_state`,
		`DELETE FROM snapshots`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear state: %w", err)
		}
	}

	return tx.Commit()
}

// SetBalance stores the user-supplied current balance.
func (r *SQLiteRepository) SetBalance(ctx context.Context, balance float64) error {
	return r.setState(ctx, stateBalance, strconv.FormatFloat(balance, 'f', 2, 64))
}

// GetBalance returns the stored balance. A missing or corrupt value is
// treated as absent rather than an error.
func (r *SQLiteRepository) GetBalance(ctx context.Context) (float64, bool) {
	value, ok := r.getState(ctx, stateBalance)
	if !ok {
		return 0, false
	}
	balance, err := strconv.ParseFloat(value, 64)
	if err != nil {
		slog.WarnContext(ctx, "Stored balance is corrupt, treating as absent", "value", value)
		return 0, false
	}
	return balance, true
}

// LastIngestedAt returns the time of the last persisted batch, if any.
// Corrupt values count as absent.
func (r *SQLiteRepository) LastIngestedAt(ctx context.Context) (time.Time, bool) {
	value, ok := r.getState(ctx, stateLastIngestedAt)
	if !ok {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		slog.WarnContext(ctx, "Stored ingest timestamp is corrupt, treating as absent", "value", value)
		return time.Time{}, false
	}
	return ts, true
}

// SaveSnapshot records a summary JSON blob for historical reference.
func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, takenAt time.Time, summaryJSON []byte) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO snapshots (taken_at, summary) VALUES (?, ?)`,
		takenAt.UTC().Format(time.RFC3339), string(summaryJSON))
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// LatestSnapshotAt returns when the newest snapshot was taken, if any.
func (r *SQLiteRepository) LatestSnapshotAt(ctx context.Context) (time.Time, bool) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT taken_at FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed reading latest snapshot", "error", err)
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func (r *SQLiteRepository) setState(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set state %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) getState(ctx context.Context, key string) (string, bool) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed reading app state", "key", key, "error", err)
		return "", false
	}
	return value, true
}
