package backend

import (
	"context"

	"watcard/internal/sheets"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// ExporterResult contains the exporter instance and optional cleanup function
type ExporterResult struct {
	Exporter sheets.Exporter
	Cleanup  CleanupFunc
}

// Factory creates export backends based on configuration
type Factory interface {
	// CreateExporter creates an exporter instance based on the provided config
	CreateExporter(ctx context.Context, config Config) (*ExporterResult, error)
}

// Config holds configuration for export backend creation
type Config struct {
	// Backend type
	Type BackendType

	// Google Sheets specific
	GoogleSpreadsheetID    string
	GoogleTransactionSheet string
	GoogleSummarySheet     string
}

// BackendType represents the type of export backend
type BackendType string

const (
	SheetsBackend BackendType = "sheets"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
