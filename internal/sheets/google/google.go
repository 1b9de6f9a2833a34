// Package google exports the ingested WatCard history and its derived
// metrics to a Google Sheets spreadsheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"watcard/internal/core"
	ports "watcard/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc              *gsheet.Service
	spreadsheetID    string
	transactionSheet string
	summarySheet     string
}

// Ensure interface conformance
var (
	_ ports.BatchExporter   = (*Client)(nil)
	_ ports.SummaryExporter = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS. Optional sheet names:
// GOOGLE_TRANSACTION_SHEET (default "Transactions") and
// GOOGLE_SUMMARY_SHEET (default "Summary").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	transactionSheet := strings.TrimSpace(os.Getenv("GOOGLE_TRANSACTION_SHEET"))
	if transactionSheet == "" {
		transactionSheet = "Transactions"
	}
	summarySheet := strings.TrimSpace(os.Getenv("GOOGLE_SUMMARY_SHEET"))
	if summarySheet == "" {
		summarySheet = "Summary"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:              svc,
		spreadsheetID:    spreadsheetID,
		transactionSheet: transactionSheet,
		summarySheet:     summarySheet,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials from the environment.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// ExportBatch clears the transaction sheet and rewrites it with the full
// ingested history, mirroring the replace-wholesale storage semantics.
func (c *Client) ExportBatch(ctx context.Context, batchID string, txns []core.Transaction) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A2:E", c.transactionSheet)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear transaction sheet: %w", err)
	}

	header := []interface{}{"Date", "Terminal", "Amount", "Deposit", "Category"}
	values := make([][]interface{}, 0, len(txns)+1)
	values = append(values, header)
	for _, t := range txns {
		deposit := ""
		if t.IsDeposit {
			deposit = "yes"
		}
		values = append(values, []interface{}{
			t.Date, t.Terminal, t.Amount, deposit, string(t.Category),
		})
	}

	rng := fmt.Sprintf("%s!A1", c.transactionSheet)
	vr := &gsheet.ValueRange{Values: values}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write transaction sheet: %w", err)
	}

	slog.InfoContext(ctx, "Batch exported to Google Sheets",
		"batch_id", batchID,
		"rows", len(txns),
		"sheet", c.transactionSheet)

	return nil
}

// ExportSummary appends one row of headline metrics to the summary sheet.
func (c *Client) ExportSummary(ctx context.Context, takenAt time.Time, s core.Summary) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	row := []interface{}{
		takenAt.UTC().Format(time.RFC3339),
		s.TotalSpent,
		s.ElapsedDays,
		s.DailyBurnRate,
		s.CoffeeTax,
		s.LateNightDiningTax,
		string(s.Persona),
	}

	rng := fmt.Sprintf("%s!A:G", c.summarySheet)
	vr := &gsheet.ValueRange{Values: [][]interface{}{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append summary row: %w", err)
	}

	slog.InfoContext(ctx, "Summary exported to Google Sheets",
		"persona", string(s.Persona),
		"total_spent", s.TotalSpent,
		"sheet", c.summarySheet)

	return nil
}
