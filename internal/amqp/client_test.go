package amqp

import (
	"errors"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{10, 30 * time.Second},
		{63, 30 * time.Second},
	}

	for _, tt := range tests {
		if got := exponentialBackoff(tt.attempt); got != tt.want {
			t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5672: connection refused"), true},
		{"connection reset", errors.New("read: connection reset by peer"), true},
		{"channel closed", errors.New("message channel closed"), true},
		{"EOF", errors.New("unexpected EOF"), true},
		{"handler failure", errors.New("export batch: sheet not found"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.want {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestBatchIngestedMessageRoundTrip(t *testing.T) {
	msg := NewBatchIngestedMessage("batch-42", 17, 3)

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	decoded, err := BatchIngestedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("BatchIngestedMessageFromJSON() error = %v", err)
	}

	if decoded.BatchID != "batch-42" {
		t.Errorf("BatchID = %q, want %q", decoded.BatchID, "batch-42")
	}
	if decoded.Count != 17 {
		t.Errorf("Count = %d, want 17", decoded.Count)
	}
	if decoded.Rejected != 3 {
		t.Errorf("Rejected = %d, want 3", decoded.Rejected)
	}
	if decoded.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
}

func TestBatchIngestedMessageFromJSONInvalid(t *testing.T) {
	if _, err := BatchIngestedMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
