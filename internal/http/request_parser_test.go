package http

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseBatchBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLen int
		wantErr bool
	}{
		{
			name:    "valid list",
			body:    `[{"date":"2026-02-01 10:00:00","terminal":"UWP MARKET","amount":"-$5.00"}]`,
			wantLen: 1,
		},
		{
			name:    "empty list",
			body:    `[]`,
			wantLen: 0,
		},
		{
			name:    "leading whitespace",
			body:    "  \n\t[]",
			wantLen: 0,
		},
		{
			name:    "object not list",
			body:    `{"date":"2026-02-01"}`,
			wantErr: true,
		},
		{
			name:    "bare string",
			body:    `"hello"`,
			wantErr: true,
		},
		{
			name:    "empty body",
			body:    ``,
			wantErr: true,
		},
		{
			name:    "truncated list",
			body:    `[{"date":`,
			wantErr: true,
		},
		{
			name:    "list with non-numeric amount survives decode",
			body:    `[{"date":"2026-02-01","terminal":"X","amount":null}]`,
			wantLen: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/transactions", strings.NewReader(tt.body))
			raws, err := ParseBatchBody(req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBatchBody() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(raws) != tt.wantLen {
				t.Errorf("len(raws) = %d, want %d", len(raws), tt.wantLen)
			}
		})
	}
}

func TestParseBalanceParam(t *testing.T) {
	tests := []struct {
		raw     string
		want    *float64
		wantErr bool
	}{
		{"", nil, false},
		{"  ", nil, false},
		{"100", f(100), false},
		{"42.50", f(42.50), false},
		{"0", f(0), false},
		{"-5", nil, true},
		{"abc", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, key, err := ParseBalanceParam(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBalanceParam(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ParseBalanceParam(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("ParseBalanceParam(%q) = %v, want %v", tt.raw, *got, *tt.want)
			}
			if key == "" {
				t.Error("cache key should not be empty")
			}
		})
	}
}

func f(v float64) *float64 { return &v }
