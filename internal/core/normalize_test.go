package core

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRawAmountUnmarshal(t *testing.T) {
	// Decoding never fails: unreadable shapes are kept verbatim so the row
	// is rejected during normalization, not the whole batch during decode.
	cases := []struct {
		in   string
		want RawAmount
	}{
		{`"$12.50"`, "$12.50"},
		{`"-$3.25"`, "-$3.25"},
		{`12.5`, "12.5"},
		{`-7`, "-7"},
		{`{"nested":true}`, `{"nested":true}`},
		{`null`, `null`},
		{`true`, `true`},
		{`["1"]`, `["1"]`},
	}
	for _, tc := range cases {
		var got RawAmount
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Errorf("unmarshal %s unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("unmarshal %s = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRawAmountUnreadableShapesRejectedRow(t *testing.T) {
	raws := []RawTransaction{
		{Date: "2026-02-01 08:00:00", Terminal: "STARBUCKS STC", Amount: "-2.50"},
		{Date: "2026-02-01 09:00:00", Terminal: "BAD", Amount: `{"nested":true}`},
		{Date: "2026-02-01 10:00:00", Terminal: "ALSO BAD", Amount: `null`},
	}
	txns, rejected := NormalizeBatch(raws)
	if len(txns) != 1 || rejected != 2 {
		t.Fatalf("expected 1 transaction and 2 rejections, got %d and %d", len(txns), rejected)
	}
	if txns[0].Terminal != "STARBUCKS STC" {
		t.Errorf("wrong surviving row: %+v", txns[0])
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  RawTransaction
		want Transaction
	}{
		{
			name: "purchase with currency symbol and minus",
			raw:  RawTransaction{Date: "2026-02-03 12:15:00", Terminal: "01481 : POS-FS-UWP MARKET-37", Amount: "-$4.25"},
			want: Transaction{Date: "2026-02-03 12:15:00", Terminal: "01481 : POS-FS-UWP MARKET-37", Amount: 4.25, IsDeposit: false, Category: Groceries},
		},
		{
			name: "no minus sign means deposit",
			raw:  RawTransaction{Date: "2026-02-01 09:00:00", Terminal: "WATCARD OFFICE", Amount: "$100.00"},
			want: Transaction{Date: "2026-02-01 09:00:00", Terminal: "WATCARD OFFICE", Amount: 100, IsDeposit: true, Category: Other},
		},
		{
			name: "round-tripped record keeps its flags",
			raw: RawTransaction{Date: "2026-02-03 12:15:00", Terminal: "SOMEWHERE", Amount: "4.25",
				IsDeposit: boolPtr(false), Category: "Dining"},
			want: Transaction{Date: "2026-02-03 12:15:00", Terminal: "SOMEWHERE", Amount: 4.25, IsDeposit: false, Category: Dining},
		},
		{
			name: "invalid pre-set category is reclassified",
			raw:  RawTransaction{Date: "2026-02-03 12:15:00", Terminal: "STARBUCKS STC", Amount: "-2.75", Category: "Snacks"},
			want: Transaction{Date: "2026-02-03 12:15:00", Terminal: "STARBUCKS STC", Amount: 2.75, IsDeposit: false, Category: Dining},
		},
		{
			name: "fields are trimmed",
			raw:  RawTransaction{Date: " 2026-02-03 12:15:00 ", Terminal: " MUDIES ", Amount: "-1"},
			want: Transaction{Date: "2026-02-03 12:15:00", Terminal: "MUDIES", Amount: 1, IsDeposit: false, Category: Dining},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeRejectsGarbageAmounts(t *testing.T) {
	bads := []RawAmount{"", "$-", "abc", "$", "NaN", "-Inf", "12.3.4"}
	for _, amt := range bads {
		_, err := Normalize(RawTransaction{Date: "2026-02-03 12:15:00", Terminal: "X", Amount: amt})
		if err == nil {
			t.Errorf("Normalize with amount %q expected error", amt)
		}
	}
}

func TestNormalizeBatch(t *testing.T) {
	raws := []RawTransaction{
		{Date: "2026-02-01 08:00:00", Terminal: "STARBUCKS STC", Amount: "-2.50"},
		{Date: "2026-02-01 09:00:00", Terminal: "BAD", Amount: "$-"},
		{Date: "2026-02-02 10:00:00", Terminal: "UWP MARKET", Amount: "-10"},
		{Date: "2026-02-02 11:00:00", Terminal: "ALSO BAD", Amount: "garbage"},
	}

	txns, rejected := NormalizeBatch(raws)
	if len(txns) != 2 {
		t.Fatalf("expected 2 canonical transactions, got %d", len(txns))
	}
	if rejected != 2 {
		t.Fatalf("expected 2 rejections, got %d", rejected)
	}
	// Input order is preserved.
	if txns[0].Terminal != "STARBUCKS STC" || txns[1].Terminal != "UWP MARKET" {
		t.Errorf("batch order not preserved: %+v", txns)
	}
}

func TestNormalizeIsPure(t *testing.T) {
	raw := RawTransaction{Date: "2026-02-03 12:15:00", Terminal: "POS-FS-TH-SLC-2", Amount: "-3.10"}
	first, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	second, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Normalize not deterministic: %+v vs %+v", first, second)
	}
}

func boolPtr(b bool) *bool { return &b }
