package core

import (
	"testing"
	"time"
)

func summaryFor(t *testing.T, txns []Transaction) Summary {
	t.Helper()
	return Summarize(txns, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), 0)
}

func TestClassifyPersona(t *testing.T) {
	tests := []struct {
		name string
		txns []Transaction
		want Persona
	}{
		{
			name: "midnight snacker on late-night fraction",
			txns: []Transaction{
				purchase("2026-02-01 23:30:00", "UWP MARKET", 30),
				purchase("2026-02-01 12:00:00", "UWP MARKET", 70),
			},
			want: MidnightSnacker,
		},
		{
			name: "caffeine addict on absolute coffee tax",
			txns: []Transaction{
				purchase("2026-02-01 08:00:00", "STARBUCKS STC", 85),
				purchase("2026-02-01 12:00:00", "UWP MARKET", 600),
			},
			want: CaffeineAddict,
		},
		{
			name: "caffeine addict on coffee fraction",
			txns: []Transaction{
				purchase("2026-02-01 08:00:00", "POS-FS-TH-SLC-2", 20),
				purchase("2026-02-01 12:00:00", "UWP MARKET", 80),
			},
			want: CaffeineAddict,
		},
		{
			name: "late-night gourmet",
			txns: []Transaction{
				purchase("2026-02-01 23:00:00", "MUDIES", 45),
				purchase("2026-02-01 12:00:00", "UWP MARKET", 200),
			},
			want: LateNightGourmet,
		},
		{
			name: "campus foodie",
			txns: []Transaction{
				purchase("2026-02-01 12:00:00", "SUBWAY SLC", 60),
				purchase("2026-02-01 13:00:00", "UWP MARKET", 40),
			},
			want: CampusFoodie,
		},
		{
			name: "smart shopper",
			txns: []Transaction{
				purchase("2026-02-01 12:00:00", "UWP MARKET", 50),
				purchase("2026-02-01 13:00:00", "REV TUCK SHOP", 50),
			},
			want: SmartShopper,
		},
		{
			name: "scholar",
			txns: []Transaction{
				purchase("2026-02-01 12:00:00", "W PRINT", 30),
				purchase("2026-02-01 13:00:00", "REV TUCK SHOP", 170),
			},
			want: Scholar,
		},
		{
			name: "budget master",
			txns: []Transaction{
				purchase("2026-02-01 12:00:00", "REV TUCK SHOP", 10),
				purchase("2026-02-05 12:00:00", "REV TUCK SHOP", 10),
			},
			want: BudgetMaster,
		},
		{
			name: "default campus explorer",
			txns: []Transaction{
				purchase("2026-02-01 12:00:00", "REV TUCK SHOP", 20),
				purchase("2026-02-02 12:00:00", "REV TUCK SHOP", 20),
			},
			want: CampusExplorer,
		},
		{
			name: "no transactions falls through to budget master",
			txns: nil,
			want: BudgetMaster,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := summaryFor(t, tt.txns).Persona; got != tt.want {
				t.Errorf("persona = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPersonaRulePrecedence(t *testing.T) {
	// Late-night fraction 0.30 AND coffee tax over 80: rule 1 wins.
	txns := []Transaction{
		purchase("2026-02-01 23:30:00", "UWP MARKET", 90),
		purchase("2026-02-01 08:00:00", "STARBUCKS STC", 85),
		purchase("2026-02-01 12:00:00", "REV TUCK SHOP", 125),
	}
	s := summaryFor(t, txns)
	if got := s.fraction(s.bucketTotal(LateNight)); got <= 0.25 {
		t.Fatalf("test setup: late-night fraction = %v, want > 0.25", got)
	}
	if s.CoffeeTax <= 80 {
		t.Fatalf("test setup: coffee tax = %v, want > 80", s.CoffeeTax)
	}
	if s.Persona != MidnightSnacker {
		t.Errorf("persona = %q, want %q", s.Persona, MidnightSnacker)
	}
}

func TestZeroSpendFractionsAreGuarded(t *testing.T) {
	var s Summary
	if got := s.fraction(10); got != 0 {
		t.Errorf("fraction with zero total = %v, want 0", got)
	}
}
