package core

import "testing"

func TestCategorize(t *testing.T) {
	cases := []struct {
		terminal string
		want     Category
	}{
		{"01481 : POS-FS-UWP MARKET-37", Groceries},
		{"V1 LAUNDRY 02", Laundry},
		{"WES-CC-04", Laundry},
		{"W PRINT DANA PORTER", Academic},
		{"BROWSERS CAFE", Academic},
		{"POS-FS-TH-SLC-2", Dining},
		{"STARBUCKS STC", Dining},
		{"SUBWAY SLC", Dining},
		{"MUDIES", Dining},
		{"REV TUCK SHOP", Other},
		{"", Other},
		// Rule order: MARKET wins before LAUNDRY.
		{"UWP MARKET LAUNDRY", Groceries},
		// Case-insensitive matching.
		{"starbucks slc", Dining},
		// The broad DC substring rule. Preserved as-is.
		{"CODE-XDCY-9", Dining},
	}
	for _, tc := range cases {
		if got := Categorize(tc.terminal); got != tc.want {
			t.Errorf("Categorize(%q) = %q, want %q", tc.terminal, got, tc.want)
		}
	}
}

func TestCleanTerminal(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"01481 : POS-FS-UWP MARKET-37", "UWP MARKET"},
		{"POS-FS-TIM HORTONS SLC-12", "TIM HORTONS SLC"},
		{"pos-fs-lowercase prefix", "lowercase prefix"},
		{"MUDIES-3", "MUDIES"},
		{"NO COLON HERE", "NO COLON HERE"},
		{"TRAILING DASH-", "TRAILING DASH"},
		{"  spaced  ", "spaced"},
		{"", ""},
		{":", ""},
	}
	for _, tc := range cases {
		if got := CleanTerminal(tc.in); got != tc.want {
			t.Errorf("CleanTerminal(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCategorizeIsTotal(t *testing.T) {
	// Every terminal maps to exactly one of the five known categories.
	terminals := []string{"", "???", "UWP MARKET", "WES", "PRINT", "DC", "xyz"}
	for _, term := range terminals {
		if got := Categorize(term); !got.IsValid() {
			t.Errorf("Categorize(%q) returned unknown category %q", term, got)
		}
	}
}
