// Package core implements the WatCard analytics engine: terminal
// categorization, transaction normalization, metric aggregation, and
// persona classification. Everything here is pure computation over an
// in-memory transaction list.
package core

import (
	"regexp"
	"strings"
)

// categoryRules is the ordered rule list for terminal categorization.
// Evaluation is first-match-wins and the order is load-bearing: a terminal
// containing both MARKET and LAUNDRY is Groceries because the market rule
// comes first. Do not reorder.
var categoryRules = []struct {
	tokens   []string
	category Category
}{
	{[]string{"MARKET"}, Groceries},
	{[]string{"LAUNDRY", "WES"}, Laundry},
	{[]string{"PRINT", "BROWSERS"}, Academic},
	// "DC" is a plain substring match and therefore catches any terminal
	// with those two letters anywhere in it. Inherited behavior; keep it
	// until a corrected token list exists.
	{[]string{"MUDIES", "BRUBAKERS", "TH-", "TH ", "LIQUID", "TERIYAKI",
		"SUBWAY", "WILLIAMS", "FRESH", "JUGO", "PITA", "STARBUCKS",
		"QUESADA", "DC"}, Dining},
}

// Categorize maps a raw terminal string to its spending category. The
// match is case-insensitive and total: anything no rule claims is Other.
func Categorize(terminal string) Category {
	upper := strings.ToUpper(terminal)
	for _, rule := range categoryRules {
		for _, token := range rule.tokens {
			if strings.Contains(upper, token) {
				return rule.category
			}
		}
	}
	return Other
}

var (
	posPrefixRe      = regexp.MustCompile(`(?i)^POS-FS-`)
	trailingDigitsRe = regexp.MustCompile(`-\d+$`)
)

// CleanTerminal derives a display name from a raw terminal string:
// "01481 : POS-FS-UWP MARKET-37" becomes "UWP MARKET". It never fails;
// a degenerate input just yields an empty string.
func CleanTerminal(raw string) string {
	name := raw
	if idx := strings.Index(name, ":"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSpace(name)
	name = posPrefixRe.ReplaceAllString(name, "")
	name = trailingDigitsRe.ReplaceAllString(name, "")
	name = strings.TrimSuffix(name, "-")
	return strings.TrimSpace(name)
}
