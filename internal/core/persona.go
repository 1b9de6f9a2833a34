package core

// Persona is a single descriptive label derived from aggregate spending.
type Persona string

const (
	MidnightSnacker  Persona = "Midnight Snacker"
	CaffeineAddict   Persona = "Caffeine Addict"
	LateNightGourmet Persona = "Late-Night Gourmet"
	CampusFoodie     Persona = "Campus Foodie"
	SmartShopper     Persona = "Smart Shopper"
	Scholar          Persona = "Scholar"
	BudgetMaster     Persona = "Budget Master"
	CampusExplorer   Persona = "Campus Explorer"
)

// personaRules is evaluated top to bottom; the first predicate that fires
// wins, so the order is part of the contract. A late-night fraction over
// 0.25 labels Midnight Snacker even when the coffee rule would also match.
var personaRules = []struct {
	matches func(Summary) bool
	persona Persona
}{
	{func(s Summary) bool { return s.fraction(s.bucketTotal(LateNight)) > 0.25 }, MidnightSnacker},
	{func(s Summary) bool { return s.CoffeeTax > 80 || s.fraction(s.CoffeeTax) > 0.15 }, CaffeineAddict},
	{func(s Summary) bool { return s.LateNightDiningTax > 40 }, LateNightGourmet},
	{func(s Summary) bool { return s.fraction(s.categoryTotal(Dining)) > 0.55 }, CampusFoodie},
	{func(s Summary) bool { return s.fraction(s.categoryTotal(Groceries)) > 0.45 }, SmartShopper},
	{func(s Summary) bool { return s.categoryTotal(Academic) > 25 }, Scholar},
	{func(s Summary) bool { return s.DailyBurnRate < 8 }, BudgetMaster},
}

// ClassifyPersona picks exactly one label for the summary. With zero total
// spend every fraction is treated as 0, leaving only the fixed-threshold
// rules and the default reachable.
func ClassifyPersona(s Summary) Persona {
	for _, rule := range personaRules {
		if rule.matches(s) {
			return rule.persona
		}
	}
	return CampusExplorer
}

// fraction divides amount by total spend, guarding the zero denominator.
func (s Summary) fraction(amount float64) float64 {
	if s.TotalSpent <= 0 {
		return 0
	}
	return amount / s.TotalSpent
}

func (s Summary) categoryTotal(c Category) float64 {
	for _, row := range s.CategoryTotals {
		if row.Category == c {
			return row.Total
		}
	}
	return 0
}

func (s Summary) bucketTotal(b TimeBucket) float64 {
	for _, row := range s.TimeOfDay {
		if row.Bucket == b {
			return row.Total
		}
	}
	return 0
}
