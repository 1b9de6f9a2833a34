package core

import (
	"sort"
	"strings"
	"time"
)

// Terminals whose spend counts toward the coffee tax.
var coffeeTokens = []string{"STARBUCKS", "TH-", "TH ", "WILLIAMS"}

type (
	// CategoryTotal is one row of the per-category breakdown.
	CategoryTotal struct {
		Category Category `json:"category"`
		Total    float64  `json:"total"`
	}

	// DailyTotal is the spend on one calendar day. Label is the short
	// display form ("Feb 3"); Date keeps the sortable ISO day.
	DailyTotal struct {
		Date  string  `json:"date"`
		Label string  `json:"label"`
		Total float64 `json:"total"`
	}

	// PartitionStats describes one half of the weekday/weekend split.
	// Avg divides the partition total by its count of distinct active
	// days, not by calendar span.
	PartitionStats struct {
		Total      float64 `json:"total"`
		Avg        float64 `json:"avg"`
		ActiveDays int     `json:"activeDays"`
	}

	// BucketTotal is the spend inside one time-of-day bucket.
	BucketTotal struct {
		Bucket TimeBucket `json:"bucket"`
		Total  float64    `json:"total"`
	}

	// LocationTotal is the spend at one cleaned terminal name.
	LocationTotal struct {
		Name  string  `json:"name"`
		Total float64 `json:"total"`
	}

	// Forecast projects when the current balance runs out at the current
	// burn rate. It is only produced when both inputs are positive.
	Forecast struct {
		Balance     float64   `json:"balance"`
		DaysToZero  float64   `json:"daysToZero"`
		RunoutDate  time.Time `json:"runoutDate"`
		SemesterEnd time.Time `json:"semesterEnd"`
		Urgent      bool      `json:"urgent"`
	}

	// Summary holds every derived metric. It is recomputed wholesale from
	// the canonical transaction list on each ingestion, never updated
	// incrementally.
	Summary struct {
		TotalSpent         float64         `json:"totalSpent"`
		PurchaseCount      int             `json:"purchaseCount"`
		DepositCount       int             `json:"depositCount"`
		ElapsedDays        int             `json:"elapsedDays"`
		DailyBurnRate      float64         `json:"dailyBurnRate"`
		CoffeeTax          float64         `json:"coffeeTax"`
		LateNightDiningTax float64         `json:"lateNightDiningTax"`
		CategoryTotals     []CategoryTotal `json:"categoryTotals"`
		DailySpend         []DailyTotal    `json:"dailySpend"`
		Weekday            PartitionStats  `json:"weekday"`
		Weekend            PartitionStats  `json:"weekend"`
		TimeOfDay          []BucketTotal   `json:"timeOfDay"`
		TopLocations       []LocationTotal `json:"topLocations"`
		Forecast           *Forecast       `json:"forecast,omitempty"`
		Persona            Persona         `json:"persona"`
	}
)

// Summarize derives the full metric set from a canonical transaction list.
// It is a pure function of its arguments: the same list, clock, and
// balance always produce the same Summary. All sums run in list order so
// floating-point results stay bit-identical between runs. Deposits are
// excluded from every expense figure but counted for the listing stats.
func Summarize(txns []Transaction, now time.Time, balance float64) Summary {
	purchases := make([]Transaction, 0, len(txns))
	deposits := 0
	for _, t := range txns {
		if t.IsDeposit {
			deposits++
			continue
		}
		purchases = append(purchases, t)
	}

	s := Summary{
		PurchaseCount: len(purchases),
		DepositCount:  deposits,
		ElapsedDays:   elapsedDays(purchases),
	}

	categoryTotals := make(map[Category]float64)
	dailyTotals := make(map[string]float64)
	bucketTotals := make(map[TimeBucket]float64)
	locationTotals := make(map[string]float64)
	weekdayDays := make(map[string]struct{})
	weekendDays := make(map[string]struct{})

	for _, t := range purchases {
		s.TotalSpent += t.Amount
		categoryTotals[t.Category] += t.Amount

		day := t.Day()
		dailyTotals[day] += t.Amount

		bucket := t.Bucket()
		bucketTotals[bucket] += t.Amount
		if bucket == LateNight && t.Category == Dining {
			s.LateNightDiningTax += t.Amount
		}

		upper := strings.ToUpper(t.Terminal)
		for _, token := range coffeeTokens {
			if strings.Contains(upper, token) {
				s.CoffeeTax += t.Amount
				break
			}
		}

		// A degenerate terminal cleans to the empty name; it still gets a
		// group so its spend stays visible in the breakdown.
		locationTotals[CleanTerminal(t.Terminal)] += t.Amount

		if isWeekend(day) {
			s.Weekend.Total += t.Amount
			weekendDays[day] = struct{}{}
		} else {
			s.Weekday.Total += t.Amount
			weekdayDays[day] = struct{}{}
		}
	}

	if s.ElapsedDays > 0 {
		s.DailyBurnRate = s.TotalSpent / float64(s.ElapsedDays)
	}

	s.CategoryTotals = sortedCategoryTotals(categoryTotals)
	s.DailySpend = sortedDailyTotals(dailyTotals)
	s.TimeOfDay = bucketRows(bucketTotals)
	s.TopLocations = topLocations(locationTotals, 5)

	s.Weekday.ActiveDays = len(weekdayDays)
	s.Weekend.ActiveDays = len(weekendDays)
	if s.Weekday.ActiveDays > 0 {
		s.Weekday.Avg = s.Weekday.Total / float64(s.Weekday.ActiveDays)
	}
	if s.Weekend.ActiveDays > 0 {
		s.Weekend.Avg = s.Weekend.Total / float64(s.Weekend.ActiveDays)
	}

	s.Forecast = forecast(balance, s.DailyBurnRate, now)
	s.Persona = ClassifyPersona(s)

	return s
}

// elapsedDays is the calendar span between the first and last purchase
// day, not the count of days that saw activity: a ten-day stretch with
// three active days still divides by ten. Minimum 1, so the burn rate
// never divides by zero.
func elapsedDays(purchases []Transaction) int {
	if len(purchases) == 0 {
		return 1
	}
	minDay, maxDay := purchases[0].Day(), purchases[0].Day()
	for _, t := range purchases[1:] {
		day := t.Day()
		if day < minDay {
			minDay = day
		}
		if day > maxDay {
			maxDay = day
		}
	}

	first, err1 := time.Parse("2006-01-02", minDay)
	last, err2 := time.Parse("2006-01-02", maxDay)
	if err1 != nil || err2 != nil {
		return 1
	}

	days := int(last.Sub(first).Hours()/24 + 0.5)
	if days < 1 {
		return 1
	}
	return days
}

// isWeekend reports whether an ISO day falls on Saturday or Sunday, using
// naive Y-M-D calendar interpretation with no timezone adjustment.
func isWeekend(day string) bool {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		return false
	}
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func sortedCategoryTotals(totals map[Category]float64) []CategoryTotal {
	rows := make([]CategoryTotal, 0, len(totals))
	for _, c := range Categories() {
		if total, ok := totals[c]; ok {
			rows = append(rows, CategoryTotal{Category: c, Total: total})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})
	return rows
}

func sortedDailyTotals(totals map[string]float64) []DailyTotal {
	rows := make([]DailyTotal, 0, len(totals))
	for day, total := range totals {
		rows = append(rows, DailyTotal{Date: day, Label: dayLabel(day), Total: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})
	return rows
}

// dayLabel formats an ISO day as its short display form ("Feb 3"). An
// unparsable day falls back to the raw string.
func dayLabel(day string) string {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day
	}
	return d.Format("Jan 2")
}

// bucketRows returns all four buckets in fixed chronological order,
// zero-filled: the bucket set is closed, unlike the category breakdown.
func bucketRows(totals map[TimeBucket]float64) []BucketTotal {
	rows := make([]BucketTotal, 0, 4)
	for _, b := range TimeBuckets() {
		rows = append(rows, BucketTotal{Bucket: b, Total: totals[b]})
	}
	return rows
}

func topLocations(totals map[string]float64, n int) []LocationTotal {
	rows := make([]LocationTotal, 0, len(totals))
	for name, total := range totals {
		rows = append(rows, LocationTotal{Name: name, Total: total})
	}
	// Name ascending breaks total ties so the output is deterministic.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Name < rows[j].Name
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// forecast projects the runway from the current balance and burn rate.
// Either input being non-positive means no forecast at all, not a zeroed
// one. The semester-end reference is April 30 through March, December 15
// for the rest of the year.
func forecast(balance, burnRate float64, now time.Time) *Forecast {
	if balance <= 0 || burnRate <= 0 {
		return nil
	}

	daysToZero := balance / burnRate
	runout := now.Add(time.Duration(daysToZero * 24 * float64(time.Hour)))

	semesterEnd := time.Date(now.Year(), time.December, 15, 0, 0, 0, 0, now.Location())
	if now.Month() <= time.March {
		semesterEnd = time.Date(now.Year(), time.April, 30, 0, 0, 0, 0, now.Location())
	}

	return &Forecast{
		Balance:     balance,
		DaysToZero:  daysToZero,
		RunoutDate:  runout,
		SemesterEnd: semesterEnd,
		Urgent:      runout.Before(semesterEnd),
	}
}
