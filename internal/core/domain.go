package core

import (
	"errors"
	"strings"
)

const (
	Groceries Category = "Groceries"
	Laundry   Category = "Laundry"
	Academic  Category = "Academic"
	Dining    Category = "Dining"
	Other     Category = "Other"
)

const (
	Morning   TimeBucket = "Morning"
	Lunch     TimeBucket = "Lunch"
	Dinner    TimeBucket = "Dinner"
	LateNight TimeBucket = "Late Night"
)

type (
	// Category is the closed set of spending categories a terminal maps to.
	Category string

	// TimeBucket is the closed set of time-of-day spending buckets.
	TimeBucket string

	// RawTransaction is one record as delivered by the external scraper.
	// Nothing about it is trusted: fields may be missing, the amount may be
	// a JSON number or a string with a currency symbol, the date may be
	// garbage. IsDeposit and Category are only present on records that
	// round-tripped through persistence.
	RawTransaction struct {
		Date      string    `json:"date"`
		Terminal  string    `json:"terminal"`
		Amount    RawAmount `json:"amount"`
		IsDeposit *bool     `json:"isDeposit,omitempty"`
		Category  string    `json:"category,omitempty"`
	}

	// Transaction is the canonical, validated record the whole engine works
	// on. Date stays a "YYYY-MM-DD HH:MM:SS" string: it sorts and groups
	// lexicographically, and is only parsed for day arithmetic. Amount is
	// always non-negative; direction lives in IsDeposit alone.
	Transaction struct {
		Date      string   `json:"date"`
		Terminal  string   `json:"terminal"`
		Amount    float64  `json:"amount"`
		IsDeposit bool     `json:"isDeposit"`
		Category  Category `json:"category"`
	}
)

var (
	ErrMalformedBatch   = errors.New("payload is not a list of transaction records")
	ErrUnparsableAmount = errors.New("amount does not parse to a finite number")
	ErrMissingTerminal  = errors.New("missing terminal")
	ErrMissingDate      = errors.New("missing date")
)

// Categories lists the closed category set in display order.
func Categories() []Category {
	return []Category{Groceries, Laundry, Academic, Dining, Other}
}

// IsValid reports whether c is one of the five known categories.
func (c Category) IsValid() bool {
	switch c {
	case Groceries, Laundry, Academic, Dining, Other:
		return true
	default:
		return false
	}
}

// TimeBuckets lists the four buckets in chronological display order.
func TimeBuckets() []TimeBucket {
	return []TimeBucket{Morning, Lunch, Dinner, LateNight}
}

// BucketForHour maps an hour of day onto its bucket. The boundaries are
// closed-open: hour 11 is Lunch, 16 is Dinner, 21 is Late Night.
func BucketForHour(hour int) TimeBucket {
	switch {
	case hour >= 5 && hour < 11:
		return Morning
	case hour >= 11 && hour < 16:
		return Lunch
	case hour >= 16 && hour < 21:
		return Dinner
	default:
		return LateNight
	}
}

// Day returns the "YYYY-MM-DD" portion of the canonical date.
func (t Transaction) Day() string {
	if len(t.Date) < 10 {
		return t.Date
	}
	return t.Date[:10]
}

// Hour returns the hour component of the canonical date, or -1 when the
// time portion is absent or malformed.
func (t Transaction) Hour() int {
	// "YYYY-MM-DD HH:MM:SS" -> chars 11-12
	if len(t.Date) < 13 {
		return -1
	}
	h := t.Date[11:13]
	if h[0] < '0' || h[0] > '9' || h[1] < '0' || h[1] > '9' {
		return -1
	}
	hour := int(h[0]-'0')*10 + int(h[1]-'0')
	if hour > 23 {
		return -1
	}
	return hour
}

// Bucket returns the time-of-day bucket for this transaction. A record
// without a parsable hour lands in Late Night, the catch-all bucket.
func (t Transaction) Bucket() TimeBucket {
	return BucketForHour(t.Hour())
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Terminal) == "" {
		return ErrMissingTerminal
	}
	if strings.TrimSpace(t.Date) == "" {
		return ErrMissingDate
	}
	if t.Amount < 0 {
		return ErrUnparsableAmount
	}
	if !t.Category.IsValid() {
		return errors.New("unknown category: " + string(t.Category))
	}
	return nil
}
