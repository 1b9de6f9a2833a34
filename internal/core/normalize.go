package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawAmount accepts the two shapes the scraper produces: a JSON number or
// a string such as "$12.50" or "-$3.25". It keeps the original text so the
// normalizer can see the minus sign before any parsing happens.
type RawAmount string

func (a *RawAmount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = RawAmount(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*a = RawAmount(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	// Any other shape is kept verbatim so the row is rejected during
	// normalization instead of failing the whole batch decode.
	*a = RawAmount(data)
	return nil
}

func (a RawAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}

// parseAmount turns a raw amount into (absolute value, isDeposit). The
// direction comes from the presence of a minus sign anywhere in the source
// text, before currency symbols are stripped; the returned value is always
// the absolute value. Anything that does not parse to a finite number is
// an ErrUnparsableAmount.
func parseAmount(raw RawAmount) (float64, bool, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return 0, false, ErrUnparsableAmount
	}

	isDeposit := !strings.Contains(s, "-")

	s = strings.TrimSpace(strings.ReplaceAll(s, "$", ""))

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, ErrUnparsableAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, ErrUnparsableAmount
	}
	return math.Abs(v), isDeposit, nil
}

// Normalize validates and coerces one raw record into a canonical
// transaction. The category is assigned here, exactly once; records that
// already carry a valid category (a persisted canonical record fed back
// through ingestion) keep it, and likewise an explicit isDeposit flag wins
// over the minus-sign inference, whose evidence is gone after a round
// trip. Date and terminal pass through verbatim apart from a trim.
func Normalize(raw RawTransaction) (Transaction, error) {
	amount, isDeposit, err := parseAmount(raw.Amount)
	if err != nil {
		return Transaction{}, err
	}
	if raw.IsDeposit != nil {
		isDeposit = *raw.IsDeposit
	}

	category := Category(raw.Category)
	if !category.IsValid() {
		category = Categorize(raw.Terminal)
	}

	return Transaction{
		Date:      strings.TrimSpace(raw.Date),
		Terminal:  strings.TrimSpace(raw.Terminal),
		Amount:    amount,
		IsDeposit: isDeposit,
		Category:  category,
	}, nil
}

// NormalizeBatch normalizes a whole scraped batch. Records whose amount
// cannot be parsed are dropped silently; the caller gets the count of
// rejections alongside the canonical list. Input order is preserved.
func NormalizeBatch(raws []RawTransaction) ([]Transaction, int) {
	txns := make([]Transaction, 0, len(raws))
	rejected := 0
	for _, raw := range raws {
		txn, err := Normalize(raw)
		if err != nil {
			rejected++
			continue
		}
		txns = append(txns, txn)
	}
	return txns, rejected
}
