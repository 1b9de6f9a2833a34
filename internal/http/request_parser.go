// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request
// data: statement batch bodies and balance parameters.

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"watcard/internal/core"
)

// maxBatchBytes caps how large an uploaded statement batch may be.
const maxBatchBytes = 8 << 20

// ParseBatchBody reads the request body and decodes it as a JSON list of raw
// statement rows. Anything that is not a list fails with ErrMalformedBatch;
// malformed rows inside a well-formed list are left for normalization to
// reject individually.
func ParseBatchBody(r *http.Request) ([]core.RawTransaction, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBatchBytes))
	if err != nil {
		return nil, core.ErrMalformedBatch
	}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed[0] != '[' {
		return nil, core.ErrMalformedBatch
	}

	var raws []core.RawTransaction
	if err := json.Unmarshal([]byte(trimmed), &raws); err != nil {
		return nil, core.ErrMalformedBatch
	}

	return raws, nil
}

// ParseBalanceParam parses an optional balance query value. An empty value
// means "use the stored balance" and returns a nil override. The second
// return is the cache key for the resulting summary.
func ParseBalanceParam(raw string) (*float64, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, "stored", nil
	}

	balance, err := strconv.ParseFloat(raw, 64)
	if err != nil || balance < 0 {
		return nil, "", core.ErrUnparsableAmount
	}

	return &balance, "balance:" + strconv.FormatFloat(balance, 'f', -1, 64), nil
}
