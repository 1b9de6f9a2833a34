package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"watcard/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

// handleReady performs readiness check with dependency verification
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	if s.analytics == nil {
		checks["analytics"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else if _, err := s.analytics.Transactions(r.Context()); err != nil {
		checks["analytics"] = "failed: " + err.Error()
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["analytics"] = "ok"
	}

	checks["cache"] = map[string]interface{}{
		"summary_entries": s.summaryCache.Size(),
		"list_entries":    s.listCache.Size(),
		"status":          "ok",
	}

	checks["rate_limiter"] = map[string]interface{}{
		"active_clients": s.rateLimiter.activeClients(),
		"status":         "ok",
	}

	writeJSON(w, httpStatus, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleTransactions dispatches /api/transactions by method: POST ingests a
// statement batch, GET lists the stored history, DELETE wipes it.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleIngest(w, r)
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodDelete:
		s.handleClear(w, r)
	default:
		w.Header().Set("Allow", "POST, GET, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	raws, err := ParseBatchBody(r)
	if err != nil {
		slog.WarnContext(r.Context(), "Malformed transaction batch", "error", err)
		writeJSONError(w, http.StatusBadRequest, "request body must be a JSON list of transactions")
		return
	}

	result, err := s.analytics.IngestBatch(r.Context(), raws)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to ingest batch",
			"error", err,
			"submitted", len(raws))
		writeJSONError(w, http.StatusInternalServerError, "error storing batch")
		return
	}

	s.trackIngest()
	s.invalidateDerived()

	slog.InfoContext(r.Context(), "Batch ingested",
		log.FieldOperation, log.OpIngest,
		log.FieldBatchID, result.BatchID,
		log.FieldCount, result.Accepted,
		log.FieldRejected, result.Rejected)

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	const key = "all"

	if txns, found := s.listCache.Get(key); found {
		slog.DebugContext(r.Context(), "Transaction list cache hit", "count", len(txns))
		writeJSON(w, http.StatusOK, txns)
		return
	}

	txns, err := s.analytics.Transactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "error reading transactions")
		return
	}

	s.listCache.Set(key, txns)
	writeJSON(w, http.StatusOK, txns)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.analytics.Clear(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to clear transactions", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "error clearing transactions")
		return
	}

	s.invalidateDerived()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// handleSummary recomputes (or serves the cached) metric summary. An optional
// balance query parameter overrides the stored balance for forecasting.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	balance, key, err := ParseBalanceParam(r.URL.Query().Get("balance"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "balance must be a non-negative number")
		return
	}

	if summary, found := s.summaryCache.Get(key); found {
		slog.DebugContext(r.Context(), "Summary cache hit", "key", key)
		writeJSON(w, http.StatusOK, summary)
		return
	}

	summary, err := s.analytics.Summary(r.Context(), balance)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute summary", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "error computing summary")
		return
	}

	s.summaryCache.Set(key, summary)
	writeJSON(w, http.StatusOK, summary)
}

// handleBalance stores the current card balance (PUT or POST).
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		w.Header().Set("Allow", "PUT, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Balance *float64 `json:"balance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Balance == nil {
		writeJSONError(w, http.StatusBadRequest, "request body must be {\"balance\": <number>}")
		return
	}

	if err := s.analytics.SetBalance(r.Context(), *body.Balance); err != nil {
		slog.WarnContext(r.Context(), "Rejected balance update", "error", err, "balance", *body.Balance)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.invalidateDerived()

	slog.InfoContext(r.Context(), "Balance updated", log.FieldBalance, *body.Balance)
	writeJSON(w, http.StatusOK, map[string]float64{"balance": *body.Balance})
}

// IngestedCount returns how many batches this process has accepted.
func (s *Server) IngestedCount() int64 {
	return atomic.LoadInt64(&s.ingested)
}
