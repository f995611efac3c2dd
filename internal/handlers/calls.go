package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"openrouter-chat/internal/contextutil"
	"openrouter-chat/internal/storage"
)

// defaultCallListLimit bounds the audit listing when no limit is given.
const defaultCallListLimit = 50

// CallsHandler serves the recent call audit records.
type CallsHandler struct {
	calls storage.CallStore
}

// NewCallsHandler creates a new CallsHandler.
func NewCallsHandler(calls storage.CallStore) *CallsHandler {
	return &CallsHandler{calls: calls}
}

// CallsResponse represents the call listing payload.
type CallsResponse struct {
	Calls []storage.CallRecord `json:"calls"`
}

// ServeHTTP handles HTTP requests for the call audit listing. An optional
// ?limit= query parameter caps the number of records returned.
func (h *CallsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := defaultCallListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			logger.WarnContext(ctx, "invalid limit parameter", "limit", raw)
			writeError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	records, err := h.calls.ListRecent(ctx, limit)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list call records", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list calls")
		return
	}

	resp := CallsResponse{Calls: records}
	if resp.Calls == nil {
		resp.Calls = []storage.CallRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode calls response", "error", err)
	}
}
