package drift

import (
	"net/http"
	"strconv"

	"portalapi/internal/httpx"
)

type HTTPHandler struct {
	tracker *Tracker
	store   Store
	secret  string
}

// NewHTTPHandler serves the drift report. store may be nil when no database
// is configured.
func NewHTTPHandler(tracker *Tracker, store Store, secret string) *HTTPHandler {
	return &HTTPHandler{tracker: tracker, store: store, secret: secret}
}

func (h *HTTPHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if h.secret != "" && r.Header.Get("X-Internal-Secret") != h.secret {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid internal secret", nil)
		return false
	}
	return true
}

// Report handles GET /internal/drift
// Query: source=memory (default) or source=store, limit for the store.
func (h *HTTPHandler) Report(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	if r.URL.Query().Get("source") != "store" {
		gaps := h.tracker.Snapshot()
		httpx.JSONSuccess(w, r, gaps, map[string]any{"source": "memory", "total": len(gaps)})
		return
	}

	if h.store == nil {
		httpx.JSONError(w, r, http.StatusServiceUnavailable, "STORE_DISABLED", "drift store is not configured", nil)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	gaps, err := h.store.List(r.Context(), limit)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, r, gaps, map[string]any{"source": "store", "total": len(gaps)})
}

// Flush handles POST /internal/drift/flush
func (h *HTTPHandler) Flush(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	if h.store == nil {
		httpx.JSONError(w, r, http.StatusServiceUnavailable, "STORE_DISABLED", "drift store is not configured", nil)
		return
	}
	n, err := h.tracker.Flush(r.Context(), h.store)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "FLUSH_FAILED", err.Error(), nil)
		return
	}
	httpx.JSONSuccess(w, r, map[string]int{"flushed": n}, nil)
}
