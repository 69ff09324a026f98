package about

import (
	"net/http"

	"portalapi/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Page handles GET /pages/about
func (h *HTTPHandler) Page(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.Load)
}

// CommunitySupport handles GET /pages/about/community-support
func (h *HTTPHandler) CommunitySupport(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.LoadCommunitySupport)
}

// FinancialStatements handles GET /pages/about/financial-statements
func (h *HTTPHandler) FinancialStatements(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.LoadFinancialStatements)
}

// Memories handles GET /pages/about/memories
func (h *HTTPHandler) Memories(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.LoadMemories)
}

// Policies handles GET /pages/about/policies
func (h *HTTPHandler) Policies(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.LoadPolicies)
}
