package home

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

// Page handles GET /pages/home
func (h *HTTPHandler) Page(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.Load)
}
