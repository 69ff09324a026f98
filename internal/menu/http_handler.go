package menu

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

// Menu handles GET /layout/menu
func (h *HTTPHandler) Menu(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.Load)
}
