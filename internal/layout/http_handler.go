package layout

import (
	"context"
	"net/http"
	"strconv"

	"portalapi/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Header handles GET /layout/header
func (h *HTTPHandler) Header(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.LoadHeader)
}

// CurrentHeader handles GET /layout/header/current. It serves the shared
// header state without touching the backend.
func (h *HTTPHandler) CurrentHeader(w http.ResponseWriter, r *http.Request) {
	hdr, version := h.svc.Store().Snapshot()
	httpx.JSONSuccess(w, r, hdr, map[string]any{"version": version})
}

// ExchangeRate handles GET /layout/exchange-rate
func (h *HTTPHandler) ExchangeRate(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.LoadExchangeRate)
}

// Footer handles GET /layout/footer
func (h *HTTPHandler) Footer(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.LoadFooter)
}

// Contacts handles GET /layout/contacts
func (h *HTTPHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.LoadContacts)
}

// Contact handles GET /layout/contacts/{id}
func (h *HTTPHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.channel(w, r, h.svc.ContactByID)
}

// SocialNetworks handles GET /layout/social-networks
func (h *HTTPHandler) SocialNetworks(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.LoadSocialNetworks)
}

// SocialNetwork handles GET /layout/social-networks/{id}
func (h *HTTPHandler) SocialNetwork(w http.ResponseWriter, r *http.Request) {
	h.channel(w, r, h.svc.SocialNetworkByID)
}

func (h *HTTPHandler) channel(w http.ResponseWriter, r *http.Request, byID func(context.Context, int) (Channel, error)) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid id", []httpx.ErrorDetail{
			{Field: "id", Message: "must be a positive integer"},
		})
		return
	}
	httpx.ServePage(w, r, func(ctx context.Context) (Channel, error) {
		return byID(ctx, id)
	})
}
