package support

import (
	"context"
	"net/http"

	"portalapi/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// ServiceRates handles GET /pages/support/service-rates
func (h *HTTPHandler) ServiceRates(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.ServiceRates)
}

// ServiceCategories handles GET /pages/support/service-categories
func (h *HTTPHandler) ServiceCategories(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.ServiceCategories)
}

// RightsAndDuties handles GET /pages/support/rights-and-duties
func (h *HTTPHandler) RightsAndDuties(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.RightsAndDuties)
}

// AbandonedAccounts handles GET /pages/support/abandoned-accounts
func (h *HTTPHandler) AbandonedAccounts(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.AbandonedAccounts)
}

// AccountContracts handles GET /pages/support/account-contracts
func (h *HTTPHandler) AccountContracts(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.AccountContracts)
}

// FormPage handles GET /pages/support/forms/{form}
func (h *HTTPHandler) FormPage(w http.ResponseWriter, r *http.Request) {
	form := Form(r.PathValue("form"))
	httpx.ServePage(w, r, func(ctx context.Context) (FormPage, error) {
		return h.svc.FormPage(ctx, form)
	})
}

// Services handles GET /pages/services
func (h *HTTPHandler) Services(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.ServicesPage)
}
