package products

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

// Page handles GET /pages/products
func (h *HTTPHandler) Page(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.Load)
}

// Account handles GET /products/accounts/{id}
func (h *HTTPHandler) Account(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid account id", []httpx.ErrorDetail{
			{Field: "id", Message: "must be a positive integer"},
		})
		return
	}
	httpx.ServePage(w, r, func(ctx context.Context) (Account, error) {
		return h.svc.AccountByID(ctx, id)
	})
}

// Loans handles GET /products/loans, optionally filtered with ?type=
func (h *HTTPHandler) Loans(w http.ResponseWriter, r *http.Request) {
	if t := r.URL.Query().Get("type"); t != "" {
		httpx.ServePage(w, r, func(ctx context.Context) ([]Loan, error) {
			return h.svc.LoansByType(ctx, t)
		})
		return
	}
	httpx.ServePage(w, r, h.svc.Loans)
}

// Loan handles GET /products/loans/{slug}
func (h *HTTPHandler) Loan(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	httpx.ServePage(w, r, func(ctx context.Context) (Loan, error) {
		return h.svc.LoanBySlug(ctx, slug)
	})
}

// Card handles GET /products/cards/{slug}
func (h *HTTPHandler) Card(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	httpx.ServePage(w, r, func(ctx context.Context) (Card, error) {
		return h.svc.CardBySlug(ctx, slug)
	})
}

// Certificate handles GET /products/certificates/{slug}
func (h *HTTPHandler) Certificate(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	httpx.ServePage(w, r, func(ctx context.Context) (Certificate, error) {
		return h.svc.CertificateBySlug(ctx, slug)
	})
}
