package news

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

// Page handles GET /pages/news
func (h *HTTPHandler) Page(w http.ResponseWriter, r *http.Request) {
	httpx.ServePage(w, r, h.svc.Load)
}

// Article handles GET /news/{id}
func (h *HTTPHandler) Article(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid article id", []httpx.ErrorDetail{
			{Field: "id", Message: "must be a positive integer"},
		})
		return
	}
	httpx.ServePage(w, r, func(ctx context.Context) (Article, error) {
		return h.svc.ArticleByID(ctx, id)
	})
}

// Promotion handles GET /news/promotions/{slug}
func (h *HTTPHandler) Promotion(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	httpx.ServePage(w, r, func(ctx context.Context) (Promotion, error) {
		return h.svc.PromotionBySlug(ctx, slug)
	})
}
