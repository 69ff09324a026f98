package locations

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

// Page handles GET /pages/locations. Optional query: type=branch|atm, and
// lat & lng to order by distance.
func (h *HTTPHandler) Page(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind := Kind(q.Get("type"))
	if kind != "" && kind != Branch && kind != ATM {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid location type", []httpx.ErrorDetail{
			{Field: "type", Message: "must be branch or atm"},
		})
		return
	}

	load := h.svc.Load
	if q.Has("lat") || q.Has("lng") {
		lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
		lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
		if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid coordinates", []httpx.ErrorDetail{
				{Field: "lat,lng", Message: "both must be valid decimal degrees"},
			})
			return
		}
		load = func(ctx context.Context) (Directory, error) { return h.svc.Nearby(ctx, lat, lng) }
	}

	httpx.ServePage(w, r, func(ctx context.Context) (Directory, error) {
		d, err := load(ctx)
		if err != nil {
			return Directory{}, err
		}
		return d.Filter(kind), nil
	})
}

// Location handles GET /locations/{id}
func (h *HTTPHandler) Location(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	httpx.ServePage(w, r, func(ctx context.Context) (Location, error) {
		return h.svc.ByID(ctx, id)
	})
}
