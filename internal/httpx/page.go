package httpx

import (
	"context"
	"errors"
	"net/http"

	"portalapi/internal/content/fetch"
	"portalapi/internal/page"
)

// ServePage runs load as a page session bound to the request and writes the
// settled view. The session is unmounted when the request ends, so a load
// that outlives its client is discarded.
func ServePage[T any](w http.ResponseWriter, r *http.Request, load page.Loader[T]) {
	sess := page.NewSession(load)
	if err := sess.Mount(r.Context()); err != nil {
		LoadError(w, r, err)
		return
	}
	defer sess.Unmount()

	v := sess.Wait(r.Context())
	if r.Context().Err() != nil {
		return
	}
	switch v.State {
	case page.StateReady:
		JSONSuccess(w, r, v.Data, map[string]any{"state": page.StateReady})
	case page.StateError:
		LoadError(w, r, v.Err)
	}
}

// LoadError writes a terminal load failure with a retry link pointing at the
// same request.
func LoadError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := classifyLoadError(err)
	writeJSON(w, status, ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: loadErrorDetails(err),
			Retry:   r.URL.RequestURI(),
		},
		Meta: buildMeta(r, map[string]any{"state": page.StateError}),
	})
}

func classifyLoadError(err error) (int, string, string) {
	var (
		fe *fetch.Error
		pe *page.PanicError
	)
	switch {
	case errors.As(err, &pe):
		return http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred"
	case errors.Is(err, page.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "content not found"
	case errors.As(err, &fe) && fe.HTTPStatus == http.StatusNotFound:
		return http.StatusNotFound, "NOT_FOUND", "content not found"
	case errors.As(err, &fe) && fe.Status == fetch.StatusNetworkFailure,
		errors.Is(err, fetch.ErrNoStaticDefault),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "CONTENT_UNAVAILABLE", "content service is unreachable"
	}
	return http.StatusBadGateway, "CONTENT_ERROR", "content service returned an error"
}

func loadErrorDetails(err error) []ErrorDetail {
	var fe *fetch.Error
	if !errors.As(err, &fe) {
		return nil
	}
	return []ErrorDetail{{Field: fe.Key, Message: fe.Status.String()}}
}
