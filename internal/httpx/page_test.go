package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"portalapi/internal/content/fetch"
	"portalapi/internal/page"
	"portalapi/internal/platform/contentapi"
)

type heroView struct {
	Title string `json:"title"`
}

func TestServePage_Ready(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/pages/about", nil)
	req = req.WithContext(ContextWithRequestID(req.Context(), "req-1"))
	w := httptest.NewRecorder()

	ServePage(w, req, func(ctx context.Context) (heroView, error) {
		return heroView{Title: "X"}, nil
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"title":"X"},"meta":{"request_id":"req-1","state":"ready"}}`, w.Body.String())
}

func TestServePage_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "backend 500",
			err:    &fetch.Error{Key: "accounts", Status: fetch.StatusHTTPError, HTTPStatus: 500, Err: &contentapi.HTTPError{Status: 500}},
			status: http.StatusBadGateway,
			code:   "CONTENT_ERROR",
		},
		{
			name:   "backend 404 without default",
			err:    &fetch.Error{Key: "hero", Status: fetch.StatusHTTPError, HTTPStatus: 404},
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "unreachable without default",
			err:    fmt.Errorf("about: %w", &fetch.Error{Key: "hero", Status: fetch.StatusNetworkFailure}),
			status: http.StatusServiceUnavailable,
			code:   "CONTENT_UNAVAILABLE",
		},
		{
			name:   "item not found",
			err:    fmt.Errorf("loan %q: %w", "hipotecario", page.ErrNotFound),
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "malformed body",
			err:    &fetch.Error{Key: "hero", Status: fetch.StatusFailed, Err: &contentapi.DecodeError{}},
			status: http.StatusBadGateway,
			code:   "CONTENT_ERROR",
		},
		{
			name:   "mock without default",
			err:    &fetch.Error{Key: "hero", Status: fetch.StatusFailed, Err: fetch.ErrNoStaticDefault},
			status: http.StatusServiceUnavailable,
			code:   "CONTENT_UNAVAILABLE",
		},
		{
			name:   "plain error",
			err:    errors.New("boom"),
			status: http.StatusBadGateway,
			code:   "CONTENT_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/products/loans/hipotecario?x=1", nil)
			w := httptest.NewRecorder()

			ServePage(w, req, func(ctx context.Context) (heroView, error) {
				return heroView{}, tt.err
			})

			require.Equal(t, tt.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, "/products/loans/hipotecario?x=1", body.Error.Retry)
			assert.Equal(t, map[string]any{"state": "error"}, body.Meta)
		})
	}
}

func TestServePage_ClientGone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/pages/home", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	started := make(chan struct{})
	go func() {
		<-started
		cancel()
	}()
	ServePage(w, req, func(ctx context.Context) (heroView, error) {
		close(started)
		<-ctx.Done()
		return heroView{Title: "late"}, nil
	})

	assert.Empty(t, w.Body.String())
}

func TestServePage_LoaderPanicIsContained(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := RecoveryMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServePage(w, r, func(ctx context.Context) (heroView, error) {
			var byKey map[string]int
			byKey["hero"]++
			return heroView{}, nil
		})
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pages/about", nil))
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Empty(t, body.Error.Details)
	assert.Equal(t, "/pages/about", body.Error.Retry)
	assert.Zero(t, logs.FilterMessage("panic recovered").Len(), "the session absorbs the panic")
}
