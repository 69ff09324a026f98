package layout

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPHandler_HeaderThenCurrent(t *testing.T) {
	svc, _ := newService(t, layoutRoutes())
	h := NewHTTPHandler(svc)

	rec := httptest.NewRecorder()
	h.CurrentHeader(rec, httptest.NewRequest(http.MethodGet, "/layout/header/current", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":0`)

	rec = httptest.NewRecorder()
	h.Header(rec, httptest.NewRequest(http.MethodGet, "/layout/header", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data Header `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Negocios", body.Data.Navigation.Empresarial)

	rec = httptest.NewRecorder()
	h.CurrentHeader(rec, httptest.NewRequest(http.MethodGet, "/layout/header/current", nil))
	assert.Contains(t, rec.Body.String(), `"version":1`)
	assert.Contains(t, rec.Body.String(), `"empresarial":"Negocios"`)
}

func TestHTTPHandler_Footer(t *testing.T) {
	svc, _ := newService(t, layoutRoutes())
	rec := httptest.NewRecorder()
	NewHTTPHandler(svc).Footer(rec, httptest.NewRequest(http.MethodGet, "/layout/footer", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"ASOMAP S.A."`)
}
