package products

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newMux(t *testing.T) *http.ServeMux {
	t.Helper()
	svc, _ := newService(t, productRoutes())
	h := NewHTTPHandler(svc)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pages/products", h.Page)
	mux.HandleFunc("GET /products/accounts/{id}", h.Account)
	mux.HandleFunc("GET /products/loans", h.Loans)
	mux.HandleFunc("GET /products/loans/{slug}", h.Loan)
	return mux
}

func TestHTTPHandler_Routes(t *testing.T) {
	mux := newMux(t)

	cases := []struct {
		target   string
		status   int
		contains string
	}{
		{"/pages/products", http.StatusOK, `"certificates"`},
		{"/products/accounts/2", http.StatusOK, `"Cuenta Peke"`},
		{"/products/accounts/abc", http.StatusBadRequest, `"BAD_REQUEST"`},
		{"/products/accounts/1", http.StatusNotFound, `"NOT_FOUND"`},
		{"/products/loans?type=personal", http.StatusOK, `"prestamo-personal"`},
		{"/products/loans/prestamo-hipotecario", http.StatusOK, `"hipotecario"`},
		{"/products/loans/nope", http.StatusNotFound, `"retry":"/products/loans/nope"`},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.contains)
		})
	}
}
