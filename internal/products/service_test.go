package products

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalapi/internal/content/fetch"
	"portalapi/internal/icon"
	"portalapi/internal/page"
	"portalapi/internal/testutil"
)

func envelope(next any, results ...any) testutil.Route {
	return testutil.JSON(map[string]any{"count": len(results), "next": next, "previous": nil, "results": results})
}

func productRoutes() map[string]testutil.Route {
	return map[string]testutil.Route{
		pathAccounts: envelope(nil,
			map[string]any{
				"id": 2, "title": "Cuenta Peke", "description": "Para niños", "is_active": true,
				"accountImage": "/media/peke.png", "category": "ahorro",
				"features": []string{"Sin comisiones"}, "requirements": []string{"Acta de nacimiento"},
				"benefits": []any{map[string]any{"icon": "FaGift", "text": "Regalos"}, map[string]any{"icon": "FaUnknown", "text": "Otro"}},
			},
			map[string]any{"id": 1, "title": "Cuenta Vieja", "description": "x", "is_active": false},
		),
		pathLoans: envelope("/products/loans/?page=2",
			map[string]any{
				"id": 3, "title": "Préstamo Hipotecario", "description": "Tu casa", "loan_type": "hipotecario",
				"details": []string{"Hasta 20 años"}, "requirements_title": "Requisitos", "requirements": []string{"Cédula"},
				"is_active": true,
			},
		),
		pathLoans + "?page=2": envelope(nil,
			map[string]any{"id": 1, "title": "Préstamo Personal", "description": "d", "loan_type": "personal", "is_active": true},
			map[string]any{"id": 2, "title": "Préstamo Vehículo", "description": "d", "loan_type": "vehiculo"},
		),
		pathCards: envelope(nil,
			map[string]any{"id": 1, "title": "Tarjeta Débito", "description": "d", "card_type": "debito", "slug": "debito-asomap", "is_active": true},
		),
		pathCertificates: envelope(nil,
			map[string]any{
				"id": 1, "title": "Certificado Financiero", "description": "Invierte", "is_active": true,
				"certificate_type": "plazo_fijo", "cta_apply": "Solicitar", "benefits_title": "Beneficios",
				"benefits": map[string]any{"items": []any{map[string]any{"title": "Tasa fija", "description": "Siempre"}}},
				"rates":    map[string]any{"title": "Tasas", "items": []any{map[string]any{"label": "30 días", "value": "7%"}}},
				"requirements_title": "Requisitos",
				"requirements":       []string{"Cédula", "Depósito mínimo"},
				"depositRates": map[string]any{
					"title": "Tasas de depósito", "validFrom": "2025-01-01",
					"items": []any{map[string]any{"range": "10k-50k", "rate": "7.5%", "term": "1 año"}},
				},
				"faq": map[string]any{"title": "Preguntas", "items": []any{map[string]any{"question": "¿Mínimo?", "answer": "RD$10,000"}}},
			},
		),
		pathAccounts + "2/": testutil.JSON(map[string]any{"id": 2, "title": "Cuenta Peke", "description": "Para niños", "is_active": true}),
		pathAccounts + "1/": testutil.JSON(map[string]any{"id": 1, "title": "Cuenta Vieja", "description": "x", "is_active": false}),
	}
}

func newService(t *testing.T, routes map[string]testutil.Route) (*Service, *testutil.ContentAPI) {
	t.Helper()
	api := testutil.NewContentAPI(t, routes)
	deps := testutil.NewDeps(api.URL)
	return NewService(deps.Fetcher, deps.Normalizer), api
}

func TestService_Load(t *testing.T) {
	svc, api := newService(t, productRoutes())

	c, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, c.Accounts, 1, "inactive accounts are dropped")
	acc := c.Accounts[0]
	assert.Equal(t, 2, acc.ID)
	assert.Equal(t, api.URL+"/media/peke.png", acc.AccountImage)
	assert.Equal(t, []Benefit{{Icon: icon.Gift, Text: "Regalos"}, {Icon: icon.Fallback, Text: "Otro"}}, acc.Benefits)

	require.Len(t, c.Loans, 2, "loan without is_active is dropped")
	assert.Equal(t, 1, c.Loans[0].ID, "collected across pages in id order")
	assert.Equal(t, "prestamo-hipotecario", c.Loans[1].Slug)
	assert.Equal(t, "Requisitos", c.Loans[1].RequirementsTitle)

	require.Len(t, c.Cards, 1)
	assert.Equal(t, "debito-asomap", c.Cards[0].Slug)
	assert.Equal(t, "debito", c.Cards[0].CardType)

	require.Len(t, c.Certificates, 1)
	cert := c.Certificates[0]
	assert.Equal(t, "certificado-financiero", cert.Slug)
	assert.Equal(t, "Beneficios", cert.Benefits.Title, "falls back to the flat title")
	assert.Equal(t, []Item{{Title: "Tasa fija", Description: "Siempre"}}, cert.Benefits.Items)
	assert.Equal(t, TitledList[Rate]{Title: "Tasas", Items: []Rate{{Label: "30 días", Value: "7%"}}}, cert.Rates)
	assert.Equal(t, TitledList[string]{Title: "Requisitos", Items: []string{"Cédula", "Depósito mínimo"}}, cert.Requirements)
	assert.Equal(t, "2025-01-01", cert.DepositRates.ValidFrom)
	assert.Equal(t, []FAQ{{Question: "¿Mínimo?", Answer: "RD$10,000"}}, cert.FAQ.Items)
}

func TestService_LoadRejectsOnServerError(t *testing.T) {
	routes := productRoutes()
	routes[pathCards] = testutil.Status(http.StatusInternalServerError)
	svc, _ := newService(t, routes)

	_, err := svc.Load(context.Background())
	var fe *fetch.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "cards", fe.Key)
	assert.Equal(t, fetch.StatusHTTPError, fe.Status)
	assert.Equal(t, http.StatusInternalServerError, fe.HTTPStatus)
}

func TestService_RetryReinvokesLoadOnce(t *testing.T) {
	routes := productRoutes()
	routes[pathCards] = testutil.Status(http.StatusInternalServerError)
	svc, api := newService(t, routes)

	sess := page.NewSession(svc.Load)
	require.NoError(t, sess.Mount(context.Background()))
	defer sess.Unmount()

	v := sess.Wait(context.Background())
	require.Equal(t, page.StateError, v.State)
	assert.True(t, v.CanRetry)
	assert.Equal(t, 1, api.Hits(pathCards))

	api.Set(pathCards, productRoutes()[pathCards])
	require.True(t, sess.Retry())
	assert.False(t, sess.Retry(), "a retry already in flight is not repeated")

	v = sess.Wait(context.Background())
	require.Equal(t, page.StateReady, v.State)
	assert.Equal(t, 2, sess.Loads())
	assert.Equal(t, 2, api.Hits(pathCards))
	assert.Len(t, v.Data.Cards, 1)
}

func TestService_AccountByID(t *testing.T) {
	svc, _ := newService(t, productRoutes())

	acc, err := svc.AccountByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Cuenta Peke", acc.Title)

	_, err = svc.AccountByID(context.Background(), 1)
	assert.ErrorIs(t, err, page.ErrNotFound, "inactive")

	_, err = svc.AccountByID(context.Background(), 99)
	assert.ErrorIs(t, err, page.ErrNotFound, "unknown")
}

func TestService_LoanLookups(t *testing.T) {
	svc, _ := newService(t, productRoutes())

	l, err := svc.LoanBySlug(context.Background(), "prestamo-personal")
	require.NoError(t, err)
	assert.Equal(t, 1, l.ID)

	_, err = svc.LoanBySlug(context.Background(), "prestamo-vehiculo")
	assert.ErrorIs(t, err, page.ErrNotFound, "inactive loans are not addressable")

	byType, err := svc.LoansByType(context.Background(), "hipotecario")
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, 3, byType[0].ID)

	none, err := svc.LoansByType(context.Background(), "agricola")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)
}

func TestService_SlugLookups(t *testing.T) {
	svc, _ := newService(t, productRoutes())

	c, err := svc.CardBySlug(context.Background(), "debito-asomap")
	require.NoError(t, err)
	assert.Equal(t, "Tarjeta Débito", c.Title)

	_, err = svc.CertificateBySlug(context.Background(), "certificado-financiero")
	require.NoError(t, err)

	_, err = svc.CardBySlug(context.Background(), "credito")
	assert.ErrorIs(t, err, page.ErrNotFound)
}
