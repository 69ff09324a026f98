package menu

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalapi/internal/content/fetch"
	"portalapi/internal/products"
	"portalapi/internal/testutil"
)

type catalogFunc func(ctx context.Context) (products.Catalog, error)

func (f catalogFunc) Load(ctx context.Context) (products.Catalog, error) { return f(ctx) }

func TestBuild(t *testing.T) {
	got := Build(products.Catalog{
		Accounts:     []products.Account{{Title: "Cuenta de Ahorro Clásica", Category: "classic", AccountImage: "https://cdn.test/a.png"}},
		Cards:        []products.Card{{Title: "Tarjeta Débito", Slug: "debito-asomap", CardType: "debit"}},
		Loans:        []products.Loan{{Title: "Préstamo Personal", Slug: "prestamo-personal", LoanType: "personal"}},
		Certificates: []products.Certificate{{Title: "Certificado", Slug: "certificado", CertificateType: "financial"}},
	})

	require.Len(t, got, 4)
	assert.Equal(t, []string{"Cuentas", "Tarjetas", "Préstamos", "Certificados"},
		[]string{got[0].Text, got[1].Text, got[2].Text, got[3].Text})
	assert.Equal(t, "FiCreditCard", got[1].Icon)

	assert.Equal(t, Item{
		Text: "Cuenta de Ahorro Clásica", Href: "/productos/cuenta/cuenta-de-ahorro-clasica",
		Image: "https://cdn.test/a.png", Category: "classic",
	}, got[0].SubItems[0])
	assert.Equal(t, "/productos/tarjeta/debito-asomap", got[1].SubItems[0].Href)
	assert.Equal(t, staticDefaults.Sections.Cards.ItemImage, got[1].SubItems[0].Image, "missing images use the section placeholder")
	assert.Equal(t, "/productos/prestamo/prestamo-personal", got[2].SubItems[0].Href)
	assert.Equal(t, "/productos/certificado/certificado", got[3].SubItems[0].Href)
}

func TestBuild_EmptyCatalogKeepsSections(t *testing.T) {
	got := Build(products.Catalog{})
	require.Len(t, got, 4)
	for _, s := range got {
		assert.NotNil(t, s.SubItems, s.Text)
		assert.Empty(t, s.SubItems, s.Text)
	}
}

func TestService_FallsBackOnFailure(t *testing.T) {
	svc := NewService(catalogFunc(func(context.Context) (products.Catalog, error) {
		return products.Catalog{}, errors.New("boom")
	}))

	got, err := svc.Load(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultMenu(), got); diff != "" {
		t.Errorf("menu (-want +got):\n%s", diff)
	}
}

func TestService_CancelledIsAnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewService(catalogFunc(func(ctx context.Context) (products.Catalog, error) {
		return products.Catalog{}, ctx.Err()
	}))

	_, err := svc.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_FromContentAPI(t *testing.T) {
	empty := testutil.JSON(map[string]any{"count": 0, "next": nil, "results": []any{}})
	api := testutil.NewContentAPI(t, map[string]testutil.Route{
		"/products/accounts/": testutil.JSON(map[string]any{"count": 1, "next": nil, "results": []any{
			map[string]any{"id": 1, "title": "Cuenta Peke", "description": "d", "category": "kids", "is_active": true},
		}}),
		"/products/loans/":        empty,
		"/products/cards/":        empty,
		"/products/certificates/": empty,
	})
	deps := testutil.NewDeps(api.URL)
	svc := NewService(products.NewService(deps.Fetcher, deps.Normalizer))

	got, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got[0].SubItems, 1)
	assert.Equal(t, "/productos/cuenta/cuenta-peke", got[0].SubItems[0].Href)

	api.Set("/products/cards/", testutil.Status(http.StatusBadGateway))
	got, err = svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultMenu(), got, "a failed catalogue serves the bundled menu")
}

func TestService_MockMode(t *testing.T) {
	deps := testutil.NewDeps(testutil.DeadURL(t), fetch.WithMock(true))
	svc := NewService(products.NewService(deps.Fetcher, deps.Normalizer))

	got, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultMenu(), got)
}

func TestDefaultMenu_IsACopy(t *testing.T) {
	m := DefaultMenu()
	require.NotEmpty(t, m[0].SubItems)
	m[0].SubItems[0].Text = "changed"
	assert.NotEqual(t, "changed", DefaultMenu()[0].SubItems[0].Text)
}
