package home

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalapi/internal/content/fetch"
	"portalapi/internal/testutil"
)

func homeRoutes() map[string]testutil.Route {
	return map[string]testutil.Route{
		pathSlider: testutil.JSON([]any{
			map[string]any{"id": 2, "image": "/media/s2.jpg", "alt": "Segunda", "order": 2},
			map[string]any{"id": 1, "image": "/media/s1.jpg", "imageTablet": "/media/s1-t.jpg", "alt": "Primera", "order": 1},
		}),
		pathEducation: testutil.JSON(map[string]any{"data": map[string]any{
			"title": "Educación Financiera", "subtitle": "Aprende",
			"educationItems": []any{map[string]any{"image": "media/e1.png", "alt": "Ahorro", "description": "Ahorra"}},
			"footerText":     "Más consejos",
		}}),
		pathProductSection: testutil.JSON(map[string]any{"data": map[string]any{
			"section":    map[string]any{"title": "Productos", "subtitle": "Para ti"},
			"buttonText": "Ver más",
			"products": []any{
				map[string]any{"id": 4, "title": "Cuenta Peke", "description": "Niños", "image": "/media/p.png", "category": "ahorro"},
				map[string]any{"title": "Tarjeta Débito", "description": "Compras", "image": "https://cdn.test/t.png"},
			},
		}}),
		pathDebitCardPromo: testutil.JSON(map[string]any{
			"id": 1, "title": "Tu tarjeta", "highlighted_title": "débito", "description": "Sin costo",
			"primary_button_text": "Solicitar", "image_url": "/media/promo.png", "is_active": true,
		}),
		pathPekeSummary: testutil.JSON(map[string]any{"title": "Cuenta Peke", "description": "d", "is_active": false}),
	}
}

func newService(t *testing.T, routes map[string]testutil.Route) (*Service, *testutil.ContentAPI) {
	t.Helper()
	api := testutil.NewContentAPI(t, routes)
	deps := testutil.NewDeps(api.URL)
	return NewService(deps.Fetcher, deps.Normalizer), api
}

func TestService_Load(t *testing.T) {
	svc, api := newService(t, homeRoutes())

	p, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, p.Slider, 2)
	assert.Equal(t, 1, p.Slider[0].ID)
	assert.Equal(t, api.URL+"/media/s1-t.jpg", p.Slider[0].ImageTablet)
	assert.Equal(t, api.URL+"/media/s1.jpg", p.Slider[0].ImageMobile)
	assert.Equal(t, api.URL+"/media/s2.jpg", p.Slider[1].ImageTablet)

	assert.Equal(t, "Educación Financiera", p.Education.Title)
	assert.Equal(t, []EducationItem{{Image: api.URL + "/media/e1.png", Alt: "Ahorro", Description: "Ahorra"}}, p.Education.Items)

	require.NotNil(t, p.ProductSection)
	assert.Equal(t, "Productos", p.ProductSection.Title)
	assert.Equal(t, "Ver más", p.ProductSection.ButtonText)
	require.Len(t, p.ProductSection.Products, 2)
	assert.Equal(t, "4", p.ProductSection.Products[0].ID)
	assert.Equal(t, "tarjeta-debito", p.ProductSection.Products[1].ID)
	assert.Equal(t, "https://cdn.test/t.png", p.ProductSection.Products[1].Image)

	require.NotNil(t, p.DebitCardPromo)
	assert.Equal(t, "débito", p.DebitCardPromo.HighlightedTitle)
	assert.Equal(t, api.URL+"/media/promo.png", p.DebitCardPromo.ImageURL)

	assert.Nil(t, p.PekeSummary, "inactive summary is hidden")
	assert.Empty(t, p.Unavailable)
}

func TestService_OptionalSections(t *testing.T) {
	routes := homeRoutes()
	routes[pathProductSection] = testutil.Status(http.StatusInternalServerError)
	delete(routes, pathDebitCardPromo)
	svc, _ := newService(t, routes)

	p, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p.ProductSection)
	assert.Nil(t, p.DebitCardPromo)
	assert.Equal(t, []string{"productSection", "debitCardPromo"}, p.Unavailable)
}

func TestService_RequiredSections(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		route  testutil.Route
		key    string
		status fetch.Status
	}{
		{"slider server error", pathSlider, testutil.Status(http.StatusInternalServerError), "slider", fetch.StatusHTTPError},
		{"education missing", pathEducation, testutil.Status(http.StatusNotFound), "educationSection", fetch.StatusHTTPError},
		{"slider unreachable", pathSlider, testutil.Dropped, "slider", fetch.StatusNetworkFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			routes := homeRoutes()
			routes[tc.path] = tc.route
			svc, _ := newService(t, routes)

			_, err := svc.Load(context.Background())
			var fe *fetch.Error
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.key, fe.Key)
			assert.Equal(t, tc.status, fe.Status)
		})
	}
}

func TestService_EmptySliderIsPresent(t *testing.T) {
	routes := homeRoutes()
	routes[pathSlider] = testutil.JSON([]any{})
	svc, _ := newService(t, routes)

	p, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, p.Slider)
	assert.NotNil(t, p.Slider)
}

func TestHTTPHandler_Page(t *testing.T) {
	svc, _ := newService(t, homeRoutes())
	rec := httptest.NewRecorder()
	NewHTTPHandler(svc).Page(rec, httptest.NewRequest(http.MethodGet, "/pages/home", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"educationSection"`)
	assert.NotContains(t, rec.Body.String(), `"pekeAccountSummary"`)
}
