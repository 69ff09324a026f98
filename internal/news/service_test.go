package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalapi/internal/content/fetch"
	"portalapi/internal/page"
	"portalapi/internal/testutil"
)

func newsRoutes() map[string]testutil.Route {
	return map[string]testutil.Route{
		pathNews: testutil.JSON(map[string]any{"count": 1, "next": nil, "results": []any{
			map[string]any{
				"id": 7, "image": "/media/n7.jpg", "title": "Nueva sucursal", "description": "Abrimos en Moca",
				"date": "2025-03-01", "author": "Comunicaciones", "tags": []string{"Sucursales"},
				"full_content": []any{
					map[string]any{"type": "paragraph", "content": "Texto"},
					map[string]any{"type": "list", "content": []string{"a", "b"}},
				},
				"media":         []any{map[string]any{"type": "video", "url": "https://cdn.test/v.mp4"}},
				"related_links": []any{map[string]any{"title": "Mapa", "url": "/locations"}},
			},
		}}),
		pathPromotions: testutil.JSON(map[string]any{"count": 2, "next": nil, "results": []any{
			map[string]any{
				"id": 1, "image": "/media/p1.jpg", "title": "Tasa Cero en Préstamos", "description": "Por tiempo limitado",
				"fecha_inicio": "2025-06-01", "fecha_fin": "2025-06-30", "terms": []string{"Aplican condiciones"}, "is_active": true,
			},
			map[string]any{"id": 2, "image": "/media/p2.jpg", "title": "Vencida", "description": "d", "fecha_inicio": "2024-01-01", "is_active": false},
		}}),
	}
}

func newService(t *testing.T, routes map[string]testutil.Route) (*Service, *testutil.ContentAPI) {
	t.Helper()
	api := testutil.NewContentAPI(t, routes)
	deps := testutil.NewDeps(api.URL)
	return NewService(deps.Fetcher, deps.Normalizer), api
}

func TestService_Load(t *testing.T) {
	svc, api := newService(t, newsRoutes())

	p, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Últimas Noticias", p.News.Banner.Title)
	require.Len(t, p.News.Slides, 1)
	a := p.News.Slides[0]
	assert.Equal(t, api.URL+"/media/n7.jpg", a.Image)
	assert.Equal(t, []Block{{Type: "paragraph", Text: "Texto"}, {Type: "list", Items: []string{"a", "b"}}}, a.FullContent)
	assert.Equal(t, []Media{{Type: "video", URL: "https://cdn.test/v.mp4"}}, a.Media)
	assert.Equal(t, []Link{{Title: "Mapa", URL: "/locations"}}, a.RelatedLinks)

	assert.Equal(t, "Promociones", p.Promotions.Banner.Title)
	require.Len(t, p.Promotions.Slides, 1, "inactive promotions are dropped")
	promo := p.Promotions.Slides[0]
	assert.Equal(t, "2025-06-01", promo.Date)
	assert.Equal(t, "2025-06-30", promo.ValidUntil)
	assert.Equal(t, "tasa-cero-en-prestamos", promo.Slug)
	assert.Equal(t, []string{"Aplican condiciones"}, promo.Terms)
}

func TestService_Fallbacks(t *testing.T) {
	cases := []struct {
		name  string
		route testutil.Route
	}{
		{"unreachable", testutil.Dropped},
		{"not found", testutil.Status(http.StatusNotFound)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newService(t, map[string]testutil.Route{pathNews: tc.route, pathPromotions: tc.route})

			p, err := svc.Load(context.Background())
			require.NoError(t, err)
			if diff := cmp.Diff(DefaultArticles(), p.News.Slides); diff != "" {
				t.Errorf("news (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(DefaultPromotions(), p.Promotions.Slides); diff != "" {
				t.Errorf("promotions (-want +got):\n%s", diff)
			}
		})
	}
}

func TestService_ServerErrorIsTerminal(t *testing.T) {
	routes := newsRoutes()
	routes[pathPromotions] = testutil.Status(http.StatusServiceUnavailable)
	svc, _ := newService(t, routes)

	_, err := svc.Load(context.Background())
	var fe *fetch.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "promotions", fe.Key)

	feed, err := svc.News(context.Background())
	require.NoError(t, err, "news alone is unaffected")
	assert.Len(t, feed.Slides, 1)
}

func TestService_Lookups(t *testing.T) {
	svc, _ := newService(t, newsRoutes())

	a, err := svc.ArticleByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Nueva sucursal", a.Title)

	_, err = svc.ArticleByID(context.Background(), 8)
	assert.ErrorIs(t, err, page.ErrNotFound)

	p, err := svc.PromotionBySlug(context.Background(), "tasa-cero-en-prestamos")
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)

	_, err = svc.PromotionBySlug(context.Background(), "vencida")
	assert.ErrorIs(t, err, page.ErrNotFound)
}

func TestDefaults_SlugsMatchTitles(t *testing.T) {
	for _, p := range DefaultPromotions() {
		assert.NotEmpty(t, p.Slug, p.Title)
	}
	assert.NotEmpty(t, DefaultArticles())
}

func TestHTTPHandler(t *testing.T) {
	svc, _ := newService(t, newsRoutes())
	h := NewHTTPHandler(svc)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pages/news", h.Page)
	mux.HandleFunc("GET /news/{id}", h.Article)
	mux.HandleFunc("GET /news/promotions/{slug}", h.Promotion)

	for target, want := range map[string]int{
		"/pages/news":                             http.StatusOK,
		"/news/7":                                 http.StatusOK,
		"/news/x":                                 http.StatusBadRequest,
		"/news/promotions/tasa-cero-en-prestamos": http.StatusOK,
		"/news/promotions/vencida":                http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, want, rec.Code, target)
	}
}
