package guidance

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalapi/internal/content/fetch"
	"portalapi/internal/testutil"
)

func pageOf(results ...any) testutil.Route {
	return testutil.JSON(map[string]any{"count": len(results), "next": nil, "results": results})
}

func guidanceRoutes() map[string]testutil.Route {
	return map[string]testutil.Route{
		pathSavingTips: pageOf(
			map[string]any{"id": 1, "title": "Presupuesto", "description": "Planifica", "content": "Anota tus gastos", "order": 2, "is_active": true},
			map[string]any{"id": 2, "title": "Metas", "description": "Define metas", "link": "/ahorro", "order": 1, "is_active": true},
			map[string]any{"id": 3, "title": "Oculto", "description": "x", "order": 0, "is_active": false},
		),
		pathSliderSlides: pageOf(
			map[string]any{"id": 4, "title": "Ahorra", "description": "d", "image_url": "/media/s4.jpg", "order": 1, "is_active": true},
			map[string]any{"id": 5, "title": "Sin imagen", "description": "d", "image_url": nil, "order": 2, "is_active": true},
		),
		pathFAQ: pageOf(
			map[string]any{"id": 9, "question": "¿Hay cargos?", "answer": "No", "order": 1, "is_active": true},
		),
	}
}

func newService(t *testing.T, routes map[string]testutil.Route, opts ...fetch.Option) (*Service, *testutil.ContentAPI) {
	t.Helper()
	api := testutil.NewContentAPI(t, routes)
	deps := testutil.NewDeps(api.URL, opts...)
	return NewService(deps.Fetcher, deps.Normalizer), api
}

func TestService_Load(t *testing.T) {
	svc, api := newService(t, guidanceRoutes())

	p, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Consejos de Ahorro", p.PageTitle)
	assert.NotEmpty(t, p.PageDescription)
	assert.Equal(t, []Tip{
		{ID: 2, Title: "Metas", Description: "Define metas", Link: "/ahorro", Order: 1},
		{ID: 1, Title: "Presupuesto", Description: "Planifica", Content: "Anota tus gastos", Order: 2},
	}, p.Tips, "inactive tips are dropped and the rest sorted by order")
	assert.Equal(t, []Slide{
		{ID: 4, Image: api.URL + "/media/s4.jpg", Title: "Ahorra", Description: "d"},
		{ID: 5, Title: "Sin imagen", Description: "d"},
	}, p.SliderSlides)
	assert.Equal(t, []FAQ{{ID: 9, Question: "¿Hay cargos?", Answer: "No", Order: 1}}, p.FAQItems)
}

func TestService_FAQFallsBack(t *testing.T) {
	cases := []struct {
		name  string
		route testutil.Route
	}{
		{"unreachable", testutil.Dropped},
		{"not found", testutil.Status(http.StatusNotFound)},
		{"no active question", pageOf(map[string]any{"id": 1, "question": "q", "answer": "a", "is_active": false})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			routes := guidanceRoutes()
			routes[pathFAQ] = tc.route
			svc, _ := newService(t, routes)

			p, err := svc.Load(context.Background())
			require.NoError(t, err)
			if diff := cmp.Diff(DefaultFAQ(), p.FAQItems); diff != "" {
				t.Errorf("faq (-want +got):\n%s", diff)
			}
		})
	}
}

func TestService_RequiredListsFail(t *testing.T) {
	routes := guidanceRoutes()
	routes[pathSliderSlides] = testutil.Status(http.StatusInternalServerError)
	svc, _ := newService(t, routes)

	_, err := svc.Load(context.Background())
	var fe *fetch.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "slides", fe.Key)
	assert.Equal(t, fetch.StatusHTTPError, fe.Status)
}

func TestService_MockMode(t *testing.T) {
	svc, api := newService(t, guidanceRoutes(), fetch.WithMock(true))

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, fetch.ErrNoStaticDefault)
	assert.Zero(t, api.Hits(pathSavingTips))
}

func TestDefaultFAQ(t *testing.T) {
	faq := DefaultFAQ()
	require.Len(t, faq, 5)
	assert.Equal(t, "¿Qué es la educación financiera?", faq[0].Question)
	faq[0].Question = "changed"
	assert.NotEqual(t, "changed", DefaultFAQ()[0].Question, "callers get a copy")
}
