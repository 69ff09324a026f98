package about

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalapi/internal/content/fetch"
	"portalapi/internal/content/normalize"
	"portalapi/internal/icon"
	"portalapi/internal/testutil"
)

func aboutRoutes() map[string]testutil.Route {
	return map[string]testutil.Route{
		pathHero: testutil.JSON(map[string]any{
			"count": 1, "next": nil, "previous": nil,
			"results": []any{map[string]any{"Title": "X", "Description": "Somos ASOMAP"}},
		}),
		pathWhoWeAre: testutil.JSON(map[string]any{
			"title": "Quiénes Somos", "paragraphs": []string{"p1", "p2"},
			"image_src": "/media/quienes.jpg", "image_alt": "Oficina",
		}),
		pathHistory: testutil.JSON([]any{map[string]any{
			"title": "Y", "Paragraphs": []string{"1963"}, "ImageSrc": "https://cdn.test/historia.jpg",
		}}),
		pathMission: testutil.JSON(map[string]any{"title": "Misión", "description": "Servir"}),
		pathVision:  testutil.JSON(map[string]any{"Title": "Visión", "Description": []string{"Ser", "Crecer"}}),
		pathValues: testutil.JSON(map[string]any{"results": []any{
			map[string]any{"title": "Integridad", "description": "d1"},
			map[string]any{"Title": "Solidaridad", "Description": "d2", "icon": "FaHandshake"},
		}}),
		pathBoard: testutil.JSON(map[string]any{
			"count": 6, "next": "/about/consejo-directores/?page=2",
			"results": []any{director(5), director(3)},
		}),
		pathBoard + "?page=2": testutil.JSON(map[string]any{
			"count": 6, "next": "/about/consejo-directores/?page=3",
			"results": []any{director(1), director(6)},
		}),
		pathBoard + "?page=3": testutil.JSON(map[string]any{
			"count": 6, "next": nil,
			"results": []any{director(2), director(4)},
		}),
		pathCommunitySupport: testutil.JSON(map[string]any{
			"title": "Apoyo",
			"categories": []any{
				map[string]any{"id": 7, "name": "Salud"},
				map[string]any{"name": "Medio Ambiente", "icon": "FaTree"},
			},
			"initiatives": []any{map[string]any{
				"title": "Operativo Médico", "impact": "300 personas",
				"image_src": "media/operativo.jpg", "category": map[string]any{"name": "Salud"},
			}},
		}),
	}
}

func director(id int) map[string]any {
	return map[string]any{"id": id, "name": "Director", "position": "Vocal", "image_src": "/media/d.jpg"}
}

func newService(t *testing.T, routes map[string]testutil.Route) (*Service, *testutil.ContentAPI, testutil.Deps) {
	t.Helper()
	api := testutil.NewContentAPI(t, routes)
	deps := testutil.NewDeps(api.URL)
	return NewService(deps.Fetcher, deps.Normalizer), api, deps
}

func TestService_Load(t *testing.T) {
	svc, api, _ := newService(t, aboutRoutes())

	p, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "X", p.Hero.Title, "PascalCase hero title")
	assert.Equal(t, "Y", p.History.Title, "lowercase history title")
	assert.Equal(t, []string{"1963"}, p.History.Paragraphs)
	assert.Equal(t, "https://cdn.test/historia.jpg", p.History.ImageSrc)
	assert.Equal(t, api.URL+"/media/quienes.jpg", p.WhoWeAre.ImageSrc)
	assert.Equal(t, []string{"Servir"}, p.Mission.Description)
	assert.Equal(t, []string{"Ser", "Crecer"}, p.Vision.Description)

	require.Len(t, p.Values.Items, 2)
	assert.Equal(t, "Nuestros Valores", p.Values.Title)
	assert.Equal(t, icon.PeopleArrows, p.Values.Items[0].Icon)
	assert.Equal(t, icon.Handshake, p.Values.Items[1].Icon)
	assert.Equal(t, "Solidaridad", p.Values.Items[1].Title)

	ids := make([]int, 0, len(p.Board))
	for _, d := range p.Board {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids)

	require.NotNil(t, p.CommunitySupport)
	cs := p.CommunitySupport
	assert.Equal(t, "Apoyo", cs.Title)
	assert.Equal(t, DefaultCommunitySupport().Description, cs.Description)
	assert.Equal(t, []Category{
		{ID: "7", Name: "Salud", Icon: icon.HandHoldingHeart},
		{ID: "medio-ambiente", Name: "Medio Ambiente", Icon: icon.Tree},
	}, cs.Categories)
	require.Len(t, cs.Initiatives, 1)
	assert.Equal(t, "operativo-medico", cs.Initiatives[0].ID)
	assert.Equal(t, "Salud", cs.Initiatives[0].Category)
	assert.Equal(t, api.URL+"/media/operativo.jpg", cs.Initiatives[0].ImageURL)
	assert.Empty(t, p.Unavailable)
}

func TestService_LoadIsIdempotent(t *testing.T) {
	svc, api, _ := newService(t, aboutRoutes())

	first, err := svc.Load(context.Background())
	require.NoError(t, err)
	second, err := svc.Load(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second load differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, 2, api.Hits(pathHero), "no caching across loads")
}

func TestService_RequiredSectionFails(t *testing.T) {
	routes := aboutRoutes()
	routes[pathMission] = testutil.Status(http.StatusInternalServerError)
	svc, _, _ := newService(t, routes)

	_, err := svc.Load(context.Background())
	var fe *fetch.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "mision", fe.Key)
	assert.Equal(t, http.StatusInternalServerError, fe.HTTPStatus)
}

func TestService_BoardPageFailureDiscardsBoard(t *testing.T) {
	routes := aboutRoutes()
	routes[pathBoard+"?page=3"] = testutil.Status(http.StatusBadGateway)
	svc, _, _ := newService(t, routes)

	_, err := svc.Load(context.Background())
	var fe *fetch.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "consejoDirectores", fe.Key)
}

func TestService_CommunitySupportIsOptional(t *testing.T) {
	t.Run("backend error leaves section unavailable", func(t *testing.T) {
		routes := aboutRoutes()
		routes[pathCommunitySupport] = testutil.Status(http.StatusInternalServerError)
		svc, _, _ := newService(t, routes)

		p, err := svc.Load(context.Background())
		require.NoError(t, err)
		assert.Nil(t, p.CommunitySupport)
		assert.Equal(t, []string{"communitySupport"}, p.Unavailable)
	})

	t.Run("unreachable serves bundled default", func(t *testing.T) {
		routes := aboutRoutes()
		routes[pathCommunitySupport] = testutil.Dropped
		svc, _, _ := newService(t, routes)

		p, err := svc.Load(context.Background())
		require.NoError(t, err)
		require.NotNil(t, p.CommunitySupport)
		assert.Equal(t, DefaultCommunitySupport(), *p.CommunitySupport)
		assert.Empty(t, p.Unavailable)
	})

	t.Run("standalone 404 falls back to default", func(t *testing.T) {
		routes := aboutRoutes()
		delete(routes, pathCommunitySupport)
		svc, _, _ := newService(t, routes)

		cs, err := svc.LoadCommunitySupport(context.Background())
		require.NoError(t, err, "404 with a registered default falls back")
		assert.Equal(t, DefaultCommunitySupport(), cs)
	})
}

func TestService_ReportsGaps(t *testing.T) {
	routes := aboutRoutes()
	routes[pathHero] = testutil.JSON(map[string]any{"titulo": "X"})
	svc, _, deps := newService(t, routes)

	p, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, p.Hero.Title)

	var fields []string
	for _, g := range *deps.Gaps {
		if g.Area == "about.hero" {
			fields = append(fields, g.Field)
		}
	}
	assert.ElementsMatch(t, []string{"title", "description"}, fields)
}

func TestService_MockMode(t *testing.T) {
	deps := testutil.NewDeps(testutil.DeadURL(t), fetch.WithMock(true))
	svc := NewService(deps.Fetcher, deps.Normalizer)

	_, err := svc.Load(context.Background())
	assert.True(t, errors.Is(err, fetch.ErrNoStaticDefault))

	cs, err := svc.LoadCommunitySupport(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, cs.Categories)
}

func TestDefaults_Bundle(t *testing.T) {
	cs := DefaultCommunitySupport()
	assert.NotEmpty(t, cs.Title)
	for _, c := range cs.Categories {
		assert.NotEqual(t, icon.Fallback, c.Icon, c.Name)
	}
	assert.Equal(t, normalize.Slug(cs.Categories[0].Name), cs.Categories[0].ID)
}
