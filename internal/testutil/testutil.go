// Package testutil provides a stub content API for facade tests.
package testutil

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"portalapi/internal/content/fetch"
	"portalapi/internal/content/normalize"
	"portalapi/internal/platform/contentapi"
)

// Route is one canned answer. A zero Status means 200. Drop closes the
// connection without answering, which the client sees as a network failure.
type Route struct {
	Status int
	Body   string
	Drop   bool
}

// Dropped is a route whose connection is closed before any response.
var Dropped = Route{Drop: true}

// JSON builds a 200 route from any JSON-encodable value.
func JSON(v any) Route {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return Route{Body: string(b)}
}

// Status builds an error route with a DRF-style detail body.
func Status(code int) Route {
	return Route{Status: code, Body: `{"detail":"` + http.StatusText(code) + `"}`}
}

// ContentAPI is an httptest server answering GETs by request URI. Unknown
// URIs answer 404.
type ContentAPI struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]Route
	hits   map[string]int
}

func NewContentAPI(t *testing.T, routes map[string]Route) *ContentAPI {
	t.Helper()
	api := &ContentAPI{routes: make(map[string]Route), hits: make(map[string]int)}
	for k, v := range routes {
		api.routes[k] = v
	}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Close)
	return api
}

func (a *ContentAPI) serve(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	uri := r.URL.RequestURI()
	a.hits[uri]++
	route, ok := a.routes[uri]
	a.mu.Unlock()

	if !ok {
		route = Status(http.StatusNotFound)
	}
	if route.Drop {
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, err := hj.Hijack(); err == nil {
				_ = conn.Close()
				return
			}
		}
		panic(http.ErrAbortHandler)
	}
	w.Header().Set("Content-Type", "application/json")
	if route.Status != 0 {
		w.WriteHeader(route.Status)
	}
	_, _ = w.Write([]byte(route.Body))
}

// Set replaces the answer for uri.
func (a *ContentAPI) Set(uri string, r Route) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.routes[uri] = r
}

// Hits reports how many times uri was requested.
func (a *ContentAPI) Hits(uri string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits[uri]
}

// URLFor returns the absolute URL of uri on this server. The embedded
// Server.URL stays the base URL.
func (a *ContentAPI) URLFor(uri string) string { return a.URL + uri }

// Deps bundles the fetch and normalize layers pointed at a base URL.
type Deps struct {
	Fetcher    *fetch.Fetcher
	Normalizer *normalize.Normalizer
	Gaps       *[]normalize.Gap
}

// NewDeps wires a real client against baseURL. Gaps collects every
// normalization gap reported.
func NewDeps(baseURL string, opts ...fetch.Option) Deps {
	var (
		mu   sync.Mutex
		gaps []normalize.Gap
	)
	client := contentapi.NewClient(contentapi.Options{BaseURL: baseURL, Timeout: 2 * time.Second})
	norm := normalize.New(
		normalize.WithMediaBase(baseURL),
		normalize.WithGapReporter(normalize.GapFunc(func(g normalize.Gap) {
			mu.Lock()
			gaps = append(gaps, g)
			mu.Unlock()
		})),
	)
	opts = append([]fetch.Option{fetch.WithLogger(zap.NewNop())}, opts...)
	return Deps{Fetcher: fetch.New(client, opts...), Normalizer: norm, Gaps: &gaps}
}

// DeadURL returns a base URL on which connections are refused.
func DeadURL(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	_ = l.Close()
	return "http://" + addr + "/api"
}
