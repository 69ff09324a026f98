package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"portalapi/internal/about"
	"portalapi/internal/config"
	"portalapi/internal/content/fetch"
	"portalapi/internal/content/normalize"
	"portalapi/internal/drift"
	"portalapi/internal/guidance"
	"portalapi/internal/home"
	"portalapi/internal/layout"
	"portalapi/internal/locations"
	"portalapi/internal/menu"
	"portalapi/internal/news"
	"portalapi/internal/platform/contentapi"
	"portalapi/internal/products"
	"portalapi/internal/support"
)

// readiness probes a backing dependency. A nil readiness is always ready.
type readiness func(ctx context.Context) error

type handlers struct {
	about     *about.HTTPHandler
	layout    *layout.HTTPHandler
	home      *home.HTTPHandler
	products  *products.HTTPHandler
	news      *news.HTTPHandler
	locations *locations.HTTPHandler
	guidance  *guidance.HTTPHandler
	menu      *menu.HTTPHandler
	support   *support.HTTPHandler
	drift     *drift.HTTPHandler
}

func newHandlers(cfg config.Config, logger *zap.Logger, tracker *drift.Tracker, driftStore drift.Store) handlers {
	client := contentapi.NewClient(contentapi.Options{
		BaseURL: cfg.ContentAPIURL,
		Timeout: cfg.ContentTimeout,
		RPS:     cfg.ContentRPS,
	})
	norm := normalize.New(
		normalize.WithMediaBase(cfg.MediaBaseURL),
		normalize.WithEmptyAsAbsent(cfg.EmptyStringAsAbsent),
		normalize.WithGapReporter(tracker),
	)
	fetcher := fetch.New(client,
		fetch.WithMock(cfg.Mock()),
		fetch.WithMaxPages(cfg.PaginationMaxPages),
		fetch.WithLogger(logger.Named("fetch")),
	)

	catalog := products.NewService(fetcher, norm)

	return handlers{
		about:     about.NewHTTPHandler(about.NewService(fetcher, norm)),
		layout:    layout.NewHTTPHandler(layout.NewService(fetcher, norm, layout.NewStore())),
		home:      home.NewHTTPHandler(home.NewService(fetcher, norm)),
		products:  products.NewHTTPHandler(catalog),
		news:      news.NewHTTPHandler(news.NewService(fetcher, norm)),
		locations: locations.NewHTTPHandler(locations.NewService(fetcher, norm)),
		guidance:  guidance.NewHTTPHandler(guidance.NewService(fetcher, norm)),
		menu:      menu.NewHTTPHandler(menu.NewService(catalog)),
		support:   support.NewHTTPHandler(support.NewService(fetcher, norm)),
		drift:     drift.NewHTTPHandler(tracker, driftStore, cfg.InternalSecret),
	}
}

func newRouter(h handlers, ready readiness) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := ready(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /pages/about", h.about.Page)
	router.HandleFunc("GET /pages/about/community-support", h.about.CommunitySupport)
	router.HandleFunc("GET /pages/about/financial-statements", h.about.FinancialStatements)
	router.HandleFunc("GET /pages/about/memories", h.about.Memories)
	router.HandleFunc("GET /pages/about/policies", h.about.Policies)
	router.HandleFunc("GET /pages/home", h.home.Page)
	router.HandleFunc("GET /pages/products", h.products.Page)
	router.HandleFunc("GET /pages/news", h.news.Page)
	router.HandleFunc("GET /pages/locations", h.locations.Page)
	router.HandleFunc("GET /pages/saving-tips", h.guidance.Page)
	router.HandleFunc("GET /pages/services", h.support.Services)

	router.HandleFunc("GET /pages/support/service-rates", h.support.ServiceRates)
	router.HandleFunc("GET /pages/support/service-categories", h.support.ServiceCategories)
	router.HandleFunc("GET /pages/support/rights-and-duties", h.support.RightsAndDuties)
	router.HandleFunc("GET /pages/support/abandoned-accounts", h.support.AbandonedAccounts)
	router.HandleFunc("GET /pages/support/account-contracts", h.support.AccountContracts)
	router.HandleFunc("GET /pages/support/forms/{form}", h.support.FormPage)

	router.HandleFunc("GET /products/accounts/{id}", h.products.Account)
	router.HandleFunc("GET /products/loans", h.products.Loans)
	router.HandleFunc("GET /products/loans/{slug}", h.products.Loan)
	router.HandleFunc("GET /products/cards/{slug}", h.products.Card)
	router.HandleFunc("GET /products/certificates/{slug}", h.products.Certificate)

	router.HandleFunc("GET /news/{id}", h.news.Article)
	router.HandleFunc("GET /news/promotions/{slug}", h.news.Promotion)

	router.HandleFunc("GET /locations/{id}", h.locations.Location)

	router.HandleFunc("GET /layout/header", h.layout.Header)
	router.HandleFunc("GET /layout/header/current", h.layout.CurrentHeader)
	router.HandleFunc("GET /layout/exchange-rate", h.layout.ExchangeRate)
	router.HandleFunc("GET /layout/footer", h.layout.Footer)
	router.HandleFunc("GET /layout/menu", h.menu.Menu)
	router.HandleFunc("GET /layout/contacts", h.layout.Contacts)
	router.HandleFunc("GET /layout/contacts/{id}", h.layout.Contact)
	router.HandleFunc("GET /layout/social-networks", h.layout.SocialNetworks)
	router.HandleFunc("GET /layout/social-networks/{id}", h.layout.SocialNetwork)

	router.HandleFunc("GET /internal/drift", h.drift.Report)
	router.HandleFunc("POST /internal/drift/flush", h.drift.Flush)

	return router
}
