package layout

import (
	"context"
	"fmt"
	"sort"

	"portalapi/internal/content/fetch"
	"portalapi/internal/content/normalize"
)

const (
	pathNavigation = "/header/navigation/"
	pathExchange   = "/header/exchange/"
	pathFooter     = "/layout/footer/"
)

const exchangeBase = "Tasa de Cambio"

var (
	fIndividual   = normalize.F("individual")
	fEmpresarial  = normalize.F("empresarial")
	fNavType      = normalize.F("navigationType").Opt()
	fLabel        = normalize.Aliases("label", "label", "name", "title").Opt()
	fMenuItems    = normalize.F("menuItems").Opt()
	fRates        = normalize.F("rates").Opt()
	fCurrency     = normalize.F("currency").Or("currency_name")
	fCurrencyName = normalize.F("currencyName").Opt()
	fBuyRate      = normalize.F("buyRate")
	fSellRate     = normalize.F("sellRate")
	fLastUpdated  = normalize.F("lastUpdated").Or("updated_at")
	fShowBuy      = normalize.F("showBuyRate").Opt()
	fShowSell     = normalize.F("showSellRate").Opt()
	fSections     = normalize.F("sections").Opt()
	fItems        = normalize.F("items").Opt()
	fTitle        = normalize.F("title").Opt()
	fText         = normalize.F("text")
	fTo           = normalize.F("to").Or("url", "href")
	fIcon         = normalize.F("icon").Opt()
	fExternal     = normalize.F("isExternalLink").Opt()
	fCompany      = normalize.F("company").Opt()
	fLocation     = normalize.F("location").Opt()
	fName         = normalize.F("name").Opt()
	fShortName    = normalize.F("shortName").Opt()
	fLogo         = normalize.F("logo").Opt()
	fDescription  = normalize.F("description").Opt()
	fPhone        = normalize.F("phone").Opt()
	fEmail        = normalize.F("email").Opt()
	fCopyright    = normalize.F("copyright").Opt()
	fAddress      = normalize.F("address").Opt()
	fCity         = normalize.F("city").Opt()
	fCountry      = normalize.F("country").Opt()
)

// footerOrder is the rendering order of the known footer groups; any other
// group follows in key order.
var footerOrder = map[string]int{"about": 0, "services": 1, "contact": 2, "follow": 3}

type Service struct {
	fetcher *fetch.Fetcher
	norm    *normalize.Normalizer
	store   *Store
}

func NewService(fetcher *fetch.Fetcher, norm *normalize.Normalizer, store *Store) *Service {
	return &Service{fetcher: fetcher, norm: norm, store: store}
}

// Store exposes the shared header state for readers.
func (s *Service) Store() *Store { return s.store }

func navigationDescriptor() fetch.Descriptor {
	return fetch.List("navigation", pathNavigation).WithDefault([]Navigation{DefaultNavigation()})
}

func exchangeDescriptor() fetch.Descriptor {
	return fetch.Resource("exchange", pathExchange).WithDefault(DefaultExchangeRate())
}

// LoadHeader loads navigation and exchange rate together and publishes the
// result to the store. A load that fell back to static defaults never
// replaces live data.
func (s *Service) LoadHeader(ctx context.Context) (Header, error) {
	res := s.fetcher.FetchAll(ctx, navigationDescriptor(), exchangeDescriptor())
	if err := res.Err(); err != nil {
		return Header{}, fmt.Errorf("header: %w", err)
	}
	parts, err := fetch.Many(res, "navigation", s.navigation)
	if err != nil {
		return Header{}, fmt.Errorf("header: %w", err)
	}
	ex, err := fetch.One(res, "exchange", s.exchange)
	if err != nil {
		return Header{}, fmt.Errorf("header: %w", err)
	}

	h := Header{Navigation: mergeNavigation(parts), Exchange: ex}
	s.publish(ctx, len(res.Fallbacks()) > 0, func(Header) Header { return h })
	return h, nil
}

// LoadExchangeRate refreshes the exchange rate alone.
func (s *Service) LoadExchangeRate(ctx context.Context) (ExchangeRate, error) {
	res := s.fetcher.FetchAll(ctx, exchangeDescriptor())
	ex, err := fetch.One(res, "exchange", s.exchange)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("exchange rate: %w", err)
	}
	s.publish(ctx, len(res.Fallbacks()) > 0, func(h Header) Header {
		h.Exchange = ex
		return h
	})
	return ex, nil
}

func (s *Service) LoadFooter(ctx context.Context) (Footer, error) {
	res := s.fetcher.FetchAll(ctx, fetch.Resource("footer", pathFooter).WithDefault(DefaultFooter()))
	f, err := fetch.One(res, "footer", s.footer)
	if err != nil {
		return Footer{}, fmt.Errorf("footer: %w", err)
	}
	return f, nil
}

// publish writes to the store unless the caller has gone away.
func (s *Service) publish(ctx context.Context, fellBack bool, fn func(Header) Header) {
	if s.store == nil || ctx.Err() != nil {
		return
	}
	s.store.update(fellBack, fn)
}

// navigation reads one record in either backend shape: a typed menu row
// ({navigation_type, menu_items}) or the flat label pair.
func (s *Service) navigation(r normalize.Record) Navigation {
	rd := s.norm.Reader("layout.navigation", r)
	if !rd.Has(fNavType) {
		return Navigation{Individual: rd.String(fIndividual), Empresarial: rd.String(fEmpresarial)}
	}

	nav := Navigation{Menus: map[string][]string{}}
	kind := rd.String(fNavType)
	label := rd.String(fLabel)
	switch kind {
	case "individual":
		nav.Individual = label
	case "empresarial":
		nav.Empresarial = label
	}
	nav.Menus[kind] = rd.Strings(fMenuItems)
	return nav
}

func mergeNavigation(parts []Navigation) Navigation {
	def := DefaultNavigation()
	out := Navigation{Individual: def.Individual, Empresarial: def.Empresarial}
	for _, p := range parts {
		if p.Individual != "" {
			out.Individual = p.Individual
		}
		if p.Empresarial != "" {
			out.Empresarial = p.Empresarial
		}
		for k, v := range p.Menus {
			if out.Menus == nil {
				out.Menus = map[string][]string{}
			}
			out.Menus[k] = v
		}
	}
	return out
}

func (s *Service) exchange(r normalize.Record) ExchangeRate {
	def := DefaultExchangeRate()
	rd := s.norm.Reader("layout.exchange", r)
	ex := ExchangeRate{
		Base:         exchangeBase,
		LastUpdated:  rd.String(fLastUpdated),
		ShowBuyRate:  rd.BoolOr(fShowBuy, def.ShowBuyRate),
		ShowSellRate: rd.BoolOr(fShowSell, def.ShowSellRate),
		Rates:        []Rate{},
	}

	// Older backends send a single flat rate instead of a rates array.
	if !rd.Has(fRates) && rd.Has(fCurrencyName) {
		ex.Rates = append(ex.Rates, s.rate(rd))
		return ex
	}
	for _, item := range rd.Each(fRates) {
		ex.Rates = append(ex.Rates, s.rate(item))
	}
	return ex
}

func (s *Service) rate(rd normalize.Reader) Rate {
	return Rate{
		Currency: rd.String(fCurrency),
		BuyRate:  rd.Float(fBuyRate),
		SellRate: rd.Float(fSellRate),
	}
}

func (s *Service) footer(r normalize.Record) Footer {
	def := DefaultFooter()
	rd := s.norm.Reader("layout.footer", r)

	f := Footer{Sections: def.Sections}
	switch {
	case len(rd.Record(fSections)) > 0:
		f.Sections = s.footerGroups(rd.Nested(fSections))
	case rd.Has(fSections):
		f.Sections = []FooterSection{}
		for _, title := range rd.Strings(fSections) {
			f.Sections = append(f.Sections, FooterSection{Key: normalize.Slug(title), Title: title, Items: []Link{}})
		}
	}

	c := rd.Nested(fCompany)
	f.Company = Company{
		Name:        c.StringOr(fName, def.Company.Name),
		ShortName:   c.StringOr(fShortName, def.Company.ShortName),
		Logo:        c.Image(fLogo),
		Description: c.String(fDescription),
		Phone:       c.String(fPhone),
		Email:       c.String(fEmail),
		Copyright:   c.StringOr(fCopyright, def.Company.Copyright),
	}
	if f.Company.Logo == "" {
		f.Company.Logo = def.Company.Logo
	}

	l := rd.Nested(fLocation)
	f.Location = Location{
		Title:   l.StringOr(fTitle, def.Location.Title),
		Address: l.StringOr(fAddress, def.Location.Address),
		City:    l.String(fCity),
		Country: l.String(fCountry),
	}
	return f
}

// footerGroups reads the keyed form {about: {title, items}, ...}.
func (s *Service) footerGroups(rd normalize.Reader) []FooterSection {
	keys := make([]string, 0, len(rd.Raw()))
	for k := range rd.Raw() {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, iKnown := footerOrder[keys[i]]
		oj, jKnown := footerOrder[keys[j]]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		}
		return keys[i] < keys[j]
	})

	out := make([]FooterSection, 0, len(keys))
	for _, k := range keys {
		g := rd.Nested(normalize.Aliases(k, k).Opt())
		sec := FooterSection{Key: k, Title: g.String(fTitle), Items: []Link{}}
		for _, it := range g.Each(fItems) {
			sec.Items = append(sec.Items, Link{
				Text:     it.String(fText),
				To:       it.String(fTo),
				Icon:     it.String(fIcon),
				External: it.Bool(fExternal),
			})
		}
		out = append(out, sec)
	}
	return out
}
