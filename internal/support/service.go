package support

import (
	"context"
	"fmt"
	"sort"

	"portalapi/internal/content/fetch"
	"portalapi/internal/content/normalize"
	"portalapi/internal/page"
)

const (
	pathServiceRates      = "/user-support/service-rates/"
	pathServiceCategories = "/user-support/service-categories/"
	pathRightsAndDuties   = "/user-support/rights-and-duties/"
	pathAbandonedAccounts = "/user-support/abandoned-accounts/"
	pathAccountContracts  = "/user-support/account-contracts/"
	pathClaimRequestPage  = "/user-support/claim-request-page/"
	pathFraudReportPage   = "/user-support/fraud-report-page/"
	pathSuggestionBoxPage = "/user-support/suggestion-box-page/"
	pathServices          = "/services/"
)

var (
	fID              = normalize.F("id").Opt()
	fTitle           = normalize.F("title")
	fDescription     = normalize.F("description").Opt()
	fName            = normalize.F("name")
	fCategories      = normalize.F("categories").Opt()
	fRates           = normalize.F("rates").Opt()
	fService         = normalize.F("service")
	fRate            = normalize.F("rate")
	fDetails         = normalize.F("details").Opt()
	fPageTitle       = normalize.F("pageTitle").Or("title")
	fPageDescription = normalize.F("pageDescription").Or("description").Opt()
	fSections        = normalize.F("sections").Opt()
	fButtonText      = normalize.F("buttonText").Opt()
	fAdditionalInfo  = normalize.F("additionalInfo").Opt()
	fImages          = normalize.F("images").Opt()
	fSrc             = normalize.F("src").Or("image", "url")
	fAlt             = normalize.F("alt").Or("alt_text", "altText").Opt()
	fAccountTypes    = normalize.F("accountTypes").Opt()
	fLabel           = normalize.F("label")
	fYears           = normalize.F("years").Opt()
	fYear            = normalize.F("year")
	fDocuments       = normalize.F("documents").Opt()
	fDocType         = normalize.F("type")
	fDocTitle        = normalize.F("title").Opt()
	fURL             = normalize.F("url").Opt()
	fDate            = normalize.F("date").Opt()
	fContracts       = normalize.F("contracts").Opt()
	fCategory        = normalize.F("category").Opt()
	fActive          = normalize.F("isActive").Opt()
	fCreatedAt       = normalize.F("createdAt").Opt()
	fUpdatedAt       = normalize.F("updatedAt").Opt()
	fSubtitle        = normalize.F("subtitle").Opt()
	fSearchHint      = normalize.F("searchPlaceholder").Opt()
	fNoResults       = normalize.F("noResultsText").Opt()
	fBankingURL      = normalize.F("internetBankingUrl").Opt()
	fBankingButton   = normalize.F("internetBankingButton").Opt()
	fItems           = normalize.F("items").Opt()
	fItemDetails     = normalize.F("itemDetails").Opt()
	fSteps           = normalize.F("steps").Opt()
	fImageURL        = normalize.F("imageUrl").Opt()
	fImageAlt        = normalize.F("imageAlt").Opt()
	fPDFURL          = normalize.F("pdfUrl").Opt()
)

// Form names one of the public forms whose heading text the backend serves.
type Form string

const (
	FormClaimRequest  Form = "claim-request"
	FormFraudReport   Form = "fraud-report"
	FormSuggestionBox Form = "suggestion-box"
)

var formPaths = map[Form]string{
	FormClaimRequest:  pathClaimRequestPage,
	FormFraudReport:   pathFraudReportPage,
	FormSuggestionBox: pathSuggestionBoxPage,
}

type Service struct {
	fetcher *fetch.Fetcher
	norm    *normalize.Normalizer
}

func NewService(fetcher *fetch.Fetcher, norm *normalize.Normalizer) *Service {
	return &Service{fetcher: fetcher, norm: norm}
}

// first loads the first record behind a page endpoint. An empty result set
// is page.ErrNotFound.
func first[T any](ctx context.Context, s *Service, key, path string, build func(normalize.Reader) T) (T, error) {
	var zero T
	res := s.fetcher.FetchAll(ctx, fetch.Resource(key, path))
	present := false
	v, err := fetch.One(res, key, func(r normalize.Record) T {
		rd := s.norm.Reader("support."+key, r)
		if present = rd.Present(); !present {
			return zero
		}
		return build(rd)
	})
	if err != nil {
		return zero, fmt.Errorf("support: %w", err)
	}
	if !present {
		return zero, fmt.Errorf("support %s: %w", key, page.ErrNotFound)
	}
	return v, nil
}

func (s *Service) ServiceRates(ctx context.Context) (ServiceRates, error) {
	return first(ctx, s, "serviceRates", pathServiceRates, func(rd normalize.Reader) ServiceRates {
		out := ServiceRates{Title: rd.String(fTitle), Description: rd.String(fDescription), Categories: []RateCategory{}}
		for _, c := range rd.Each(fCategories) {
			out.Categories = append(out.Categories, s.rateCategory(c))
		}
		return out
	})
}

// ServiceCategories lists every tariff category with its rates.
func (s *Service) ServiceCategories(ctx context.Context) ([]RateCategory, error) {
	res := s.fetcher.FetchAll(ctx, fetch.Paginated("serviceCategories", pathServiceCategories))
	out, err := fetch.Many(res, "serviceCategories", func(r normalize.Record) RateCategory {
		return s.rateCategory(s.norm.Reader("support.serviceCategories", r))
	})
	if err != nil {
		return nil, fmt.Errorf("support: %w", err)
	}
	return out, nil
}

func (s *Service) RightsAndDuties(ctx context.Context) (RightsAndDuties, error) {
	return first(ctx, s, "rightsAndDuties", pathRightsAndDuties, func(rd normalize.Reader) RightsAndDuties {
		out := RightsAndDuties{
			PageTitle:       rd.String(fPageTitle),
			PageDescription: rd.String(fPageDescription),
			Sections:        []RightsSection{},
		}
		for _, sec := range rd.Each(fSections) {
			rs := RightsSection{
				ID:             sec.Int(fID),
				Title:          sec.String(fTitle),
				Description:    sec.String(fDescription),
				ButtonText:     sec.String(fButtonText),
				AdditionalInfo: sec.String(fAdditionalInfo),
				Images:         []Image{},
			}
			for _, img := range sec.Each(fImages) {
				rs.Images = append(rs.Images, Image{
					ID:          img.Int(fID),
					Src:         img.Image(fSrc),
					Alt:         img.String(fAlt),
					Description: img.String(fDescription),
				})
			}
			out.Sections = append(out.Sections, rs)
		}
		return out
	})
}

func (s *Service) AbandonedAccounts(ctx context.Context) (AbandonedAccounts, error) {
	return first(ctx, s, "abandonedAccounts", pathAbandonedAccounts, func(rd normalize.Reader) AbandonedAccounts {
		out := AbandonedAccounts{
			ID:           rd.Int(fID),
			Title:        rd.String(fTitle),
			Description:  rd.String(fDescription),
			AccountTypes: []AccountType{},
			Years:        []YearReports{},
		}
		for _, t := range rd.Each(fAccountTypes) {
			out.AccountTypes = append(out.AccountTypes, AccountType{ID: t.Int(fID), Label: t.String(fLabel), Description: t.String(fDescription)})
		}
		for _, y := range rd.Each(fYears) {
			out.Years = append(out.Years, yearReports(y))
		}
		return out
	})
}

// yearReports sorts the keyed documents of one year into its abandoned and
// inactive lists by their type. Keys are visited in order, so the last
// document of a type wins.
func yearReports(rd normalize.Reader) YearReports {
	out := YearReports{Year: rd.String(fYear)}
	docs := rd.Nested(fDocuments)
	keys := make([]string, 0, len(docs.Raw()))
	for k := range docs.Raw() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		d := docs.Nested(normalize.Aliases(k, k).Opt())
		doc := Document{Title: d.String(fDocTitle), URL: d.Image(fURL), Date: d.String(fDate)}
		switch d.String(fDocType) {
		case "abandoned":
			out.Abandoned = doc
		case "inactive":
			out.Inactive = doc
		}
	}
	return out
}

func (s *Service) AccountContracts(ctx context.Context) (AccountContracts, error) {
	return first(ctx, s, "accountContracts", pathAccountContracts, func(rd normalize.Reader) AccountContracts {
		out := AccountContracts{
			ID:          rd.Int(fID),
			Title:       rd.String(fTitle),
			Description: rd.String(fDescription),
			Contracts:   []Contract{},
			Categories:  rd.Strings(fCategories),
		}
		for _, c := range rd.Each(fContracts) {
			out.Contracts = append(out.Contracts, Contract{Title: c.String(fTitle), URL: c.Image(fURL), Category: c.String(fCategory)})
		}
		return out
	})
}

// FormPage loads the heading text of form. Unknown forms are
// page.ErrNotFound.
func (s *Service) FormPage(ctx context.Context, form Form) (FormPage, error) {
	path, ok := formPaths[form]
	if !ok {
		return FormPage{}, fmt.Errorf("form %q: %w", form, page.ErrNotFound)
	}
	return first(ctx, s, string(form)+"Page", path, func(rd normalize.Reader) FormPage {
		return FormPage{
			ID:          rd.Int(fID),
			Title:       rd.String(fTitle),
			Description: rd.String(fDescription),
			IsActive:    rd.BoolOr(fActive, true),
			CreatedAt:   rd.String(fCreatedAt),
			UpdatedAt:   rd.String(fUpdatedAt),
		}
	})
}

func (s *Service) ServicesPage(ctx context.Context) (ServicesPage, error) {
	return first(ctx, s, "services", pathServices, func(rd normalize.Reader) ServicesPage {
		out := ServicesPage{
			Title:                 rd.String(fTitle),
			Subtitle:              rd.String(fSubtitle),
			SearchPlaceholder:     rd.String(fSearchHint),
			NoResultsText:         rd.String(fNoResults),
			InternetBankingURL:    rd.String(fBankingURL),
			InternetBankingButton: rd.String(fBankingButton),
			Items:                 rd.Strings(fItems),
			ItemDetails:           []ServiceDetail{},
		}
		for _, d := range rd.Each(fItemDetails) {
			out.ItemDetails = append(out.ItemDetails, ServiceDetail{
				ID:          d.Int(fID),
				Title:       d.String(fTitle),
				Description: d.String(fDescription),
				Steps:       d.String(fSteps),
				ImageURL:    d.Image(fImageURL),
				ImageAlt:    d.String(fImageAlt),
				PDFURL:      d.Image(fPDFURL),
			})
		}
		return out
	})
}

func (s *Service) rateCategory(rd normalize.Reader) RateCategory {
	c := RateCategory{ID: rd.Int(fID), Name: rd.String(fName), Rates: []ServiceRate{}}
	for _, r := range rd.Each(fRates) {
		c.Rates = append(c.Rates, ServiceRate{
			ID:          r.Int(fID),
			Service:     r.String(fService),
			Description: r.String(fDescription),
			Rate:        r.String(fRate),
			Details:     r.String(fDetails),
		})
	}
	return c
}
