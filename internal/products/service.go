package products

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"portalapi/internal/content/fetch"
	"portalapi/internal/content/normalize"
	"portalapi/internal/icon"
	"portalapi/internal/page"
)

const (
	pathAccounts     = "/products/accounts/"
	pathLoans        = "/products/loans/"
	pathCards        = "/products/cards/"
	pathCertificates = "/products/certificates/"
)

var (
	fID                = normalize.F("id").Opt()
	fActive            = normalize.F("isActive")
	fTitle             = normalize.F("title")
	fSubtitle          = normalize.F("subtitle").Opt()
	fDescription       = normalize.F("description")
	fBannerImage       = normalize.F("bannerImage").Opt()
	fAccountImage      = normalize.F("accountImage").Opt()
	fCardImage         = normalize.F("cardImage").Opt()
	fCertificateImage  = normalize.F("certificateImage").Opt()
	fCategory          = normalize.F("category").Opt()
	fFeatures          = normalize.F("features").Opt()
	fRequirements      = normalize.F("requirements").Opt()
	fRequirementsTitle = normalize.F("requirementsTitle").Opt()
	fBenefits          = normalize.F("benefits").Opt()
	fBenefitsTitle     = normalize.F("benefitsTitle").Opt()
	fIcon              = normalize.F("icon").Opt()
	fText              = normalize.F("text").Or("title")
	fLoanType          = normalize.F("loanType").Or("type")
	fDetails           = normalize.F("details").Opt()
	fCardType          = normalize.F("cardType").Opt()
	fCertificateType   = normalize.F("certificateType").Opt()
	fSlug              = normalize.F("slug").Opt()
	fCTAApply          = normalize.F("ctaApply").Opt()
	fCTARates          = normalize.F("ctaRates").Opt()
	fInvestment        = normalize.F("investment").Opt()
	fInvestmentTitle   = normalize.F("investmentTitle").Opt()
	fInvestmentSub     = normalize.F("investmentSubtitle").Opt()
	fImageURL          = normalize.F("imageUrl").Opt()
	fRates             = normalize.F("rates").Opt()
	fRatesTitle        = normalize.F("ratesTitle").Opt()
	fDepositRates      = normalize.F("depositRates").Opt()
	fDepositRatesTitle = normalize.F("depositRatesTitle").Opt()
	fDepositValidFrom  = normalize.F("depositRatesValidFrom").Opt()
	fValidFrom         = normalize.F("validFrom").Opt()
	fFAQ               = normalize.Aliases("faq", "faq", "FAQ", "faqs").Opt()
	fFAQTitle          = normalize.F("faqTitle").Opt()
	fItems             = normalize.F("items").Opt()
	fItemTitle         = normalize.F("title").Opt()
	fItemDescription   = normalize.F("description").Opt()
	fLabel             = normalize.F("label")
	fValue             = normalize.F("value")
	fRange             = normalize.F("range")
	fRate              = normalize.F("rate")
	fTerm              = normalize.F("term").Opt()
	fQuestion          = normalize.F("question")
	fAnswer            = normalize.F("answer")
)

type Service struct {
	fetcher *fetch.Fetcher
	norm    *normalize.Normalizer
}

func NewService(fetcher *fetch.Fetcher, norm *normalize.Normalizer) *Service {
	return &Service{fetcher: fetcher, norm: norm}
}

// Load fetches the four catalogues concurrently. Every catalogue is
// required: any terminal failure rejects the whole load.
func (s *Service) Load(ctx context.Context) (Catalog, error) {
	res := s.fetcher.FetchAll(ctx,
		fetch.Paginated("accounts", pathAccounts),
		fetch.Paginated("loans", pathLoans),
		fetch.Paginated("cards", pathCards),
		fetch.Paginated("certificates", pathCertificates),
	)
	if err := res.Err(); err != nil {
		return Catalog{}, fmt.Errorf("products: %w", err)
	}

	accounts, errAccounts := activeOnly(s, res, "accounts", "products.accounts", s.account)
	loans, errLoans := activeOnly(s, res, "loans", "products.loans", s.loan)
	cards, errCards := activeOnly(s, res, "cards", "products.cards", s.card)
	certs, errCerts := activeOnly(s, res, "certificates", "products.certificates", s.certificate)
	if err := errors.Join(errAccounts, errLoans, errCards, errCerts); err != nil {
		return Catalog{}, fmt.Errorf("products: %w", err)
	}
	return Catalog{Accounts: accounts, Loans: loans, Cards: cards, Certificates: certs}, nil
}

func (s *Service) Accounts(ctx context.Context) ([]Account, error) {
	return list(ctx, s, "accounts", pathAccounts, s.account)
}

func (s *Service) Loans(ctx context.Context) ([]Loan, error) {
	return list(ctx, s, "loans", pathLoans, s.loan)
}

func (s *Service) Cards(ctx context.Context) ([]Card, error) {
	return list(ctx, s, "cards", pathCards, s.card)
}

func (s *Service) Certificates(ctx context.Context) ([]Certificate, error) {
	return list(ctx, s, "certificates", pathCertificates, s.certificate)
}

// AccountByID loads one account from its detail endpoint. Unknown and
// inactive accounts are page.ErrNotFound.
func (s *Service) AccountByID(ctx context.Context, id int) (Account, error) {
	key := "account"
	res := s.fetcher.FetchAll(ctx, fetch.Resource(key, pathAccounts+strconv.Itoa(id)+"/"))

	var active bool
	acc, err := fetch.One(res, key, func(r normalize.Record) Account {
		rd := s.norm.Reader("products.account", r)
		active = rd.Present() && rd.Bool(fActive)
		return s.account(rd)
	})
	var fe *fetch.Error
	switch {
	case errors.As(err, &fe) && fe.HTTPStatus == http.StatusNotFound:
		return Account{}, fmt.Errorf("account %d: %w", id, page.ErrNotFound)
	case err != nil:
		return Account{}, fmt.Errorf("account %d: %w", id, err)
	case !active:
		return Account{}, fmt.Errorf("account %d: %w", id, page.ErrNotFound)
	}
	return acc, nil
}

// LoanBySlug looks a loan up among the active loans.
func (s *Service) LoanBySlug(ctx context.Context, slug string) (Loan, error) {
	loans, err := s.Loans(ctx)
	if err != nil {
		return Loan{}, err
	}
	for _, l := range loans {
		if l.Slug == slug {
			return l, nil
		}
	}
	return Loan{}, fmt.Errorf("loan %q: %w", slug, page.ErrNotFound)
}

// LoansByType filters active loans on their loan type. An unknown type
// yields an empty list.
func (s *Service) LoansByType(ctx context.Context, loanType string) ([]Loan, error) {
	loans, err := s.Loans(ctx)
	if err != nil {
		return nil, err
	}
	out := []Loan{}
	for _, l := range loans {
		if l.LoanType == loanType {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Service) CardBySlug(ctx context.Context, slug string) (Card, error) {
	cards, err := s.Cards(ctx)
	if err != nil {
		return Card{}, err
	}
	for _, c := range cards {
		if c.Slug == slug {
			return c, nil
		}
	}
	return Card{}, fmt.Errorf("card %q: %w", slug, page.ErrNotFound)
}

func (s *Service) CertificateBySlug(ctx context.Context, slug string) (Certificate, error) {
	certs, err := s.Certificates(ctx)
	if err != nil {
		return Certificate{}, err
	}
	for _, c := range certs {
		if c.Slug == slug {
			return c, nil
		}
	}
	return Certificate{}, fmt.Errorf("certificate %q: %w", slug, page.ErrNotFound)
}

type entry[T any] struct {
	item   T
	active bool
}

// activeOnly resolves a collection and keeps the records flagged is_active.
func activeOnly[T any](s *Service, res *fetch.Results, key, area string, build func(normalize.Reader) T) ([]T, error) {
	entries, err := fetch.Many(res, key, func(r normalize.Record) entry[T] {
		rd := s.norm.Reader(area, r)
		return entry[T]{item: build(rd), active: rd.Bool(fActive)}
	})
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if e.active {
			out = append(out, e.item)
		}
	}
	return out, nil
}

func list[T any](ctx context.Context, s *Service, key, path string, build func(normalize.Reader) T) ([]T, error) {
	res := s.fetcher.FetchAll(ctx, fetch.Paginated(key, path))
	out, err := activeOnly(s, res, key, "products."+key, build)
	if err != nil {
		return nil, fmt.Errorf("products: %w", err)
	}
	return out, nil
}

func (s *Service) benefits(rd normalize.Reader) []Benefit {
	out := []Benefit{}
	for _, b := range rd.Each(fBenefits) {
		out = append(out, Benefit{Icon: icon.Resolve(b.String(fIcon)), Text: b.String(fText)})
	}
	return out
}

func (s *Service) account(rd normalize.Reader) Account {
	return Account{
		ID:           rd.Int(fID),
		Title:        rd.String(fTitle),
		Description:  rd.String(fDescription),
		BannerImage:  rd.Image(fBannerImage),
		AccountImage: rd.Image(fAccountImage),
		Category:     rd.String(fCategory),
		Features:     rd.Strings(fFeatures),
		Requirements: rd.Strings(fRequirements),
		Benefits:     s.benefits(rd),
	}
}

func (s *Service) loan(rd normalize.Reader) Loan {
	title := rd.String(fTitle)
	return Loan{
		ID:                rd.Int(fID),
		Title:             title,
		Description:       rd.String(fDescription),
		LoanType:          rd.String(fLoanType),
		Details:           rd.Strings(fDetails),
		RequirementsTitle: rd.String(fRequirementsTitle),
		Requirements:      rd.Strings(fRequirements),
		Slug:              normalize.Slug(title),
		BannerImage:       rd.Image(fBannerImage),
	}
}

func (s *Service) card(rd normalize.Reader) Card {
	return Card{
		ID:           rd.Int(fID),
		Title:        rd.String(fTitle),
		Description:  rd.String(fDescription),
		BannerImage:  rd.Image(fBannerImage),
		CardImage:    rd.Image(fCardImage),
		CardType:     rd.String(fCardType),
		Features:     rd.Strings(fFeatures),
		Requirements: rd.Strings(fRequirements),
		Benefits:     s.benefits(rd),
		Slug:         slugOf(rd),
	}
}

func slugOf(rd normalize.Reader) string {
	if v := rd.String(fSlug); v != "" {
		return v
	}
	return normalize.Slug(rd.String(fTitle))
}

// certificate reads the nested sections; a section heading missing from
// its block falls back to the flat *_title column.
func (s *Service) certificate(rd normalize.Reader) Certificate {
	c := Certificate{
		ID:               rd.Int(fID),
		Title:            rd.String(fTitle),
		Subtitle:         rd.String(fSubtitle),
		Description:      rd.String(fDescription),
		BannerImage:      rd.Image(fBannerImage),
		CertificateImage: rd.Image(fCertificateImage),
		CertificateType:  rd.String(fCertificateType),
		CTAApply:         rd.String(fCTAApply),
		CTARates:         rd.String(fCTARates),
		Slug:             slugOf(rd),
	}

	b := rd.Nested(fBenefits)
	c.Benefits = TitledList[Item]{Title: b.StringOr(fItemTitle, rd.String(fBenefitsTitle)), Items: []Item{}}
	for _, it := range b.Each(fItems) {
		c.Benefits.Items = append(c.Benefits.Items, Item{Title: it.String(fItemTitle), Description: it.String(fItemDescription)})
	}

	inv := rd.Nested(fInvestment)
	c.Investment = Investment{
		Title:    inv.StringOr(fItemTitle, rd.String(fInvestmentTitle)),
		Subtitle: inv.StringOr(fSubtitle, rd.String(fInvestmentSub)),
		Details:  inv.Strings(fDetails),
		ImageURL: inv.Image(fImageURL),
	}

	r := rd.Nested(fRates)
	c.Rates = TitledList[Rate]{Title: r.StringOr(fItemTitle, rd.String(fRatesTitle)), Items: []Rate{}}
	for _, it := range r.Each(fItems) {
		c.Rates.Items = append(c.Rates.Items, Rate{Label: it.String(fLabel), Value: it.String(fValue)})
	}

	c.Requirements = TitledList[string]{Title: rd.String(fRequirementsTitle), Items: []string{}}
	if len(rd.Record(fRequirements)) > 0 {
		req := rd.Nested(fRequirements)
		c.Requirements.Title = req.StringOr(fItemTitle, c.Requirements.Title)
		c.Requirements.Items = req.Strings(fItems)
	} else if rd.Has(fRequirements) {
		c.Requirements.Items = rd.Strings(fRequirements)
	}

	d := rd.Nested(fDepositRates)
	c.DepositRates = DepositRates{
		Title:     d.StringOr(fItemTitle, rd.String(fDepositRatesTitle)),
		ValidFrom: d.StringOr(fValidFrom, rd.String(fDepositValidFrom)),
		Items:     []DepositRate{},
	}
	for _, it := range d.Each(fItems) {
		c.DepositRates.Items = append(c.DepositRates.Items, DepositRate{Range: it.String(fRange), Rate: it.String(fRate), Term: it.String(fTerm)})
	}

	f := rd.Nested(fFAQ)
	c.FAQ = TitledList[FAQ]{Title: f.StringOr(fItemTitle, rd.String(fFAQTitle)), Items: []FAQ{}}
	for _, it := range f.Each(fItems) {
		c.FAQ.Items = append(c.FAQ.Items, FAQ{Question: it.String(fQuestion), Answer: it.String(fAnswer)})
	}
	return c
}
