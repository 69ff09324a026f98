package home

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"portalapi/internal/content/fetch"
	"portalapi/internal/content/normalize"
)

const (
	pathSlider         = "/home/slider/"
	pathProductSection = "/home/product-section/"
	pathEducation      = "/home/education-section/"
	pathDebitCardPromo = "/home/debit-card-promo/"
	pathPekeSummary    = "/home/peke-account-summary/"
)

var (
	fID          = normalize.F("id").Opt()
	fImage       = normalize.F("image").Or("image_src", "image_url")
	fImageTablet = normalize.F("imageTablet").Opt()
	fImageMobile = normalize.F("imageMobile").Opt()
	fAlt         = normalize.F("alt").Or("image_alt").Opt()
	fOrder       = normalize.F("order").Opt()
	fActive      = normalize.F("isActive").Opt()
	fData        = normalize.F("data").Opt()
	fSection     = normalize.F("section").Opt()
	fTitle       = normalize.F("title")
	fSubtitle    = normalize.F("subtitle").Opt()
	fButtonText  = normalize.F("buttonText").Opt()
	fProducts    = normalize.F("products").Opt()
	fDescription = normalize.F("description")
	fCategory    = normalize.F("category").Opt()
	fImageWidth  = normalize.F("imageWidth").Opt()
	fImageHeight = normalize.F("imageHeight").Opt()
	fItems       = normalize.F("educationItems").Or("items")
	fFooterText  = normalize.F("footerText").Opt()
	fHighlighted = normalize.F("highlightedTitle").Opt()
	fPrimaryBtn  = normalize.F("primaryButtonText").Opt()
	fSecondBtn   = normalize.F("secondaryButtonText").Opt()
	fImageURL    = normalize.F("imageUrl").Or("image")
	fImageAlt    = normalize.F("imageAlt").Opt()
)

type Service struct {
	fetcher *fetch.Fetcher
	norm    *normalize.Normalizer
}

func NewService(fetcher *fetch.Fetcher, norm *normalize.Normalizer) *Service {
	return &Service{fetcher: fetcher, norm: norm}
}

// Load fetches the landing page. The slider and the education section are
// required; the product section and the promo blocks are left out of the
// page when they cannot be loaded.
func (s *Service) Load(ctx context.Context) (Page, error) {
	res := s.fetcher.FetchAll(ctx,
		fetch.List("slider", pathSlider),
		fetch.Resource("educationSection", pathEducation),
		fetch.Resource("productSection", pathProductSection).AsOptional(),
		fetch.Resource("debitCardPromo", pathDebitCardPromo).AsOptional(),
		fetch.Resource("pekeAccountSummary", pathPekeSummary).AsOptional(),
	)
	if err := res.Err(); err != nil {
		return Page{}, fmt.Errorf("home: %w", err)
	}

	slides, errSlider := fetch.Many(res, "slider", s.slide)
	education, errEducation := fetch.One(res, "educationSection", s.education)
	if err := errors.Join(errSlider, errEducation); err != nil {
		return Page{}, fmt.Errorf("home: %w", err)
	}

	p := Page{
		Slider:      orderSlides(slides),
		Education:   education,
		Unavailable: res.Unavailable(),
	}
	if ps, err := fetch.One(res, "productSection", s.productSection); err == nil {
		p.ProductSection = ps
	}
	if promo, err := fetch.One(res, "debitCardPromo", s.promo); err == nil {
		p.DebitCardPromo = promo
	}
	if sum, err := fetch.One(res, "pekeAccountSummary", s.summary); err == nil {
		p.PekeSummary = sum
	}
	return p, nil
}

func (s *Service) slide(r normalize.Record) Slide {
	rd := s.norm.Reader("home.slider", r)
	img := rd.Image(fImage)
	sl := Slide{
		ID:          rd.Int(fID),
		Image:       img,
		ImageTablet: rd.Image(fImageTablet),
		ImageMobile: rd.Image(fImageMobile),
		Alt:         rd.String(fAlt),
		Order:       rd.Int(fOrder),
	}
	if sl.ImageTablet == "" {
		sl.ImageTablet = img
	}
	if sl.ImageMobile == "" {
		sl.ImageMobile = img
	}
	return sl
}

// orderSlides sorts by the backend order field, keeping arrival order for
// ties.
func orderSlides(in []Slide) []Slide {
	sort.SliceStable(in, func(i, j int) bool { return in[i].Order < in[j].Order })
	return in
}

// unwrap reads the {data: {...}} envelope some home endpoints use.
func (s *Service) unwrap(area string, r normalize.Record) normalize.Reader {
	rd := s.norm.Reader(area, r)
	if rd.Has(fData) {
		return rd.Nested(fData)
	}
	return rd
}

// active reports false only when the record says is_active: false.
func active(rd normalize.Reader) bool {
	return rd.BoolOr(fActive, true)
}

func (s *Service) education(r normalize.Record) Education {
	rd := s.unwrap("home.educationSection", r)
	ed := Education{
		Title:      rd.String(fTitle),
		Subtitle:   rd.String(fSubtitle),
		FooterText: rd.String(fFooterText),
		Items:      []EducationItem{},
	}
	for _, it := range rd.Each(fItems) {
		ed.Items = append(ed.Items, EducationItem{
			Image:       it.Image(fImage),
			Alt:         it.String(fAlt),
			Description: it.String(fDescription),
		})
	}
	return ed
}

// productSection yields nil for an empty or inactive section.
func (s *Service) productSection(r normalize.Record) *ProductSection {
	rd := s.unwrap("home.productSection", r)
	if !rd.Present() || !active(rd) {
		return nil
	}
	head := rd
	if rd.Has(fSection) {
		head = rd.Nested(fSection)
	}
	ps := &ProductSection{
		Title:      head.String(fTitle),
		Subtitle:   head.String(fSubtitle),
		ButtonText: rd.String(fButtonText),
		Products:   []Product{},
	}
	for _, p := range rd.Each(fProducts) {
		id := p.String(fID)
		if id == "" {
			id = normalize.Slug(p.String(fTitle))
		}
		ps.Products = append(ps.Products, Product{
			ID:          id,
			Title:       p.String(fTitle),
			Description: p.String(fDescription),
			Image:       p.Image(fImage),
			Category:    p.String(fCategory),
			ImageWidth:  p.Int(fImageWidth),
			ImageHeight: p.Int(fImageHeight),
		})
	}
	return ps
}

func (s *Service) promo(r normalize.Record) *Promo {
	rd := s.norm.Reader("home.debitCardPromo", r)
	if !rd.Present() || !active(rd) {
		return nil
	}
	return &Promo{
		Title:               rd.String(fTitle),
		HighlightedTitle:    rd.String(fHighlighted),
		Description:         rd.String(fDescription),
		PrimaryButtonText:   rd.String(fPrimaryBtn),
		SecondaryButtonText: rd.String(fSecondBtn),
		ImageURL:            rd.Image(fImageURL),
		ImageAlt:            rd.String(fImageAlt),
	}
}

func (s *Service) summary(r normalize.Record) *AccountSummary {
	rd := s.norm.Reader("home.pekeAccountSummary", r)
	if !rd.Present() || !active(rd) {
		return nil
	}
	return &AccountSummary{
		Title:       rd.String(fTitle),
		Description: rd.String(fDescription),
		ButtonText:  rd.String(fButtonText),
		ImageURL:    rd.Image(fImageURL),
		ImageAlt:    rd.String(fImageAlt),
	}
}

