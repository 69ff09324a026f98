package guidance

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"portalapi/internal/content/fetch"
	"portalapi/internal/content/normalize"
)

const (
	pathSavingTips   = "/financial-guidance/saving-tips/"
	pathSliderSlides = "/financial-guidance/slider-slides/"
	pathFAQ          = "/financial-guidance/faq/"
)

var (
	fID          = normalize.F("id").Opt()
	fActive      = normalize.F("isActive")
	fOrder       = normalize.F("order").Opt()
	fTitle       = normalize.F("title")
	fDescription = normalize.F("description")
	fContent     = normalize.F("content").Opt()
	fLink        = normalize.F("link").Opt()
	fImageURL    = normalize.F("imageUrl").Or("image").Opt()
	fQuestion    = normalize.F("question")
	fAnswer      = normalize.F("answer")
)

type Service struct {
	fetcher *fetch.Fetcher
	norm    *normalize.Normalizer
}

func NewService(fetcher *fetch.Fetcher, norm *normalize.Normalizer) *Service {
	return &Service{fetcher: fetcher, norm: norm}
}

// Load fetches the three lists together. Tips and slides are required; the
// FAQ falls back to the bundled questions.
func (s *Service) Load(ctx context.Context) (Page, error) {
	res := s.fetcher.FetchAll(ctx,
		fetch.Paginated("tips", pathSavingTips),
		fetch.Paginated("slides", pathSliderSlides),
		fetch.Paginated("faq", pathFAQ).WithDefault(DefaultFAQ()),
	)
	if err := res.Err(); err != nil {
		return Page{}, fmt.Errorf("guidance: %w", err)
	}

	tips, errTips := ordered(s, res, "tips", s.tip)
	slides, errSlides := ordered(s, res, "slides", s.slide)
	faq, errFAQ := s.faq(res)
	if err := errors.Join(errTips, errSlides, errFAQ); err != nil {
		return Page{}, fmt.Errorf("guidance: %w", err)
	}
	return Page{
		PageTitle:       staticDefaults.PageTitle,
		PageDescription: staticDefaults.PageDescription,
		Tips:            tips,
		SliderSlides:    slides,
		FAQItems:        faq,
	}, nil
}

type ranked[T any] struct {
	item  T
	order int
}

// ordered resolves a collection, keeps the active records and sorts them by
// their order column. Ties keep backend order. A static default is served as
// is.
func ordered[T any](s *Service, res *fetch.Results, key string, build func(normalize.Reader) T) ([]T, error) {
	area := "guidance." + key
	items, err := fetch.Many(res, key, func(r normalize.Record) T { return build(s.norm.Reader(area, r)) })
	if err != nil {
		return nil, err
	}
	o := res.Outcome(key)
	if o.Status != fetch.StatusSuccess {
		return items, nil
	}
	active := make([]ranked[T], 0, len(items))
	for i, rec := range o.Records {
		rd := s.norm.Reader(area, rec)
		if rd.Bool(fActive) {
			active = append(active, ranked[T]{item: items[i], order: rd.Int(fOrder)})
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].order < active[j].order })
	out := make([]T, 0, len(active))
	for _, e := range active {
		out = append(out, e.item)
	}
	return out, nil
}

// faq serves the bundled questions when the backend has no active question.
func (s *Service) faq(res *fetch.Results) ([]FAQ, error) {
	items, err := ordered(s, res, "faq", s.question)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return DefaultFAQ(), nil
	}
	return items, nil
}

func (s *Service) tip(rd normalize.Reader) Tip {
	return Tip{
		ID:          rd.Int(fID),
		Title:       rd.String(fTitle),
		Description: rd.String(fDescription),
		Content:     rd.String(fContent),
		Link:        rd.String(fLink),
		Order:       rd.Int(fOrder),
	}
}

func (s *Service) slide(rd normalize.Reader) Slide {
	return Slide{
		ID:          rd.Int(fID),
		Image:       rd.Image(fImageURL),
		Title:       rd.String(fTitle),
		Description: rd.String(fDescription),
	}
}

func (s *Service) question(rd normalize.Reader) FAQ {
	return FAQ{
		ID:       rd.Int(fID),
		Question: rd.String(fQuestion),
		Answer:   rd.String(fAnswer),
		Order:    rd.Int(fOrder),
	}
}
