package about

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"portalapi/internal/content/fetch"
	"portalapi/internal/content/normalize"
	"portalapi/internal/icon"
)

const (
	pathHero             = "/about/hero/"
	pathWhoWeAre         = "/about/quienes-somos/"
	pathHistory          = "/about/nuestra-historia/"
	pathMission          = "/about/mision/"
	pathVision           = "/about/vision/"
	pathValues           = "/about/valores/"
	pathBoard            = "/about/consejo-directores/"
	pathCommunitySupport = "/about/community-support/"
)

const valuesTitle = "Nuestros Valores"

var (
	fTitle       = normalize.F("title")
	fDescription = normalize.F("description")
	fParagraphs  = normalize.F("paragraphs")
	fImageSrc    = normalize.F("imageSrc")
	fImageAlt    = normalize.F("imageAlt").Opt()
	fName        = normalize.F("name")
	fPosition    = normalize.F("position")
	fIcon        = normalize.F("icon").Opt()
	fID          = normalize.F("id").Opt()
	fImpact      = normalize.F("impact").Opt()
	fCategories  = normalize.F("categories").Opt()
	fInitiatives = normalize.F("initiatives").Opt()
	fCategory    = normalize.F("category").Opt()
)

type Service struct {
	fetcher *fetch.Fetcher
	norm    *normalize.Normalizer
}

func NewService(fetcher *fetch.Fetcher, norm *normalize.Normalizer) *Service {
	return &Service{fetcher: fetcher, norm: norm}
}

func (s *Service) descriptors() []fetch.Descriptor {
	return []fetch.Descriptor{
		fetch.Resource("hero", pathHero),
		fetch.Resource("quienesSomos", pathWhoWeAre),
		fetch.Resource("nuestraHistoria", pathHistory),
		fetch.Resource("mision", pathMission),
		fetch.Resource("vision", pathVision),
		fetch.List("valores", pathValues),
		fetch.Paginated("consejoDirectores", pathBoard),
		fetch.Resource("communitySupport", pathCommunitySupport).
			WithDefault(DefaultCommunitySupport()).
			AsOptional(),
	}
}

// Load fetches every section concurrently and assembles the page. Any
// required section failing terminally fails the page.
func (s *Service) Load(ctx context.Context) (Page, error) {
	res := s.fetcher.FetchAll(ctx, s.descriptors()...)
	if err := res.Err(); err != nil {
		return Page{}, fmt.Errorf("about: %w", err)
	}

	hero, errHero := fetch.One(res, "hero", s.hero)
	whoWeAre, errWho := fetch.One(res, "quienesSomos", s.section("about.quienesSomos"))
	history, errHistory := fetch.One(res, "nuestraHistoria", s.section("about.nuestraHistoria"))
	mission, errMission := fetch.One(res, "mision", s.statement("about.mision"))
	vision, errVision := fetch.One(res, "vision", s.statement("about.vision"))
	values, errValues := fetch.Many(res, "valores", s.value)
	board, errBoard := fetch.Many(res, "consejoDirectores", s.director)
	if err := errors.Join(errHero, errWho, errHistory, errMission, errVision, errValues, errBoard); err != nil {
		return Page{}, fmt.Errorf("about: %w", err)
	}

	p := Page{
		Hero:        hero,
		WhoWeAre:    whoWeAre,
		History:     history,
		Mission:     mission,
		Vision:      vision,
		Values:      Values{Title: valuesTitle, Items: values},
		Board:       board,
		Unavailable: res.Unavailable(),
	}
	if cs, err := fetch.One(res, "communitySupport", s.communitySupport); err == nil {
		p.CommunitySupport = &cs
	}
	return p, nil
}

// LoadCommunitySupport loads the community support section on its own.
func (s *Service) LoadCommunitySupport(ctx context.Context) (CommunitySupport, error) {
	d := fetch.Resource("communitySupport", pathCommunitySupport).WithDefault(DefaultCommunitySupport())
	res := s.fetcher.FetchAll(ctx, d)
	cs, err := fetch.One(res, "communitySupport", s.communitySupport)
	if err != nil {
		return CommunitySupport{}, fmt.Errorf("community support: %w", err)
	}
	return cs, nil
}

func (s *Service) hero(r normalize.Record) Hero {
	rd := s.norm.Reader("about.hero", r)
	return Hero{Title: rd.String(fTitle), Description: rd.String(fDescription)}
}

func (s *Service) section(area string) func(normalize.Record) Section {
	return func(r normalize.Record) Section {
		rd := s.norm.Reader(area, r)
		return Section{
			Title:      rd.String(fTitle),
			Paragraphs: rd.Strings(fParagraphs),
			ImageSrc:   rd.Image(fImageSrc),
			ImageAlt:   rd.String(fImageAlt),
		}
	}
}

func (s *Service) statement(area string) func(normalize.Record) Statement {
	return func(r normalize.Record) Statement {
		rd := s.norm.Reader(area, r)
		return Statement{Title: rd.String(fTitle), Description: rd.Strings(fDescription)}
	}
}

func (s *Service) value(r normalize.Record) Value {
	rd := s.norm.Reader("about.valores", r)
	return Value{
		Title:       rd.String(fTitle),
		Description: rd.String(fDescription),
		Icon:        icon.ResolveOr(rd.String(fIcon), icon.PeopleArrows),
	}
}

func (s *Service) director(r normalize.Record) Director {
	rd := s.norm.Reader("about.consejoDirectores", r)
	return Director{
		ID:       rd.Int(fID),
		Name:     rd.String(fName),
		Position: rd.String(fPosition),
		ImageSrc: rd.Image(fImageSrc),
		ImageAlt: rd.String(fImageAlt),
	}
}

// communitySupport fills absent headings and lists from the static bundle.
func (s *Service) communitySupport(r normalize.Record) CommunitySupport {
	def := DefaultCommunitySupport()
	rd := s.norm.Reader("about.communitySupport", r)

	cs := CommunitySupport{
		Title:       rd.StringOr(fTitle, def.Title),
		Description: rd.StringOr(fDescription, def.Description),
		Categories:  def.Categories,
		Initiatives: def.Initiatives,
	}

	if rd.Has(fCategories) {
		cs.Categories = []Category{}
		for _, c := range rd.Each(fCategories) {
			name := c.String(fName)
			cs.Categories = append(cs.Categories, Category{
				ID:          idOrSlug(c, name),
				Name:        name,
				Icon:        icon.ResolveOr(c.String(fIcon), icon.HandHoldingHeart),
				Description: c.String(fDescription.Opt()),
			})
		}
	}
	if rd.Has(fInitiatives) {
		cs.Initiatives = []Initiative{}
		for _, in := range rd.Each(fInitiatives) {
			title := in.String(fTitle)
			category := in.Nested(fCategory).String(fName.Opt())
			if category == "" {
				category = in.String(fCategory)
			}
			cs.Initiatives = append(cs.Initiatives, Initiative{
				ID:          idOrSlug(in, title),
				Title:       title,
				Description: in.String(fDescription.Opt()),
				Impact:      in.String(fImpact),
				ImageURL:    in.Image(fImageSrc.Or("imageUrl").Opt()),
				Category:    category,
			})
		}
	}
	return cs
}

func idOrSlug(rd normalize.Reader, title string) string {
	if id := rd.Int(fID); id != 0 {
		return strconv.Itoa(id)
	}
	if v := rd.String(fID); v != "" {
		return v
	}
	return normalize.Slug(title)
}
