package news

import (
	"context"
	"errors"
	"fmt"

	"portalapi/internal/content/fetch"
	"portalapi/internal/content/normalize"
	"portalapi/internal/page"
)

const (
	pathNews       = "/news/"
	pathPromotions = "/news/promotions/"
)

var (
	fID           = normalize.F("id").Opt()
	fImage        = normalize.F("image")
	fTitle        = normalize.F("title")
	fDescription  = normalize.F("description")
	fDate         = normalize.F("date").Or("published_at", "created_at")
	fStartDate    = normalize.F("fechaInicio").Or("start_date", "date")
	fEndDate      = normalize.F("fechaFin").Opt()
	fValidUntil   = normalize.F("validUntil").Opt()
	fAuthor       = normalize.F("author").Opt()
	fCategory     = normalize.F("category").Opt()
	fTags         = normalize.F("tags").Opt()
	fFullContent  = normalize.F("fullContent").Or("content").Opt()
	fMedia        = normalize.F("media").Opt()
	fRelatedLinks = normalize.F("relatedLinks").Opt()
	fTerms        = normalize.F("terms").Opt()
	fActive       = normalize.F("isActive").Opt()
	fType         = normalize.F("type").Opt()
	fContent      = normalize.F("content").Opt()
	fURL          = normalize.F("url")
	fCaption      = normalize.F("caption").Opt()
	fLinkTitle    = normalize.F("title").Opt()
	fLinkDesc     = normalize.F("description").Opt()
)

type Service struct {
	fetcher *fetch.Fetcher
	norm    *normalize.Normalizer
}

func NewService(fetcher *fetch.Fetcher, norm *normalize.Normalizer) *Service {
	return &Service{fetcher: fetcher, norm: norm}
}

func newsDescriptor() fetch.Descriptor {
	return fetch.Paginated("news", pathNews).WithDefault(DefaultArticles())
}

func promotionsDescriptor() fetch.Descriptor {
	return fetch.Paginated("promotions", pathPromotions).WithDefault(DefaultPromotions())
}

// Load fetches the news feed and the promotions board together.
func (s *Service) Load(ctx context.Context) (Page, error) {
	res := s.fetcher.FetchAll(ctx, newsDescriptor(), promotionsDescriptor())
	if err := res.Err(); err != nil {
		return Page{}, fmt.Errorf("news: %w", err)
	}
	feed, errNews := s.articles(res)
	promos, errPromos := s.promotions(res)
	if err := errors.Join(errNews, errPromos); err != nil {
		return Page{}, fmt.Errorf("news: %w", err)
	}
	return Page{News: feed, Promotions: promos}, nil
}

func (s *Service) News(ctx context.Context) (Feed[Article], error) {
	feed, err := s.articles(s.fetcher.FetchAll(ctx, newsDescriptor()))
	if err != nil {
		return Feed[Article]{}, fmt.Errorf("news: %w", err)
	}
	return feed, nil
}

func (s *Service) Promotions(ctx context.Context) (Feed[Promotion], error) {
	feed, err := s.promotions(s.fetcher.FetchAll(ctx, promotionsDescriptor()))
	if err != nil {
		return Feed[Promotion]{}, fmt.Errorf("promotions: %w", err)
	}
	return feed, nil
}

func (s *Service) ArticleByID(ctx context.Context, id int) (Article, error) {
	feed, err := s.News(ctx)
	if err != nil {
		return Article{}, err
	}
	for _, a := range feed.Slides {
		if a.ID == id {
			return a, nil
		}
	}
	return Article{}, fmt.Errorf("article %d: %w", id, page.ErrNotFound)
}

func (s *Service) PromotionBySlug(ctx context.Context, slug string) (Promotion, error) {
	feed, err := s.Promotions(ctx)
	if err != nil {
		return Promotion{}, err
	}
	for _, p := range feed.Slides {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Promotion{}, fmt.Errorf("promotion %q: %w", slug, page.ErrNotFound)
}

func (s *Service) articles(res *fetch.Results) (Feed[Article], error) {
	items, err := fetch.Many(res, "news", s.article)
	if err != nil {
		return Feed[Article]{}, err
	}
	return Feed[Article]{Banner: staticDefaults.NewsBanner, Slides: items}, nil
}

// promotions keeps active promotions. The static default list is served as
// is.
func (s *Service) promotions(res *fetch.Results) (Feed[Promotion], error) {
	items, err := fetch.Many(res, "promotions", s.promotion)
	if err != nil {
		return Feed[Promotion]{}, err
	}
	if o := res.Outcome("promotions"); o.Status == fetch.StatusSuccess {
		active := make([]Promotion, 0, len(items))
		for i, rec := range o.Records {
			if s.norm.Reader("news.promotions", rec).Bool(fActive) {
				active = append(active, items[i])
			}
		}
		items = active
	}
	return Feed[Promotion]{Banner: staticDefaults.PromotionsBanner, Slides: items}, nil
}

func (s *Service) article(r normalize.Record) Article {
	rd := s.norm.Reader("news.articles", r)
	return Article{
		ID:           rd.Int(fID),
		Image:        rd.Image(fImage),
		Title:        rd.String(fTitle),
		Description:  rd.String(fDescription),
		Date:         rd.String(fDate),
		Author:       rd.String(fAuthor),
		Category:     rd.String(fCategory),
		Tags:         rd.Strings(fTags),
		FullContent:  blocks(rd, fFullContent),
		Media:        media(rd),
		RelatedLinks: links(rd),
	}
}

func (s *Service) promotion(r normalize.Record) Promotion {
	rd := s.norm.Reader("news.promotions", r)
	title := rd.String(fTitle)
	p := Promotion{
		ID:           rd.Int(fID),
		Image:        rd.Image(fImage),
		Title:        title,
		Description:  rd.String(fDescription),
		Date:         rd.String(fStartDate),
		Slug:         normalize.Slug(title),
		ValidUntil:   rd.String(fValidUntil),
		Category:     rd.String(fCategory),
		Tags:         rd.Strings(fTags),
		Content:      blocks(rd, fFullContent),
		Media:        media(rd),
		RelatedLinks: links(rd),
		Terms:        rd.Strings(fTerms),
	}
	if p.ValidUntil == "" {
		p.ValidUntil = rd.String(fEndDate)
	}
	return p
}

// blocks reads rich content. A block's content is a string, or a list of
// strings for the list type.
func blocks(rd normalize.Reader, f normalize.Field) []Block {
	out := []Block{}
	for _, b := range rd.Each(f) {
		blk := Block{Type: b.StringOr(fType, "paragraph")}
		if blk.Type == "list" {
			blk.Items = b.Strings(fContent)
		} else {
			blk.Text = b.String(fContent)
		}
		out = append(out, blk)
	}
	return out
}

func media(rd normalize.Reader) []Media {
	out := []Media{}
	for _, m := range rd.Each(fMedia) {
		out = append(out, Media{Type: m.StringOr(fType, "image"), URL: m.Image(fURL), Caption: m.String(fCaption)})
	}
	return out
}

func links(rd normalize.Reader) []Link {
	out := []Link{}
	for _, l := range rd.Each(fRelatedLinks) {
		out = append(out, Link{Title: l.String(fLinkTitle), URL: l.String(fURL), Description: l.String(fLinkDesc)})
	}
	return out
}
