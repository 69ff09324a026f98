package about

import (
	"context"
	"fmt"

	"portalapi/internal/content/fetch"
	"portalapi/internal/content/normalize"
	"portalapi/internal/icon"
)

const (
	pathFinancialStatements = "/about/financial-statements/"
	pathMemories            = "/about/memories/"
	pathPolicies            = "/about/policies/"
)

var (
	fYears           = normalize.F("years").Opt()
	fYear            = normalize.F("year")
	fDocuments       = normalize.F("documents").Opt()
	fAudited         = normalize.F("audited").Opt()
	fQuarterly       = normalize.F("quarterly").Opt()
	fQuarter         = normalize.F("quarter").Opt()
	fDocTitle        = normalize.F("title").Opt()
	fDocDescription  = normalize.F("description").Opt()
	fURL             = normalize.F("url").Opt()
	fLastUpdate      = normalize.F("lastUpdate").Opt()
	fDownloadText    = normalize.F("downloadText").Opt()
	fLastUpdateText  = normalize.F("lastUpdateText").Opt()
	fAllPoliciesText = normalize.F("allPoliciesText").Opt()
)

// FinancialStatements lists the audited and quarterly reports per year,
// newest year first.
type FinancialStatements struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Years       []StatementsYear `json:"years"`
}

type StatementsYear struct {
	Year      int               `json:"year"`
	Audited   []Document        `json:"audited"`
	Quarterly []QuarterlyReport `json:"quarterly"`
}

// Document is one downloadable file. URL is empty when the backend holds no
// file for it.
type Document struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	LastUpdate  string `json:"lastUpdate,omitempty"`
}

type QuarterlyReport struct {
	Document
	Quarter string `json:"quarter"`
}

type Memories struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Years       []MemoryYear `json:"years"`
}

type MemoryYear struct {
	Year      int        `json:"year"`
	Documents []Document `json:"documents"`
}

type Policies struct {
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	DownloadText    string           `json:"downloadText"`
	LastUpdateText  string           `json:"lastUpdateText"`
	AllPoliciesText string           `json:"allPoliciesText"`
	Categories      []PolicyCategory `json:"categories"`
}

type PolicyCategory struct {
	Title       string     `json:"title"`
	Icon        icon.Tag   `json:"icon"`
	Description string     `json:"description"`
	Documents   []Document `json:"documents"`
}

func (s *Service) LoadFinancialStatements(ctx context.Context) (FinancialStatements, error) {
	return document(ctx, s, "financialStatements", pathFinancialStatements, s.financialStatements)
}

func (s *Service) LoadMemories(ctx context.Context) (Memories, error) {
	return document(ctx, s, "memories", pathMemories, s.memories)
}

func (s *Service) LoadPolicies(ctx context.Context) (Policies, error) {
	return document(ctx, s, "policies", pathPolicies, s.policies)
}

// document loads one of the document libraries. None has a static default.
func document[T any](ctx context.Context, s *Service, key, path string, build func(normalize.Reader) T) (T, error) {
	res := s.fetcher.FetchAll(ctx, fetch.Resource(key, path))
	v, err := fetch.One(res, key, func(r normalize.Record) T {
		return build(s.norm.Reader("about."+key, r))
	})
	if err != nil {
		return v, fmt.Errorf("about %s: %w", key, err)
	}
	return v, nil
}

func (s *Service) financialStatements(rd normalize.Reader) FinancialStatements {
	out := FinancialStatements{Title: rd.String(fTitle), Description: rd.String(fDocDescription), Years: []StatementsYear{}}
	for _, y := range rd.Each(fYears) {
		docs := y.Nested(fDocuments)
		year := StatementsYear{Year: y.Int(fYear), Audited: []Document{}, Quarterly: []QuarterlyReport{}}
		for _, d := range docs.Each(fAudited) {
			year.Audited = append(year.Audited, s.file(d))
		}
		for _, d := range docs.Each(fQuarterly) {
			year.Quarterly = append(year.Quarterly, QuarterlyReport{Document: s.file(d), Quarter: d.String(fQuarter)})
		}
		out.Years = append(out.Years, year)
	}
	return out
}

func (s *Service) memories(rd normalize.Reader) Memories {
	out := Memories{Title: rd.String(fTitle), Description: rd.String(fDocDescription), Years: []MemoryYear{}}
	for _, y := range rd.Each(fYears) {
		year := MemoryYear{Year: y.Int(fYear), Documents: []Document{}}
		for _, d := range y.Each(fDocuments) {
			year.Documents = append(year.Documents, s.file(d))
		}
		out.Years = append(out.Years, year)
	}
	return out
}

func (s *Service) policies(rd normalize.Reader) Policies {
	out := Policies{
		Title:           rd.String(fTitle),
		Description:     rd.String(fDocDescription),
		DownloadText:    rd.String(fDownloadText),
		LastUpdateText:  rd.String(fLastUpdateText),
		AllPoliciesText: rd.String(fAllPoliciesText),
		Categories:      []PolicyCategory{},
	}
	for _, c := range rd.Each(fCategories) {
		cat := PolicyCategory{
			Title:       c.String(fTitle),
			Icon:        icon.Resolve(c.String(fIcon)),
			Description: c.String(fDocDescription),
			Documents:   []Document{},
		}
		for _, d := range c.Each(fDocuments) {
			cat.Documents = append(cat.Documents, s.file(d))
		}
		out.Categories = append(out.Categories, cat)
	}
	return out
}

func (s *Service) file(rd normalize.Reader) Document {
	return Document{
		Title:       rd.String(fDocTitle),
		Description: rd.String(fDocDescription),
		URL:         rd.Image(fURL),
		LastUpdate:  rd.String(fLastUpdate),
	}
}
