// Package paginate follows `next` cursors of the content API's paginated
// envelope until a collection is fully materialized.
package paginate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"go.uber.org/zap"

	"portalapi/internal/content/normalize"
)

// DefaultMaxPages bounds a single collection walk.
const DefaultMaxPages = 100

var (
	// ErrPageLimit is returned when a collection has more pages than allowed.
	ErrPageLimit = errors.New("paginate: page limit exceeded")
	// ErrCycle is returned when a next cursor points at an already visited page.
	ErrCycle = errors.New("paginate: next cursor cycle")
)

// Getter fetches one page by endpoint path or absolute URL.
type Getter interface {
	Get(ctx context.Context, ref string) (json.RawMessage, error)
}

// Page is the content API's paginated envelope.
type Page struct {
	Count    int                `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
	Results  []normalize.Record `json:"results"`
}

type Collector struct {
	getter   Getter
	maxPages int
	logger   *zap.Logger
}

func NewCollector(getter Getter, maxPages int, logger *zap.Logger) *Collector {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{getter: getter, maxPages: maxPages, logger: logger}
}

// Collect walks the collection starting at start and returns every record
// ordered by ascending numeric id. Records repeated across pages are kept
// once. Any failing page fails the whole walk; nothing partial is returned.
func (c *Collector) Collect(ctx context.Context, start string) ([]normalize.Record, error) {
	var all []normalize.Record
	visited := make(map[string]bool)
	ref := start

	for pages := 0; ref != ""; pages++ {
		if pages >= c.maxPages {
			return nil, fmt.Errorf("%w: %d pages from %s", ErrPageLimit, c.maxPages, start)
		}
		if visited[ref] {
			return nil, fmt.Errorf("%w: %s", ErrCycle, ref)
		}
		visited[ref] = true

		raw, err := c.getter.Get(ctx, ref)
		if err != nil {
			return nil, err
		}

		page, err := decodePage(raw)
		if err != nil {
			return nil, fmt.Errorf("paginate %s: %w", ref, err)
		}
		all = append(all, page.Results...)

		next := ""
		if page.Next != nil {
			next = resolveNext(ref, *page.Next)
		}
		c.logger.Debug("collected page",
			zap.String("ref", ref),
			zap.Int("results", len(page.Results)),
			zap.Int("count", page.Count),
			zap.Bool("has_next", next != ""))
		ref = next
	}

	return SortByID(all), nil
}

// decodePage accepts the paginated envelope and, for endpoints that skip
// pagination, a bare array.
func decodePage(raw json.RawMessage) (Page, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Page{}, err
	}
	switch t := v.(type) {
	case []any:
		return Page{Count: len(t), Results: normalize.List(t)}, nil
	case map[string]any:
		var p Page
		if err := json.Unmarshal(raw, &p); err != nil {
			return Page{}, err
		}
		if p.Next != nil && *p.Next == "" {
			p.Next = nil
		}
		return p, nil
	}
	return Page{}, errors.New("page is neither an envelope nor an array")
}

// resolveNext makes a relative next cursor absolute against the current page.
func resolveNext(current, next string) string {
	n, err := url.Parse(next)
	if err != nil || n.IsAbs() {
		return next
	}
	base, err := url.Parse(current)
	if err != nil || !base.IsAbs() {
		return next
	}
	return base.ResolveReference(n).String()
}

// SortByID orders records by ascending numeric id, keeping the first
// occurrence of each id. Records without an id keep their relative order
// after all records that have one.
func SortByID(in []normalize.Record) []normalize.Record {
	out := make([]normalize.Record, 0, len(in))
	seen := make(map[int64]bool, len(in))
	for _, r := range in {
		if id, ok := r.ID(); ok {
			if seen[id] {
				continue
			}
			seen[id] = true
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := out[i].ID()
		b, bok := out[j].ID()
		switch {
		case aok && bok:
			return a < b
		case aok:
			return true
		default:
			return false
		}
	})
	return out
}
