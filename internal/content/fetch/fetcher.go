package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portalapi/internal/content/normalize"
	"portalapi/internal/content/paginate"
	"portalapi/internal/platform/contentapi"
)

// Getter is the transport port, satisfied by *contentapi.Client.
type Getter interface {
	Get(ctx context.Context, ref string) (json.RawMessage, error)
}

type Fetcher struct {
	getter    Getter
	collector *paginate.Collector
	mock      bool
	logger    *zap.Logger
}

type Option func(*options)

type options struct {
	mock     bool
	maxPages int
	logger   *zap.Logger
}

// WithMock serves static defaults without touching the network.
func WithMock(v bool) Option { return func(o *options) { o.mock = v } }

// WithMaxPages bounds paginated walks.
func WithMaxPages(n int) Option { return func(o *options) { o.maxPages = n } }

func WithLogger(l *zap.Logger) Option { return func(o *options) { o.logger = l } }

func New(getter Getter, opts ...Option) *Fetcher {
	o := options{maxPages: paginate.DefaultMaxPages, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Fetcher{
		getter:    getter,
		collector: paginate.NewCollector(getter, o.maxPages, o.logger),
		mock:      o.mock,
		logger:    o.logger,
	}
}

// Mock reports whether the fetcher serves static defaults only.
func (f *Fetcher) Mock() bool { return f.mock }

// FetchAll issues every descriptor concurrently and returns once all have
// settled. Each descriptor is attempted exactly once. Keys must be unique.
func (f *Fetcher) FetchAll(ctx context.Context, descs ...Descriptor) *Results {
	res := newResults(descs)

	var g errgroup.Group
	for i, d := range descs {
		g.Go(func() error {
			res.outcomes[i] = f.Fetch(ctx, d)
			return nil
		})
	}
	_ = g.Wait()

	return res
}

// Fetch settles a single descriptor.
func (f *Fetcher) Fetch(ctx context.Context, d Descriptor) Outcome {
	if f.mock {
		if d.Default != nil {
			return Outcome{Status: StatusEmptyFallback, Default: d.Default}
		}
		return Outcome{Status: StatusFailed, Err: ErrNoStaticDefault}
	}

	out, err := f.request(ctx, d)
	if err == nil {
		return out
	}
	o := f.classify(ctx, d, err)
	f.log(d, o)
	return o
}

func (f *Fetcher) request(ctx context.Context, d Descriptor) (Outcome, error) {
	if d.Kind == PaginatedCollection {
		recs, err := f.collector.Collect(ctx, d.Path)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Status: StatusSuccess, Records: recs}, nil
	}

	raw, err := f.getter.Get(ctx, d.Path)
	if err != nil {
		return Outcome{}, err
	}
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return Outcome{}, &contentapi.DecodeError{URL: d.Path, Err: err}
	}
	if d.Kind == Collection {
		return Outcome{Status: StatusSuccess, Records: normalize.List(body)}, nil
	}
	return Outcome{Status: StatusSuccess, Record: normalize.Single(body)}, nil
}

// classify applies the fallback policy. Unreachable backends and 404s are
// absorbed by a registered default; everything else is terminal.
func (f *Fetcher) classify(ctx context.Context, d Descriptor, err error) Outcome {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return Outcome{Status: StatusFailed, Err: err}
	}

	status := contentapi.StatusOf(err)
	switch {
	case contentapi.IsNetwork(err):
		if d.Default != nil {
			return Outcome{Status: StatusEmptyFallback, Default: d.Default, Err: err}
		}
		return Outcome{Status: StatusNetworkFailure, Err: err}
	case status == http.StatusNotFound:
		if d.Default != nil {
			return Outcome{Status: StatusEmptyFallback, Default: d.Default, HTTPStatus: status, Err: err}
		}
		return Outcome{Status: StatusHTTPError, HTTPStatus: status, Err: err}
	case status != 0:
		return Outcome{Status: StatusHTTPError, HTTPStatus: status, Err: err}
	}
	return Outcome{Status: StatusFailed, Err: err}
}

func (f *Fetcher) log(d Descriptor, o Outcome) {
	fields := []zap.Field{
		zap.String("key", d.Key),
		zap.String("path", d.Path),
		zap.Stringer("status", o.Status),
		zap.Error(o.Err),
	}
	if o.HTTPStatus != 0 {
		fields = append(fields, zap.Int("http_status", o.HTTPStatus))
	}
	switch {
	case o.Status == StatusEmptyFallback:
		f.logger.Warn("serving static default", fields...)
	case d.Optional:
		f.logger.Warn("optional content unavailable", fields...)
	case errors.Is(o.Err, context.Canceled):
		f.logger.Debug("fetch abandoned", fields...)
	default:
		f.logger.Error("content fetch failed", fields...)
	}
}
