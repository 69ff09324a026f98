package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Gap is a canonical field that no known alias supplied.
type Gap struct {
	Area    string
	Field   string
	Aliases []string
	// Reason is "missing" when no alias was present and "type" when aliases
	// were present but none held a usable value.
	Reason string
}

type GapReporter interface {
	ReportGap(Gap)
}

// GapFunc adapts a function to GapReporter.
type GapFunc func(Gap)

func (f GapFunc) ReportGap(g Gap) { f(g) }

type Normalizer struct {
	emptyAsAbsent bool
	gaps          GapReporter
	mediaBase     string
}

type Option func(*Normalizer)

// WithEmptyAsAbsent controls whether an empty string counts as "absent" and
// falls through to the next alias or the default. It is on by default.
func WithEmptyAsAbsent(v bool) Option {
	return func(n *Normalizer) { n.emptyAsAbsent = v }
}

func WithGapReporter(r GapReporter) Option {
	return func(n *Normalizer) { n.gaps = r }
}

func New(opts ...Option) *Normalizer {
	n := &Normalizer{emptyAsAbsent: true}
	for _, o := range opts {
		o(n)
	}
	return n
}

// EmptyAsAbsent reports the configured empty-string policy.
func (n *Normalizer) EmptyAsAbsent() bool { return n.emptyAsAbsent }

// Reader reads canonical fields out of r. area names the content area in
// gap reports, e.g. "about.hero".
func (n *Normalizer) Reader(area string, r Record) Reader {
	return Reader{n: n, area: area, rec: r}
}

// Reader is a view over one Record. Every accessor is total: it returns the
// declared default when no alias yields a value.
type Reader struct {
	n    *Normalizer
	area string
	rec  Record
}

// Present reports whether the underlying record exists.
func (rd Reader) Present() bool { return rd.rec != nil }

// Has reports whether any alias of f carries a non-null value. It never
// reports a gap.
func (rd Reader) Has(f Field) bool {
	for _, alias := range f.Aliases {
		if v, ok := rd.rec[alias]; ok && v != nil {
			return true
		}
	}
	return false
}

// Raw returns the underlying record.
func (rd Reader) Raw() Record { return rd.rec }

func (rd Reader) String(f Field) string { return rd.StringOr(f, "") }

func (rd Reader) StringOr(f Field, def string) string {
	v, ok := lookup(rd, f, func(v any) (string, bool) { return toString(v, rd.n.emptyAsAbsent) })
	if !ok {
		return def
	}
	return v
}

// Strings accepts a JSON array of scalars or a single non-empty string.
func (rd Reader) Strings(f Field) []string {
	v, ok := lookup(rd, f, func(v any) ([]string, bool) {
		switch t := v.(type) {
		case []any:
			out := make([]string, 0, len(t))
			for _, item := range t {
				if s, ok := toString(item, true); ok {
					out = append(out, s)
				}
			}
			return out, true
		case string:
			if t == "" {
				return nil, false
			}
			return []string{t}, true
		}
		return nil, false
	})
	if !ok {
		return []string{}
	}
	return v
}

func (rd Reader) Int(f Field) int {
	v, ok := lookup(rd, f, func(v any) (int64, bool) { return toInt(v) })
	if !ok {
		return 0
	}
	return int(v)
}

func (rd Reader) Float(f Field) float64 {
	v, ok := lookup(rd, f, toFloat)
	if !ok {
		return 0
	}
	return v
}

func (rd Reader) Bool(f Field) bool { return rd.BoolOr(f, false) }

func (rd Reader) BoolOr(f Field, def bool) bool {
	v, ok := lookup(rd, f, func(v any) (bool, bool) {
		switch t := v.(type) {
		case bool:
			return t, true
		case string:
			b, err := strconv.ParseBool(t)
			return b, err == nil
		}
		return false, false
	})
	if !ok {
		return def
	}
	return v
}

// Record returns a nested object, or nil.
func (rd Reader) Record(f Field) Record {
	v, ok := lookup(rd, f, func(v any) (Record, bool) {
		m, ok := v.(map[string]any)
		return Record(m), ok
	})
	if !ok {
		return nil
	}
	return v
}

// Records returns a nested array of objects; non-object items are skipped.
func (rd Reader) Records(f Field) []Record {
	v, ok := lookup(rd, f, func(v any) ([]Record, bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		return List(arr), true
	})
	if !ok {
		return []Record{}
	}
	return v
}

// Nested returns a Reader over a nested object.
func (rd Reader) Nested(f Field) Reader {
	return Reader{n: rd.n, area: rd.area + "." + f.Name, rec: rd.Record(f)}
}

// Each returns Readers over a nested array of objects.
func (rd Reader) Each(f Field) []Reader {
	recs := rd.Records(f)
	out := make([]Reader, len(recs))
	for i, r := range recs {
		out[i] = Reader{n: rd.n, area: rd.area + "." + f.Name, rec: r}
	}
	return out
}

func lookup[T any](rd Reader, f Field, conv func(any) (T, bool)) (T, bool) {
	var zero T
	if rd.rec == nil {
		return zero, false
	}
	seen := false
	for _, alias := range f.Aliases {
		raw, ok := rd.rec[alias]
		if !ok || raw == nil {
			continue
		}
		seen = true
		if v, ok := conv(raw); ok {
			return v, true
		}
	}
	if !f.Optional && rd.n != nil && rd.n.gaps != nil {
		reason := "missing"
		if seen {
			reason = "type"
		}
		rd.n.gaps.ReportGap(Gap{Area: rd.area, Field: f.Name, Aliases: f.Aliases, Reason: reason})
	}
	return zero, false
}

func toString(v any, emptyAsAbsent bool) (string, bool) {
	switch t := v.(type) {
	case string:
		if t == "" && emptyAsAbsent {
			return "", false
		}
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

func toInt(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case int:
		return int64(t), true
	case int64:
		return t, true
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return n, err == nil
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}
