package fetch

import (
	"fmt"

	"portalapi/internal/content/normalize"
)

// Results maps descriptor keys to outcomes. Each concurrent branch of
// FetchAll owns exactly one slot.
type Results struct {
	descs    []Descriptor
	outcomes []Outcome
	index    map[string]int
}

func newResults(descs []Descriptor) *Results {
	index := make(map[string]int, len(descs))
	for i, d := range descs {
		if _, dup := index[d.Key]; dup {
			panic(fmt.Sprintf("fetch: duplicate descriptor key %q", d.Key))
		}
		index[d.Key] = i
	}
	return &Results{
		descs:    descs,
		outcomes: make([]Outcome, len(descs)),
		index:    index,
	}
}

// Outcome returns the outcome for key. Unknown keys report StatusFailed.
func (r *Results) Outcome(key string) Outcome {
	i, ok := r.index[key]
	if !ok {
		return Outcome{Status: StatusFailed, Err: fmt.Errorf("fetch: unknown descriptor key %q", key)}
	}
	return r.outcomes[i]
}

// Keys returns the descriptor keys in declaration order.
func (r *Results) Keys() []string {
	keys := make([]string, len(r.descs))
	for i, d := range r.descs {
		keys[i] = d.Key
	}
	return keys
}

// Err returns the first terminal outcome of a required descriptor, in
// declaration order, or nil.
func (r *Results) Err() error {
	for i, d := range r.descs {
		if d.Optional {
			continue
		}
		if o := r.outcomes[i]; o.Terminal() {
			return r.errorFor(i)
		}
	}
	return nil
}

// Unavailable lists optional descriptors whose outcome is terminal.
func (r *Results) Unavailable() []string {
	var keys []string
	for i, d := range r.descs {
		if d.Optional && r.outcomes[i].Terminal() {
			keys = append(keys, d.Key)
		}
	}
	return keys
}

// Fallbacks lists descriptors served from their static default.
func (r *Results) Fallbacks() []string {
	var keys []string
	for i, d := range r.descs {
		if r.outcomes[i].Status == StatusEmptyFallback {
			keys = append(keys, d.Key)
		}
	}
	return keys
}

func (r *Results) errorFor(i int) *Error {
	d, o := r.descs[i], r.outcomes[i]
	return &Error{Key: d.Key, Path: d.Path, Status: o.Status, HTTPStatus: o.HTTPStatus, Err: o.Err}
}

func (r *Results) terminal(key string) error {
	i, ok := r.index[key]
	if !ok {
		return &Error{Key: key, Status: StatusFailed, Err: fmt.Errorf("unknown descriptor key")}
	}
	return r.errorFor(i)
}

// One resolves a Single descriptor into T: normalized from the backend record
// on success, or the registered default on fallback.
func One[T any](r *Results, key string, norm func(normalize.Record) T) (T, error) {
	var zero T
	o := r.Outcome(key)
	switch o.Status {
	case StatusSuccess:
		return norm(o.Record), nil
	case StatusEmptyFallback:
		v, ok := o.Default.(T)
		if !ok {
			return zero, &Error{Key: key, Status: StatusFailed, Err: fmt.Errorf("static default is %T, want %T", o.Default, zero)}
		}
		return v, nil
	}
	return zero, r.terminal(key)
}

// Many resolves a collection descriptor into []T.
func Many[T any](r *Results, key string, norm func(normalize.Record) T) ([]T, error) {
	o := r.Outcome(key)
	switch o.Status {
	case StatusSuccess:
		out := make([]T, 0, len(o.Records))
		for _, rec := range o.Records {
			out = append(out, norm(rec))
		}
		return out, nil
	case StatusEmptyFallback:
		v, ok := o.Default.([]T)
		if !ok {
			return nil, &Error{Key: key, Status: StatusFailed, Err: fmt.Errorf("static default is %T, want %T", o.Default, []T(nil))}
		}
		return v, nil
	}
	return nil, r.terminal(key)
}
