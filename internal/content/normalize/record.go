// Package normalize maps raw content API records, whose field names may be
// snake_case, PascalCase or camelCase depending on the backend version, onto
// canonical typed values.
package normalize

import (
	"encoding/json"
	"fmt"
)

// Record is one backend object before normalization.
type Record map[string]any

// Decode parses a JSON object into a Record.
func Decode(raw []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return r, nil
}

// Single extracts one resource from a decoded body. A paginated envelope or a
// bare array yields its first element; a plain object is returned as is.
func Single(v any) Record {
	switch t := v.(type) {
	case map[string]any:
		if results, ok := t["results"]; ok {
			return Single(results)
		}
		return Record(t)
	case Record:
		return Single(map[string]any(t))
	case []any:
		if len(t) == 0 {
			return nil
		}
		return Single(t[0])
	}
	return nil
}

// List extracts a collection from a decoded body: the results of a paginated
// envelope, a bare array, or a single object wrapped as a one-element list.
func List(v any) []Record {
	switch t := v.(type) {
	case map[string]any:
		if results, ok := t["results"]; ok {
			return List(results)
		}
		return []Record{Record(t)}
	case Record:
		return List(map[string]any(t))
	case []any:
		out := make([]Record, 0, len(t))
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				out = append(out, Record(m))
			}
		}
		return out
	}
	return nil
}

// ID returns the numeric id of r and whether one was present.
func (r Record) ID() (int64, bool) {
	for _, k := range []string{"id", "Id", "ID"} {
		if v, ok := r[k]; ok {
			if n, ok := toInt(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}
