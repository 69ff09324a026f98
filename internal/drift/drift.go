// Package drift aggregates normalization gaps: canonical fields that no
// known backend alias supplied. A steady stream of gaps for one field means
// the content API contract has moved.
package drift

import (
	"context"
	"time"
)

type Key struct {
	Area   string
	Field  string
	Reason string
}

type Entry struct {
	Area        string    `json:"area"`
	Field       string    `json:"field"`
	Reason      string    `json:"reason"`
	Aliases     []string  `json:"aliases"`
	Occurrences int64     `json:"occurrences"`
	FirstSeen   time.Time `json:"firstSeen"`
	LastSeen    time.Time `json:"lastSeen"`
}

func (e Entry) Key() Key { return Key{Area: e.Area, Field: e.Field, Reason: e.Reason} }

// Store persists aggregated gaps. Upsert adds Occurrences to the stored
// count and widens the seen window.
type Store interface {
	Upsert(ctx context.Context, entries []Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
}
