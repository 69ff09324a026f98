package drift

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"portalapi/internal/content/normalize"
)

// Tracker implements normalize.GapReporter. It is safe for concurrent use by
// every in-flight page load.
type Tracker struct {
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	totals  map[Key]*Entry
	pending map[Key]*Entry
}

var _ normalize.GapReporter = (*Tracker)(nil)

func NewTracker(logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		logger:  logger,
		now:     time.Now,
		totals:  make(map[Key]*Entry),
		pending: make(map[Key]*Entry),
	}
}

func (t *Tracker) ReportGap(g normalize.Gap) {
	now := t.now()
	k := Key{Area: g.Area, Field: g.Field, Reason: g.Reason}

	t.mu.Lock()
	defer t.mu.Unlock()

	first := bump(t.totals, k, g.Aliases, now)
	bump(t.pending, k, g.Aliases, now)

	if first {
		t.logger.Info("normalization gap",
			zap.String("area", g.Area),
			zap.String("field", g.Field),
			zap.String("reason", g.Reason),
			zap.Strings("aliases", g.Aliases),
		)
		return
	}
	t.logger.Debug("normalization gap", zap.String("area", g.Area), zap.String("field", g.Field))
}

func bump(m map[Key]*Entry, k Key, aliases []string, now time.Time) bool {
	e, ok := m[k]
	if !ok {
		m[k] = &Entry{
			Area:        k.Area,
			Field:       k.Field,
			Reason:      k.Reason,
			Aliases:     append([]string(nil), aliases...),
			Occurrences: 1,
			FirstSeen:   now,
			LastSeen:    now,
		}
		return true
	}
	e.Occurrences++
	e.LastSeen = now
	return false
}

// Snapshot returns every gap seen since start, most frequent first.
func (t *Tracker) Snapshot() []Entry {
	t.mu.Lock()
	out := copyEntries(t.totals)
	t.mu.Unlock()

	sortEntries(out)
	return out
}

// Flush writes the gaps seen since the previous successful flush. On failure
// the pending counts are kept for the next attempt.
func (t *Tracker) Flush(ctx context.Context, store Store) (int, error) {
	t.mu.Lock()
	batch := copyEntries(t.pending)
	t.pending = make(map[Key]*Entry)
	t.mu.Unlock()

	if len(batch) == 0 {
		return 0, nil
	}
	sortEntries(batch)

	if err := store.Upsert(ctx, batch); err != nil {
		t.mu.Lock()
		for i := range batch {
			merge(t.pending, batch[i])
		}
		t.mu.Unlock()
		return 0, fmt.Errorf("drift: flush %d gaps: %w", len(batch), err)
	}
	return len(batch), nil
}

// Run flushes on every tick until ctx is done, then flushes once more.
func (t *Tracker) Run(ctx context.Context, store Store, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			final, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			if _, err := t.Flush(final, store); err != nil {
				t.logger.Warn("final drift flush failed", zap.Error(err))
			}
			cancel()
			return
		case <-ticker.C:
			n, err := t.Flush(ctx, store)
			if err != nil {
				t.logger.Warn("drift flush failed", zap.Error(err))
				continue
			}
			if n > 0 {
				t.logger.Debug("drift flushed", zap.Int("entries", n))
			}
		}
	}
}

func merge(m map[Key]*Entry, e Entry) {
	cur, ok := m[e.Key()]
	if !ok {
		m[e.Key()] = &e
		return
	}
	cur.Occurrences += e.Occurrences
	if e.FirstSeen.Before(cur.FirstSeen) {
		cur.FirstSeen = e.FirstSeen
	}
	if e.LastSeen.After(cur.LastSeen) {
		cur.LastSeen = e.LastSeen
	}
}

func copyEntries(m map[Key]*Entry) []Entry {
	out := make([]Entry, 0, len(m))
	for _, e := range m {
		c := *e
		c.Aliases = append([]string(nil), e.Aliases...)
		out = append(out, c)
	}
	return out
}

func sortEntries(es []Entry) {
	sort.Slice(es, func(i, j int) bool {
		if es[i].Occurrences != es[j].Occurrences {
			return es[i].Occurrences > es[j].Occurrences
		}
		if es[i].Area != es[j].Area {
			return es[i].Area < es[j].Area
		}
		if es[i].Field != es[j].Field {
			return es[i].Field < es[j].Field
		}
		return es[i].Reason < es[j].Reason
	})
}
