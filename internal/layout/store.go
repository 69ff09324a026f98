package layout

import "sync/atomic"

// snapshot is one published state. Header, version and provenance change
// together.
type snapshot struct {
	header  Header
	version uint64
	// live is set once backend data has been published.
	live bool
}

// Store holds the current header for the whole process. The Service is its
// only writer; handlers and other facades read it.
type Store struct {
	cur atomic.Pointer[snapshot]
}

func NewStore() *Store {
	s := &Store{}
	s.cur.Store(&snapshot{header: initialHeader()})
	return s
}

// Header returns the current snapshot. Callers must not mutate its slices
// or maps.
func (s *Store) Header() Header { return s.cur.Load().header }

// Version counts replacements; zero means the initial state.
func (s *Store) Version() uint64 { return s.cur.Load().version }

// Snapshot returns header and version from the same publication.
func (s *Store) Snapshot() (Header, uint64) {
	snap := s.cur.Load()
	return snap.header, snap.version
}

// update replaces the header with fn applied to the current one. A fallback
// update is dropped once live data has been published. It reports whether
// the store changed.
func (s *Store) update(fellBack bool, fn func(Header) Header) bool {
	for {
		old := s.cur.Load()
		if fellBack && old.live {
			return false
		}
		next := &snapshot{
			header:  fn(old.header),
			version: old.version + 1,
			live:    old.live || !fellBack,
		}
		if s.cur.CompareAndSwap(old, next) {
			return true
		}
	}
}
