package layout

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerWithBase(base string) func(Header) Header {
	return func(h Header) Header {
		h.Exchange.Base = base
		return h
	}
}

func TestStore_FallbackNeverOverwritesLive(t *testing.T) {
	for i := 0; i < 2000; i++ {
		st := NewStore()
		start := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			st.update(true, headerWithBase("fallback"))
		}()
		go func() {
			defer wg.Done()
			<-start
			st.update(false, headerWithBase("live"))
		}()
		close(start)
		wg.Wait()

		h, version := st.Snapshot()
		require.Equal(t, "live", h.Exchange.Base, "iteration %d", i)
		require.Contains(t, []uint64{1, 2}, version)
	}
}

func TestStore_Update(t *testing.T) {
	st := NewStore()
	h, v := st.Snapshot()
	assert.Equal(t, initialHeader(), h)
	assert.Zero(t, v)

	assert.True(t, st.update(true, headerWithBase("default a")))
	assert.True(t, st.update(true, headerWithBase("default b")), "a fallback may replace a fallback")
	assert.Equal(t, uint64(2), st.Version())

	assert.True(t, st.update(false, headerWithBase("live")))
	assert.False(t, st.update(true, headerWithBase("default c")))

	h, v = st.Snapshot()
	assert.Equal(t, "live", h.Exchange.Base)
	assert.Equal(t, uint64(3), v)

	assert.True(t, st.update(false, headerWithBase("live 2")))
	assert.Equal(t, uint64(4), st.Version())
}

func TestStore_SnapshotPairsHeaderAndVersion(t *testing.T) {
	st := NewStore()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 500; i++ {
			n := i
			st.update(false, func(h Header) Header {
				h.Exchange.Rates = make([]Rate, n)
				return h
			})
		}
	}()
	for {
		select {
		case <-done:
			h, v := st.Snapshot()
			assert.Equal(t, uint64(500), v)
			assert.Len(t, h.Exchange.Rates, 500)
			return
		default:
			h, v := st.Snapshot()
			if v > 0 {
				require.Len(t, h.Exchange.Rates, int(v))
			}
		}
	}
}
