package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalapi/internal/drift"
	"portalapi/internal/page"
	"portalapi/internal/testutil"
)

func TestNewCheck_RetriesUntilReady(t *testing.T) {
	calls := 0
	c := newCheck("flaky", func(ctx context.Context) (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("backend 502")
		}
		return "ok", nil
	})

	r := c.run(context.Background(), 3)
	assert.Equal(t, page.StateReady, r.state)
	assert.Equal(t, 2, r.loads)
	assert.NoError(t, r.err)
}

func TestNewCheck_GivesUpAfterRetries(t *testing.T) {
	c := newCheck("down", func(ctx context.Context) (int, error) {
		return 0, errors.New("unreachable")
	})

	r := c.run(context.Background(), 2)
	assert.Equal(t, page.StateError, r.state)
	assert.Equal(t, 3, r.loads)
	assert.EqualError(t, r.err, "unreachable")
}

func TestSelectChecks(t *testing.T) {
	deps := testutil.NewDeps(testutil.DeadURL(t))
	all := allChecks(deps.Fetcher, deps.Normalizer)

	assert.Len(t, selectChecks(all, ""), len(all))

	got := selectChecks(all, "news, footer")
	require.Len(t, got, 2)
	assert.Equal(t, "footer", got[0].name)
	assert.Equal(t, "news", got[1].name)

	assert.Empty(t, selectChecks(all, "blog"))
}

func TestAllChecks_DeadBackend(t *testing.T) {
	deps := testutil.NewDeps(testutil.DeadURL(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	states := map[string]page.State{}
	for _, c := range allChecks(deps.Fetcher, deps.Normalizer) {
		states[c.name] = c.run(ctx, 0).state
	}

	// Sections with static defaults survive an unreachable backend.
	assert.Equal(t, page.StateReady, states["header"])
	assert.Equal(t, page.StateReady, states["footer"])
	assert.Equal(t, page.StateReady, states["news"])
	assert.Equal(t, page.StateReady, states["locations"])
	assert.Equal(t, page.StateError, states["home"])
	assert.Equal(t, page.StateError, states["products"])
	assert.Equal(t, page.StateReady, states["menu"], "the menu serves its bundled fallback")
	assert.Equal(t, page.StateReady, states["contacts"])
	assert.Equal(t, page.StateError, states["saving-tips"])
	assert.Equal(t, page.StateError, states["rights-and-duties"])
	assert.Equal(t, page.StateError, states["policies"])
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	failed := report(&buf, []result{
		{name: "header", state: page.StateReady, loads: 1},
		{name: "home", state: page.StateError, loads: 2, err: errors.New("fetch slider: http_error")},
	}, []drift.Entry{
		{Area: "about.hero", Field: "title", Reason: "missing", Aliases: []string{"title", "Title"}, Occurrences: 3},
	})

	assert.Equal(t, 1, failed)
	out := buf.String()
	assert.Contains(t, out, "fetch slider: http_error")
	assert.Contains(t, out, "1 normalization gaps")
	assert.Contains(t, out, "about.hero")
	assert.Contains(t, out, "title,Title")
}
