package observability_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NavigationHooks(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.NavigationHooks()
	ctx := context.Background()

	hooks.OnSelect(ctx, &domain.NavigationEvent{FromID: "start", ToID: "agent-memory"})
	hooks.OnSelect(ctx, &domain.NavigationEvent{FromID: "agent-memory", ToID: "wesichain-agent"})
	hooks.OnResult(ctx, &domain.NavigationEvent{ToID: "wesichain-agent"})
	hooks.OnBack(ctx, &domain.NavigationEvent{})
	hooks.OnReset(ctx, &domain.NavigationEvent{})

	count, err := testutil.GatherAndCount(m.Registry(), "wayfinder_selections_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	expected := `
# HELP wayfinder_results_total Recommendations reached, by result id.
# TYPE wayfinder_results_total counter
wayfinder_results_total{result="wesichain-agent"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), stringsReader(expected), "wayfinder_results_total"))
}

func TestMetrics_SearchHooksAndHandler(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.SearchHooks()

	hooks.OnResults(&domain.LookupEvent{Hits: 3, Duration: 2 * time.Millisecond})
	hooks.OnFailure(&domain.LookupEvent{Duration: time.Millisecond})
	hooks.OnStale(&domain.LookupEvent{})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `wayfinder_search_lookups_total{outcome="ok"} 1`)
	assert.Contains(t, text, `wayfinder_search_lookups_total{outcome="failed"} 1`)
	assert.Contains(t, text, `wayfinder_search_lookups_total{outcome="stale"} 1`)
	assert.Contains(t, text, "wayfinder_search_duration_seconds_count 2")
}

func TestMergeLifecycle(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{OnSelect: func(context.Context, *domain.NavigationEvent) { calls = append(calls, "a") }}
	b := domain.LifecycleHooks{
		OnSelect: func(context.Context, *domain.NavigationEvent) { calls = append(calls, "b") },
		OnBack:   func(context.Context, *domain.NavigationEvent) { calls = append(calls, "back") },
	}

	merged := observability.MergeLifecycle(a, b)
	merged.OnSelect(context.Background(), &domain.NavigationEvent{})
	merged.OnBack(context.Background(), &domain.NavigationEvent{})

	assert.Equal(t, []string{"a", "b", "back"}, calls)
	assert.Nil(t, merged.OnReset)
}

func TestMergeSearch(t *testing.T) {
	n := 0
	inc := func(*domain.LookupEvent) { n++ }
	merged := observability.MergeSearch(domain.SearchHooks{OnStale: inc}, domain.SearchHooks{OnStale: inc})
	merged.OnStale(&domain.LookupEvent{})
	assert.Equal(t, 2, n)
	assert.Nil(t, merged.OnFailure)
}

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}
