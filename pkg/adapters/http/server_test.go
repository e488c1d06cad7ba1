package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/catalog"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()

	loader, err := catalog.Loader()
	require.NoError(t, err)
	engine, err := wayfinder.New("", wayfinder.WithLoader(loader))
	require.NoError(t, err)

	ids := 0
	sessions := session.NewManager(memory.NewStore(), engine, session.WithIDGenerator(func() string {
		ids++
		return "sess-" + string(rune('0'+ids))
	}))

	handler, err := NewHandler(engine, sessions, opts...)
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&out)
	}
	return resp, out
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, view := do(t, http.MethodPost, srv.URL+"/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "sess-1", view["session_id"])
	assert.Equal(t, "start", view["node_id"])
	assert.Equal(t, "step", view["kind"])
	assert.Equal(t, float64(1), view["step"])
	assert.Len(t, view["options"], 4)

	resp, view = do(t, http.MethodPost, srv.URL+"/sessions/sess-1/select", `{"index": 1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "rag-complexity", view["node_id"])
	assert.Equal(t, true, view["can_go_back"])

	resp, view = do(t, http.MethodPost, srv.URL+"/sessions/sess-1/select", `{"index": 0}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "result", view["kind"])
	rec, ok := view["recommendation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "wesichain-rag", rec["name"])

	resp, view = do(t, http.MethodPost, srv.URL+"/sessions/sess-1/back", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "rag-complexity", view["node_id"])

	resp, view = do(t, http.MethodPost, srv.URL+"/sessions/sess-1/reset", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "start", view["node_id"])
	assert.Equal(t, []any{"start"}, view["history"])

	resp, _ = do(t, http.MethodDelete, srv.URL+"/sessions/sess-1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/sessions/sess-1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSelectOption_Errors(t *testing.T) {
	srv := newTestServer(t)
	do(t, http.MethodPost, srv.URL+"/sessions", "")

	t.Run("out of range", func(t *testing.T) {
		resp, body := do(t, http.MethodPost, srv.URL+"/sessions/sess-1/select", `{"index": 9}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body["error"], "invalid option")
	})

	t.Run("rejected by schema", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, srv.URL+"/sessions/sess-1/select", `{"index": -1}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, _ = do(t, http.MethodPost, srv.URL+"/sessions/sess-1/select", `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown session", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, srv.URL+"/sessions/missing/select", `{"index": 0}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetGraph(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/graph")
	require.NoError(t, err)
	defer resp.Body.Close()

	var nodes []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&nodes))
	assert.Len(t, nodes, 18)
}

func TestSearch(t *testing.T) {
	index := memory.NewIndex([]domain.Entry{
		{Slug: "guides/rag", Title: "Building a RAG pipeline", Description: "Retrieval", Body: "Use <b>wesichain-rag</b> for retrieval."},
		{Slug: "guides/agents", Title: "Agents", Description: "ReAct agents", Body: "Tools and memory."},
	}, memory.WithBaseURL("/docs"))
	srv := newTestServer(t, WithIndex(index))

	resp, err := http.Get(srv.URL + "/search?q=rag")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out SearchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "rag", out.Query)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "/docs/guides/rag", out.Results[0].URL)
	assert.NotContains(t, out.Results[0].Excerpt, "<b>")

	resp2, err := http.Get(srv.URL + "/search")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestSearch_NotReady(t *testing.T) {
	srv := newTestServer(t, WithIndex(memory.NewPendingIndex()))

	resp, err := http.Get(srv.URL + "/search?q=rag")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("wayfinder_up 1\n"))
	})
	srv := newTestServer(t, WithMetrics(metrics))

	resp, body := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSubscribeEvents_SessionDiffs(t *testing.T) {
	srv := newTestServer(t)
	do(t, http.MethodPost, srv.URL+"/sessions", "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events?session_id=sess-1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: ping", lines.Text())

	do(t, http.MethodPost, srv.URL+"/sessions/sess-1/select", `{"index": 0}`)

	var payload string
	for lines.Scan() {
		if data, ok := strings.CutPrefix(lines.Text(), "data: "); ok && data != "connected" {
			payload = data
			break
		}
	}
	require.NotEmpty(t, payload)

	var diff domain.StateDiff
	require.NoError(t, json.Unmarshal([]byte(payload), &diff))
	assert.Equal(t, "sess-1", diff.SessionID)
	require.NotNil(t, diff.CurrentNodeID)
	assert.Equal(t, "agent-memory", *diff.CurrentNodeID)
	assert.Equal(t, []string{"start", "agent-memory"}, diff.Apply([]string{"start"}))
}

// interleavedSessions lets another writer advance the session right before
// each transition takes the lock.
type interleavedSessions struct {
	*session.Manager
}

func (s interleavedSessions) Apply(ctx context.Context, id string, fn func(context.Context, *domain.State) (*domain.State, error)) (*domain.State, error) {
	if _, err := s.Manager.Select(ctx, id, 0); err != nil {
		return nil, err
	}
	return s.Manager.Apply(ctx, id, fn)
}

func TestSelectOption_DiffUsesLockedState(t *testing.T) {
	loader, err := catalog.Loader()
	require.NoError(t, err)
	engine, err := wayfinder.New("", wayfinder.WithLoader(loader))
	require.NoError(t, err)
	manager := session.NewManager(memory.NewStore(), engine, session.WithIDGenerator(func() string { return "sess-1" }))

	handler, err := NewHandler(engine, interleavedSessions{manager})
	require.NoError(t, err)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	do(t, http.MethodPost, srv.URL+"/sessions", "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events?session_id=sess-1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())

	_, view := do(t, http.MethodPost, srv.URL+"/sessions/sess-1/select", `{"index": 0}`)
	require.Equal(t, float64(3), view["step"])

	var payload string
	for lines.Scan() {
		if data, ok := strings.CutPrefix(lines.Text(), "data: "); ok && data != "connected" {
			payload = data
			break
		}
	}
	require.NotEmpty(t, payload)

	var diff domain.StateDiff
	require.NoError(t, json.Unmarshal([]byte(payload), &diff))
	require.NotNil(t, diff.History)
	assert.Zero(t, diff.History.Truncated)
	assert.Equal(t, []string{view["node_id"].(string)}, diff.History.Appended)
}

func TestStreamManager(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("s1")
	assert.Equal(t, 1, sm.Subscribers("s1"))

	sm.Broadcast("s1", "hello")
	sm.Broadcast("other", "ignored")
	assert.Equal(t, "hello", <-ch)

	cancel()
	cancel()
	assert.Equal(t, 0, sm.Subscribers("s1"))
	_, open := <-ch
	assert.False(t, open)
}
