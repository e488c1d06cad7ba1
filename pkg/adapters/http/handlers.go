package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/search"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// SelectRequest is the body of POST /sessions/{id}/select.
type SelectRequest struct {
	Index int `json:"index"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Query   string              `json:"query"`
	Results []domain.ResultItem `json:"results"`
}

func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, chi.URLParam(r, "id"), &id)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id: "+err.Error())
		return "", false
	}
	return id, true
}

// render writes the view of state, or the error that prevented reaching it.
func (s *Server) render(w http.ResponseWriter, status int, state *domain.State, err error) {
	if err != nil {
		s.fail(w, "navigation failed", err)
		return
	}
	node, err := s.Engine.Current(state)
	if err != nil {
		s.fail(w, "render failed", err)
		return
	}
	writeJSON(w, status, domain.NewView(state, node))
}

func (s *Server) fail(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(msg, "error", err)
	} else {
		s.logger.Debug(msg, "error", err)
	}
	writeError(w, status, err.Error())
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.Sessions.Create(r.Context())
	if err == nil {
		s.broadcast(nil, state)
	}
	s.render(w, http.StatusCreated, state, err)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	state, err := s.Sessions.Load(r.Context(), id)
	s.render(w, http.StatusOK, state, err)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, "delete failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectOption handles POST /sessions/{id}/select.
func (s *Server) SelectOption(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	var body SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.mutate(w, r, id, func(ctx context.Context, st *domain.State) (*domain.State, error) {
		return s.Engine.SelectIndex(ctx, st, body.Index)
	})
}

// GoBack handles POST /sessions/{id}/back.
func (s *Server) GoBack(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	s.mutate(w, r, id, func(ctx context.Context, st *domain.State) (*domain.State, error) {
		return s.Engine.Back(ctx, st), nil
	})
}

// ResetSession handles POST /sessions/{id}/reset.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	s.mutate(w, r, id, func(ctx context.Context, st *domain.State) (*domain.State, error) {
		return s.Engine.Reset(ctx, st), nil
	})
}

// mutate runs a transition under the session lock and broadcasts the history
// diff against the state the transition started from.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, id string, fn func(context.Context, *domain.State) (*domain.State, error)) {
	var before *domain.State
	after, err := s.Sessions.Apply(r.Context(), id, func(ctx context.Context, st *domain.State) (*domain.State, error) {
		before = st.Clone()
		return fn(ctx, st)
	})
	if err == nil {
		s.broadcast(before, after)
	}
	s.render(w, http.StatusOK, after, err)
}

func (s *Server) broadcast(before, after *domain.State) {
	diff := domain.Diff(before, after)
	if diff == nil {
		return
	}
	payload, err := json.Marshal(diff)
	if err != nil {
		s.logger.Error("diff encode failed", "error", err)
		return
	}
	s.Streams.Broadcast(after.SessionID, string(payload))
}

// GetGraph handles GET /graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Engine.Inspect())
}

// Search handles GET /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	if s.index == nil {
		writeError(w, http.StatusServiceUnavailable, domain.ErrIndexNotReady.Error())
		return
	}

	var q string
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	n := s.limit
	if limit != nil {
		n = *limit
	}

	resp := SearchResponse{Query: q, Results: []domain.ResultItem{}}
	if q == "" {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	hits, err := s.index.Search(r.Context(), q)
	if err != nil {
		s.fail(w, "search failed", err)
		return
	}
	resp.Results = search.Normalize(hits, n)
	writeJSON(w, http.StatusOK, resp)
}
