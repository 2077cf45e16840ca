package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/tabuclique/pkg/buildinfo"
	"github.com/matzehuels/tabuclique/pkg/clique"
	"github.com/matzehuels/tabuclique/pkg/dimacs"
	"github.com/matzehuels/tabuclique/pkg/errors"
	"github.com/matzehuels/tabuclique/pkg/graph"
	"github.com/matzehuels/tabuclique/pkg/pipeline"
	"github.com/matzehuels/tabuclique/pkg/store"
)

type searchResponse struct {
	RunID     string  `json:"run_id,omitempty"`
	Instance  string  `json:"instance"`
	GraphHash string  `json:"graph_hash"`
	Vertices  int     `json:"vertices"`
	Edges     int     `json:"edges"`
	Size      int     `json:"size"`
	Clique    []int   `json:"clique"`
	Valid     bool    `json:"valid"`
	Reason    string  `json:"reason,omitempty"`
	CacheHit  bool    `json:"cache_hit"`
	Partial   bool    `json:"partial,omitempty"`
	Restarts  int     `json:"restarts"`
	Moves     int     `json:"moves"`
	Swaps     int     `json:"swaps"`
	Seconds   float64 `json:"seconds"`
}

type verifyRequest struct {
	Graph  string `json:"graph"`
	Clique []int  `json:"clique"`
}

type runsResponse struct {
	Runs []store.Run `json:"runs"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	g, err := s.readGraph(w, r)
	if err != nil {
		writeError(w, s.Logger, err)
		return
	}
	opts, err := s.searchOptions(r.URL.Query())
	if err != nil {
		writeError(w, s.Logger, err)
		return
	}
	opts.Graph = g

	ctx, cancel := context.WithTimeout(r.Context(), s.Timeout)
	defer cancel()

	res, err := s.Runner.Execute(ctx, opts)
	partial := false
	if err != nil {
		if res == nil || ctx.Err() == nil {
			writeError(w, s.Logger, err)
			return
		}
		partial = true
		s.Logger.Warn("search interrupted", "instance", res.Instance, "error", err)
	}
	writeJSON(w, s.Logger, http.StatusOK, newSearchResponse(res, partial))
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.MaxBody))
	if err := dec.Decode(&req); err != nil {
		writeError(w, s.Logger, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if strings.TrimSpace(req.Graph) == "" {
		writeError(w, s.Logger, errors.New(errors.ErrCodeInvalidInput, "graph is required"))
		return
	}
	g, err := dimacs.Read(strings.NewReader(req.Graph))
	if err != nil {
		writeError(w, s.Logger, err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, clique.Verify(g, req.Clique))
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, s.Logger, errors.New(errors.ErrCodeInvalidInput, "limit must be a positive integer, got %q", v))
			return
		}
		limit = n
	}
	runs, err := s.Runner.Store.List(r.Context(), limit)
	if err != nil {
		writeError(w, s.Logger, errors.Wrap(errors.ErrCodeInternal, err, "list runs"))
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, s.Logger, http.StatusOK, runsResponse{Runs: runs})
}

func (s *Server) readGraph(w http.ResponseWriter, r *http.Request) (*graph.Graph, error) {
	if r.Body == nil || r.ContentLength == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body must contain a DIMACS graph")
	}
	return dimacs.Read(http.MaxBytesReader(w, r.Body, s.MaxBody))
}

// searchOptions maps query parameters onto pipeline options, rejecting
// values above s.Limits.
func (s *Server) searchOptions(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{Instance: q.Get("instance")}
	if opts.Instance == "" {
		opts.Instance = "request"
	}

	ints := []struct {
		name string
		dst  *int
		max  int
	}{
		{"restarts", &opts.Search.Restarts, s.Limits.Restarts},
		{"width", &opts.Search.Width, 0},
		{"trials", &opts.Search.Trials, s.Limits.Trials},
		{"swap_budget", &opts.Search.SwapBudget, s.Limits.SwapBudget},
		{"tabu_size", &opts.Search.TabuSize, s.Limits.TabuSize},
	}
	for _, p := range ints {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", p.name, v)
		}
		if err := errors.ValidateNonNegative(p.name, n); err != nil {
			return opts, err
		}
		if p.max > 0 && n > p.max {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be at most %d, got %d", p.name, p.max, n)
		}
		*p.dst = n
	}

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "seed must be a non-negative integer, got %q", v)
		}
		opts.Search.Seed = seed
	}
	if v := q.Get("eligibility"); v != "" {
		e, err := clique.ParseEligibility(v)
		if err != nil {
			return opts, err
		}
		opts.Search.Eligibility = e
	}
	if v := q.Get("refresh"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "refresh must be a boolean, got %q", v)
		}
		opts.Refresh = b
	}
	return opts, nil
}

func newSearchResponse(res *pipeline.Result, partial bool) searchResponse {
	c := res.Search.Clique
	if c == nil {
		c = []int{}
	}
	return searchResponse{
		RunID:     res.RunID,
		Instance:  res.Instance,
		GraphHash: res.GraphHash,
		Vertices:  res.Stats.Vertices,
		Edges:     res.Stats.Edges,
		Size:      res.Search.Size,
		Clique:    c,
		Valid:     res.Verification.Valid,
		Reason:    res.Verification.Reason,
		CacheHit:  res.CacheHit,
		Partial:   partial,
		Restarts:  res.Search.Restarts,
		Moves:     res.Search.Moves,
		Swaps:     res.Search.Swaps,
		Seconds:   res.Stats.SearchTime.Seconds(),
	}
}
