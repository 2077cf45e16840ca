package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabuclique/pkg/cache"
	"github.com/matzehuels/tabuclique/pkg/errors"
	"github.com/matzehuels/tabuclique/pkg/pipeline"
	"github.com/matzehuels/tabuclique/pkg/store"
)

const k5MinusEdge = `c K5 without edge 1-2
p edge 5 9
e 1 3
e 1 4
e 1 5
e 2 3
e 2 4
e 2 5
e 3 4
e 3 5
e 4 5
`

func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	st := store.NewMemoryStore(100)
	logger := log.New(&bytes.Buffer{})
	return NewServer(pipeline.NewRunner(fc, nil, st, logger), logger), st
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[healthResponse](t, rec); got.Status != "ok" || got.Build.Version == "" {
		t.Errorf("body = %v", got)
	}
}

func TestSearch(t *testing.T) {
	s, st := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/v1/search?restarts=5&seed=7&instance=k5e", k5MinusEdge)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	got := decode[searchResponse](t, rec)
	if got.Size != 4 || len(got.Clique) != 4 || !got.Valid {
		t.Errorf("response = %+v", got)
	}
	if got.Instance != "k5e" || got.Vertices != 5 || got.Edges != 9 || got.Restarts != 5 {
		t.Errorf("response = %+v", got)
	}
	if got.CacheHit || got.RunID == "" {
		t.Errorf("first search: cache_hit=%v run_id=%q", got.CacheHit, got.RunID)
	}

	again := decode[searchResponse](t, do(t, h, http.MethodPost, "/v1/search?restarts=5&seed=7", k5MinusEdge))
	if !again.CacheHit || again.GraphHash != got.GraphHash {
		t.Errorf("second search = %+v", again)
	}

	runs, _ := st.List(t.Context(), 0)
	if len(runs) != 2 || runs[1].Instance != "k5e" || runs[0].Instance != "request" {
		t.Errorf("runs = %+v", runs)
	}
}

func TestSearchErrors(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	tests := []struct {
		name   string
		target string
		body   string
		code   errors.Code
	}{
		{"empty body", "/v1/search", "", errors.ErrCodeInvalidInput},
		{"malformed graph", "/v1/search", "p edge 2\n", errors.ErrCodeInvalidGraph},
		{"bad integer", "/v1/search?restarts=many", k5MinusEdge, errors.ErrCodeInvalidInput},
		{"negative width", "/v1/search?width=-1", k5MinusEdge, errors.ErrCodeInvalidInput},
		{"bad seed", "/v1/search?seed=-3", k5MinusEdge, errors.ErrCodeInvalidInput},
		{"bad eligibility", "/v1/search?eligibility=greedy", k5MinusEdge, errors.ErrCodeInvalidInput},
		{"bad refresh", "/v1/search?refresh=maybe", k5MinusEdge, errors.ErrCodeInvalidInput},
		{"swap budget over limit", "/v1/search?swap_budget=20000000", k5MinusEdge, errors.ErrCodeInvalidInput},
		{"restarts over limit", "/v1/search?restarts=10001", k5MinusEdge, errors.ErrCodeInvalidInput},
		{"trials over limit", "/v1/search?trials=1000000", k5MinusEdge, errors.ErrCodeInvalidInput},
		{"tabu size over limit", "/v1/search?tabu_size=1000000", k5MinusEdge, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.target, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if got := decode[errorResponse](t, rec); got.Code != tt.code || got.Message == "" {
				t.Errorf("error = %+v, want code %s", got, tt.code)
			}
		})
	}
}

func TestSearchLimits(t *testing.T) {
	s, _ := newTestServer(t)
	s.Limits = Limits{SwapBudget: 50}

	rec := do(t, s.Handler(), http.MethodPost, "/v1/search?swap_budget=51", k5MinusEdge)
	got := decode[errorResponse](t, rec)
	if rec.Code != http.StatusBadRequest || !strings.Contains(got.Message, "swap_budget must be at most 50") {
		t.Errorf("status = %d, error = %+v", rec.Code, got)
	}

	// At the cap is fine, and a zero cap means unlimited.
	for _, q := range []string{"swap_budget=50", "swap_budget=1&restarts=20000"} {
		rec = do(t, s.Handler(), http.MethodPost, "/v1/search?"+q, k5MinusEdge)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, body = %s", q, rec.Code, rec.Body)
		}
	}
}

func TestSearchCandidateEligibility(t *testing.T) {
	s, _ := newTestServer(t)
	path := "p edge 3 2\ne 1 2\ne 2 3\n"
	got := decode[searchResponse](t, do(t, s.Handler(), http.MethodPost, "/v1/search?restarts=4&eligibility=candidate", path))
	if got.Size != 2 || got.Swaps != 4 {
		t.Errorf("response = %+v", got)
	}
}

func TestVerify(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	body, _ := json.Marshal(verifyRequest{Graph: k5MinusEdge, Clique: []int{1, 2, 3, 4}})
	rec := do(t, h, http.MethodPost, "/v1/verify", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[map[string]any](t, rec); got["valid"] != true {
		t.Errorf("valid clique: %v", got)
	}

	body, _ = json.Marshal(verifyRequest{Graph: k5MinusEdge, Clique: []int{0, 1, 2}})
	got := decode[struct {
		Valid    bool `json:"valid"`
		Conflict *struct {
			U, V int
		} `json:"conflict"`
	}](t, do(t, h, http.MethodPost, "/v1/verify", string(body)))
	if got.Valid || got.Conflict == nil || got.Conflict.U != 0 || got.Conflict.V != 1 {
		t.Errorf("invalid clique: %+v", got)
	}

	for _, bad := range []string{"{", `{"clique":[0]}`, `{"graph":"x 1 2","clique":[0]}`} {
		if rec := do(t, h, http.MethodPost, "/v1/verify", bad); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", bad, rec.Code)
		}
	}
}

func TestRuns(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	empty := decode[runsResponse](t, do(t, h, http.MethodGet, "/v1/runs", ""))
	if empty.Runs == nil || len(empty.Runs) != 0 {
		t.Errorf("empty runs = %+v", empty)
	}

	for _, seed := range []string{"1", "2", "3"} {
		do(t, h, http.MethodPost, "/v1/search?restarts=2&seed="+seed, k5MinusEdge)
	}
	got := decode[runsResponse](t, do(t, h, http.MethodGet, "/v1/runs?limit=2", ""))
	if len(got.Runs) != 2 || got.Runs[0].Params.Seed != 3 {
		t.Errorf("runs = %+v", got.Runs)
	}

	if rec := do(t, h, http.MethodGet, "/v1/runs?limit=0", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("limit=0: status = %d", rec.Code)
	}
}

func TestNotFoundAndPanic(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/v2/nothing", "")
	if rec.Code != http.StatusNotFound || decode[errorResponse](t, rec).Code != errors.ErrCodeNotFound {
		t.Errorf("not found: %d %s", rec.Code, rec.Body)
	}

	h := s.recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec = do(t, h, http.MethodGet, "/", "")
	if rec.Code != http.StatusInternalServerError || decode[errorResponse](t, rec).Code != errors.ErrCodeInternal {
		t.Errorf("panic: %d %s", rec.Code, rec.Body)
	}
}

func TestStatusFor(t *testing.T) {
	tests := map[errors.Code]int{
		errors.ErrCodeInvalidGraph: http.StatusBadRequest,
		errors.ErrCodeFileNotFound: http.StatusNotFound,
		errors.ErrCodeVerification: http.StatusUnprocessableEntity,
		errors.ErrCodeUnsupported:  http.StatusNotImplemented,
		errors.ErrCodeInvariant:    http.StatusInternalServerError,
		errors.Code("SOMETHING"):   http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := statusFor(code); got != want {
			t.Errorf("statusFor(%s) = %d, want %d", code, got, want)
		}
	}
}
