package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabuclique/pkg/cache"
	"github.com/matzehuels/tabuclique/pkg/clique"
	"github.com/matzehuels/tabuclique/pkg/dimacs"
	"github.com/matzehuels/tabuclique/pkg/graph"
	"github.com/matzehuels/tabuclique/pkg/observability"
	"github.com/matzehuels/tabuclique/pkg/render"
	"github.com/matzehuels/tabuclique/pkg/store"
)

// Runner encapsulates pipeline execution with caching and run recording.
//
// The Runner holds no per-run state, so several goroutines may share one
// Runner; each Execute call owns its own Searcher.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger

	// ResultTTL is the lifetime of cached search results. Zero selects
	// cache.TTLResult.
	ResultTTL time.Duration
}

// NewRunner creates a runner. Nil arguments select a NullCache, the
// DefaultKeyer, a NullStore and the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if st == nil {
		st = store.NullStore{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Store: st, Logger: logger}
}

// Execute runs load → search → verify → record.
//
// If the context is cancelled during the search, Execute returns the
// partial result (best clique so far, verified) together with the context
// error. Partial results are neither cached nor recorded.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	g, loadTime, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	res := &Result{
		Instance:  opts.Instance,
		Graph:     g,
		GraphHash: GraphHash(g),
		Stats: Stats{
			Vertices: g.VertexCount(),
			Edges:    g.EdgeCount(),
			Density:  g.Density(),
			LoadTime: loadTime,
		},
	}
	logger.Debug("loaded graph",
		"instance", opts.Instance,
		"vertices", res.Stats.Vertices,
		"edges", res.Stats.Edges,
		"duration", loadTime)

	key := r.Keyer.ResultKey(res.GraphHash, opts.ResultKeyOpts())
	start := time.Now()
	sr, hit, err := r.search(ctx, key, g, opts)
	res.Stats.SearchTime = time.Since(start)
	res.Search = sr
	res.CacheHit = hit

	res.Verification = clique.Verify(g, sr.Clique)
	if !res.Verification.Valid {
		logger.Warn("incorrect clique", "instance", opts.Instance, "reason", res.Verification.Reason)
		observability.Search().OnVerifyFailed(ctx, opts.Instance, res.Verification.Reason)
	}
	if err != nil {
		return res, err
	}

	run := &store.Run{
		Instance:  opts.Instance,
		GraphHash: res.GraphHash,
		Vertices:  res.Stats.Vertices,
		Edges:     res.Stats.Edges,
		Params:    opts.Params(),
		Size:      sr.Size,
		Clique:    sr.Clique,
		Valid:     res.Verification.Valid,
		Cached:    hit,
		Elapsed:   sr.Elapsed,
	}
	if err := r.Store.Save(ctx, run); err != nil {
		logger.Warn("failed to record run", "instance", opts.Instance, "error", err)
	}
	res.RunID = run.ID

	logger.Debug("search complete",
		"instance", opts.Instance,
		"size", sr.Size,
		"cached", hit,
		"duration", res.Stats.SearchTime)
	return res, nil
}

// Load returns opts.Graph or parses opts.Path, and the time it took.
func (r *Runner) Load(ctx context.Context, opts Options) (*graph.Graph, time.Duration, error) {
	if opts.Graph != nil {
		return opts.Graph, 0, nil
	}
	start := time.Now()
	g, err := dimacs.ReadFile(opts.Path)
	d := time.Since(start)
	if err != nil {
		observability.Search().OnLoadComplete(ctx, opts.Instance, 0, 0, d, err)
		return nil, d, err
	}
	observability.Search().OnLoadComplete(ctx, opts.Instance, g.VertexCount(), g.EdgeCount(), d, nil)
	return g, d, nil
}

func (r *Runner) search(ctx context.Context, key string, g *graph.Graph, opts Options) (clique.Result, bool, error) {
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached clique.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "result")
				return cached, true, nil
			}
		} else if err != nil {
			r.logger(opts).Warn("cache lookup failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "result")
	}

	sopts := opts.Search
	progress := sopts.Progress
	sopts.Progress = func(st clique.RestartStats) {
		if st.Improved {
			observability.Search().OnImprove(ctx, opts.Instance, st.Restart, st.Size)
		}
		if progress != nil {
			progress(st)
		}
	}

	observability.Search().OnSearchStart(ctx, opts.Instance, g.VertexCount())
	s, err := clique.NewSearcher(g, sopts)
	if err != nil {
		return clique.Result{}, false, err
	}
	res, err := s.Search(ctx)
	observability.Search().OnSearchComplete(ctx, opts.Instance, res.Size, res.Elapsed, err)
	if err != nil {
		return res, false, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.resultTTL()); err != nil {
			r.logger(opts).Warn("cache store failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "result", len(data))
		}
	}
	return res, false, nil
}

// BatchItem is the outcome of one path in [Runner.ExecuteBatch].
type BatchItem struct {
	Path   string
	Result *Result
	Err    error
}

// ExecuteBatch runs Execute for every path in order with the same search
// options. A failing instance is reported in its item and the batch goes
// on; only context cancellation stops it early, in which case the items
// completed so far are returned with the context error. The callback, if
// set, is called after every item.
func (r *Runner) ExecuteBatch(ctx context.Context, paths []string, opts Options, each func(BatchItem)) ([]BatchItem, error) {
	items := make([]BatchItem, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return items, err
		}
		o := opts
		o.Path, o.Graph, o.Instance = p, nil, ""
		res, err := r.Execute(ctx, o)
		item := BatchItem{Path: p, Result: res, Err: err}
		items = append(items, item)
		if each != nil {
			each(item)
		}
		if ctx.Err() != nil {
			return items, ctx.Err()
		}
	}
	return items, nil
}

// Render draws res in the given format, caching the output.
func (r *Runner) Render(ctx context.Context, res *Result, format string, opts render.Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if err := render.ValidateLayout(opts.Layout); err != nil {
		return nil, err
	}
	resultHash, err := cache.HashJSON(struct {
		Graph   string         `json:"graph"`
		Clique  []int          `json:"clique"`
		Options render.Options `json:"options"`
	}{res.GraphHash, res.Search.Clique, opts})
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ArtifactKey(resultHash, cache.ArtifactKeyOpts{Format: format})
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	dot := render.ToDOT(res.Graph, res.Search.Clique, opts)
	out := []byte(dot)
	if format == FormatSVG {
		if out, err = render.RenderSVG(ctx, dot, opts.Engine()); err != nil {
			return nil, err
		}
	}
	if err := r.Cache.Set(ctx, key, out, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(out))
	}
	return out, nil
}

// Close releases the cache and the store.
func (r *Runner) Close(ctx context.Context) error {
	var firstErr error
	if r.Cache != nil {
		firstErr = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// GraphHash is the content hash of g's canonical DIMACS encoding.
func GraphHash(g *graph.Graph) string {
	return cache.Hash(dimacs.Marshal(g))
}

func (r *Runner) resultTTL() time.Duration {
	if r.ResultTTL > 0 {
		return r.ResultTTL
	}
	return cache.TTLResult
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
