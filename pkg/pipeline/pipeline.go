// Package pipeline runs the load → search → verify → record sequence shared
// by the CLI and the HTTP service.
//
// # Architecture
//
// A [Runner] executes these stages:
//
//  1. Load: parse a DIMACS file, or take an in-memory graph
//  2. Search: run the tabu search, or reuse a cached result
//  3. Verify: check the returned set is a clique; a failure is logged as a
//     warning and the result is still returned
//  4. Record: save the run to the configured store
//
// Cached results are keyed by the graph content hash and every option that
// influences the search trajectory. Searches are deterministic, so a cached
// result equals a fresh one.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Path:   "graphs/C125.9.clq",
//	    Search: clique.Options{Restarts: 100, Width: 2},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Search.Size, res.Verification.Valid)
package pipeline

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabuclique/pkg/cache"
	"github.com/matzehuels/tabuclique/pkg/clique"
	"github.com/matzehuels/tabuclique/pkg/errors"
	"github.com/matzehuels/tabuclique/pkg/graph"
	"github.com/matzehuels/tabuclique/pkg/report"
	"github.com/matzehuels/tabuclique/pkg/store"
)

// DefaultReport is the batch report file name.
const DefaultReport = "clique_tabu.csv"

// Format constants for rendered outputs.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// ValidateFormat checks that a render format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg)", format)
	}
	return nil
}

// Options configures one pipeline run.
type Options struct {
	// Instance names the run in logs, reports and the store. It defaults
	// to the base name of Path.
	Instance string `json:"instance,omitempty"`

	// Path is the DIMACS file to load when Graph is nil.
	Path string `json:"path,omitempty"`

	// Graph, when set, is searched directly and Path is ignored.
	Graph *graph.Graph `json:"-"`

	// Search holds the search options; zero fields take package defaults.
	Search clique.Options `json:"search"`

	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Graph == nil {
		if err := errors.ValidateGraphPath(o.Path); err != nil {
			return err
		}
	}
	if o.Instance == "" {
		if o.Path != "" {
			o.Instance = filepath.Base(o.Path)
		} else {
			o.Instance = "graph"
		}
	}
	if err := errors.ValidateInstanceName(o.Instance); err != nil {
		return err
	}
	o.Search = o.Search.WithDefaults()
	return o.Search.Validate()
}

// ResultKeyOpts returns the cache key options for o.
func (o Options) ResultKeyOpts() cache.ResultKeyOpts {
	s := o.Search.WithDefaults()
	return cache.ResultKeyOpts{
		Restarts:    s.Restarts,
		Width:       s.Width,
		Trials:      s.Trials,
		SwapBudget:  s.SwapBudget,
		TabuSize:    s.TabuSize,
		Seed:        s.Seed,
		Eligibility: s.Eligibility.String(),
	}
}

// Params returns the options in the form recorded by the run store.
func (o Options) Params() store.Params {
	k := o.ResultKeyOpts()
	return store.Params{
		Restarts:    k.Restarts,
		Width:       k.Width,
		Trials:      k.Trials,
		SwapBudget:  k.SwapBudget,
		TabuSize:    k.TabuSize,
		Seed:        k.Seed,
		Eligibility: k.Eligibility,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	RunID        string              `json:"run_id"`
	Instance     string              `json:"instance"`
	GraphHash    string              `json:"graph_hash"`
	Search       clique.Result       `json:"search"`
	Verification clique.Verification `json:"verification"`
	Stats        Stats               `json:"stats"`
	CacheHit     bool                `json:"cache_hit"`

	// Graph is the searched graph.
	Graph *graph.Graph `json:"-"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Vertices   int           `json:"vertices"`
	Edges      int           `json:"edges"`
	Density    float64       `json:"density"`
	LoadTime   time.Duration `json:"load_time"`
	SearchTime time.Duration `json:"search_time"`
}

// Row converts r into a report row. The elapsed time is the search time of
// this run, which is near zero on a cache hit.
func (r *Result) Row() report.Row {
	return report.Row{
		Instance: r.Instance,
		Size:     r.Search.Size,
		Elapsed:  r.Stats.SearchTime,
		Clique:   r.Search.Clique,
		Valid:    r.Verification.Valid,
	}
}
