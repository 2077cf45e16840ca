package clique

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/tabuclique/pkg/errors"
	"github.com/matzehuels/tabuclique/pkg/graph"
)

// RestartStats describes one finished restart.
type RestartStats struct {
	Restart  int  // 0-based restart index
	Restarts int  // total restarts in this run
	SeedSize int  // size of the constructed seed clique
	Size     int  // clique size at the end of the restart
	Best     int  // best size after this restart
	Moves    int  // Move steps taken
	Swaps    int  // accepted Swap1-to-1 steps
	Improved bool // Size beat the previous best
}

// Result summarizes a search run.
type Result struct {
	Clique   []int         `json:"clique"`
	Size     int           `json:"size"`
	History  []int         `json:"history"` // best size after each restart
	Restarts int           `json:"restarts"`
	Moves    int           `json:"moves"`
	Swaps    int           `json:"swaps"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Searcher runs restarts of greedy construction followed by tabu-guided
// local search on a single graph. It owns all mutable search state and is
// not safe for concurrent use; run one Searcher per goroutine.
type Searcher struct {
	g           *graph.Graph
	opts        Options
	rng         *rand.Rand
	part        *Partition
	added       *TabuList
	removed     *TabuList
	constructor *Constructor
	cand        []int // Swap1-to-1 candidates, reused

	best    []int
	history []int
	moves   int
	swaps   int
}

// NewSearcher validates opts (after applying defaults) and prepares a
// searcher over g. The random generator is seeded once here, so successive
// runs on the same Searcher continue one random stream.
func NewSearcher(g *graph.Graph, opts Options) (*Searcher, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph is nil")
	}
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Searcher{
		g:           g,
		opts:        opts,
		rng:         newRand(opts.Seed),
		part:        NewPartition(g),
		added:       NewTabuList(opts.TabuSize),
		removed:     NewTabuList(opts.TabuSize),
		constructor: NewConstructor(g),
	}, nil
}

// Options returns the effective options, defaults applied.
func (s *Searcher) Options() Options { return s.opts }

// Search runs the configured number of restarts and returns the result.
// On cancellation the partial result is returned together with ctx.Err().
func (s *Searcher) Search(ctx context.Context) (Result, error) {
	start := time.Now()
	err := s.RunSearch(ctx, s.opts.Restarts, s.opts.Width)
	return Result{
		Clique:   s.BestClique(),
		Size:     len(s.best),
		History:  append([]int(nil), s.history...),
		Restarts: len(s.history),
		Moves:    s.moves,
		Swaps:    s.swaps,
		Elapsed:  time.Since(start),
	}, err
}

// RunSearch performs restarts rounds with the given randomization width,
// replacing the best clique of any previous run. The context is consulted
// before each restart; a restart that has begun always completes.
func (s *Searcher) RunSearch(ctx context.Context, restarts, width int) error {
	if err := errors.ValidatePositive("restarts", restarts); err != nil {
		return err
	}
	if err := errors.ValidatePositive("width", width); err != nil {
		return err
	}

	s.best = s.best[:0]
	s.history = s.history[:0]
	s.moves, s.swaps = 0, 0

	for r := 0; r < restarts; r++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		st := s.restart(width)
		st.Restart, st.Restarts = r, restarts
		if st.Size > len(s.best) {
			s.best = append(s.best[:0], s.part.order[:s.part.qBorder]...)
			st.Improved = true
		}
		st.Best = len(s.best)
		s.history = append(s.history, st.Best)
		if s.opts.Progress != nil {
			s.opts.Progress(st)
		}
	}
	return nil
}

// BestClique returns a copy of the largest clique found by the last run.
func (s *Searcher) BestClique() []int { return append([]int(nil), s.best...) }

// BestCliqueSize returns the size of the largest clique found by the last run.
func (s *Searcher) BestCliqueSize() int { return len(s.best) }

func (s *Searcher) restart(width int) RestartStats {
	s.part.Reset()
	s.added.Clear()
	s.removed.Clear()

	seed := s.constructor.Seed(s.rng, width, s.opts.Trials)
	for _, v := range seed {
		s.part.Insert(v)
	}
	s.check("seed")

	st := RestartStats{SeedSize: len(seed)}
	for st.Swaps < s.opts.SwapBudget {
		if s.move() {
			st.Moves++
			s.check("move")
			continue
		}
		if !s.swap() {
			break
		}
		st.Swaps++
		s.check("swap")
	}
	st.Size = s.part.CliqueSize()
	s.moves += st.Moves
	s.swaps += st.Swaps
	return st
}

// move inserts a uniformly chosen free vertex.
func (s *Searcher) move() bool {
	p := s.part
	if p.cBorder == p.qBorder {
		return false
	}
	p.Insert(p.order[p.qBorder+s.rng.IntN(p.cBorder-p.qBorder)])
	return true
}

// swap trades the first eligible clique vertex, scanning in slot order,
// for a random non-neighbor whose only conflict it is.
func (s *Searcher) swap() bool {
	p := s.part
	for slot := 0; slot < p.qBorder; slot++ {
		v := p.order[slot]
		if s.added.Contains(v) {
			continue
		}
		cand := s.candidates(v)
		if len(cand) == 0 {
			continue
		}
		j := cand[s.rng.IntN(len(cand))]
		p.Remove(v)
		s.removed.Push(v)
		s.added.Push(j)
		p.Insert(j)
		return true
	}
	return false
}

func (s *Searcher) candidates(v int) []int {
	cand := s.cand[:0]
	if s.opts.Eligibility == EligibilityLegacy && !s.removed.Contains(v) {
		return cand
	}
	for _, j := range s.g.NonNeighbors(v) {
		if s.part.tau[j] != 1 {
			continue
		}
		if s.opts.Eligibility == EligibilityCandidate && s.removed.Contains(j) {
			continue
		}
		cand = append(cand, j)
	}
	s.cand = cand
	return cand
}

func (s *Searcher) check(step string) {
	if !s.opts.Debug {
		return
	}
	if err := s.part.Check(); err != nil {
		errors.Invariant("after %s: %v", step, err)
	}
}
