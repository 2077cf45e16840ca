package clique

import (
	"math/rand/v2"

	"github.com/matzehuels/tabuclique/pkg/graph"
)

// Constructor builds maximal cliques greedily, picking each vertex at random
// among the highest-degree remaining candidates.
type Constructor struct {
	g      *graph.Graph
	sorted []int // vertices by descending degree, computed once
	cand   []int // scratch
}

// NewConstructor prepares a constructor for g.
func NewConstructor(g *graph.Graph) *Constructor {
	sorted := g.DegreeOrder()
	return &Constructor{g: g, sorted: sorted, cand: make([]int, 0, len(sorted))}
}

// Build returns one maximal clique. At each step a vertex is drawn
// uniformly from the first min(width, len) candidates, and the candidates
// are narrowed to its neighbors, preserving degree order. A width below 1
// is treated as 1, which is deterministic greedy by degree.
func (c *Constructor) Build(rng *rand.Rand, width int) []int {
	width = max(width, 1)
	cand := append(c.cand[:0], c.sorted...)

	var q []int
	for len(cand) > 0 {
		v := cand[rng.IntN(min(width, len(cand)))]
		q = append(q, v)

		next := cand[:0]
		for _, u := range cand {
			if c.g.Adjacent(v, u) {
				next = append(next, u)
			}
		}
		cand = next
	}
	c.cand = cand[:0]
	return q
}

// Seed runs trials independent builds and returns the largest clique.
// Ties go to the earliest build. Trials below 1 run a single build.
func (c *Constructor) Seed(rng *rand.Rand, width, trials int) []int {
	var best []int
	for i := 0; i < max(trials, 1); i++ {
		if q := c.Build(rng, width); len(q) > len(best) {
			best = q
		}
	}
	return best
}
