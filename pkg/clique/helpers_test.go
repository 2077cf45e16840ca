package clique_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tabuclique/pkg/graph"
)

// mustGraph builds a graph from 0-based edges or fails the test.
func mustGraph(t testing.TB, n int, edges [][2]int) *graph.Graph {
	t.Helper()
	g, err := graph.New(n, edges)
	require.NoError(t, err)
	return g
}

// k5MinusEdge is K5 over 0..4 without {3, 4}; its maximum cliques have size 4.
func k5MinusEdge(t testing.TB) *graph.Graph {
	var edges [][2]int
	for u := 0; u < 5; u++ {
		for v := u + 1; v < 5; v++ {
			if u != 3 || v != 4 {
				edges = append(edges, [2]int{u, v})
			}
		}
	}
	return mustGraph(t, 5, edges)
}

// isolatedPlusK4 has an isolated vertex 0 and a K4 on 1..4.
func isolatedPlusK4(t testing.TB) *graph.Graph {
	return mustGraph(t, 5, [][2]int{{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4}})
}

// cycle returns the n-cycle 0-1-...-(n-1)-0.
func cycle(t testing.TB, n int) *graph.Graph {
	edges := make([][2]int, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, [2]int{i, (i + 1) % n})
	}
	return mustGraph(t, n, edges)
}

// randomGraph returns a G(n, p) graph drawn from a fixed seed.
func randomGraph(t testing.TB, seed uint64, n int, p float64) *graph.Graph {
	r := rand.New(rand.NewPCG(seed, seed+1))
	var edges [][2]int
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if r.Float64() < p {
				edges = append(edges, [2]int{u, v})
			}
		}
	}
	return mustGraph(t, n, edges)
}

// isMaximal reports whether no vertex outside q is adjacent to all of q.
func isMaximal(g *graph.Graph, q []int) bool {
	in := make(map[int]bool, len(q))
	for _, v := range q {
		in[v] = true
	}
outer:
	for v := 0; v < g.VertexCount(); v++ {
		if in[v] {
			continue
		}
		for _, u := range q {
			if !g.Adjacent(u, v) {
				continue outer
			}
		}
		return false
	}
	return true
}
