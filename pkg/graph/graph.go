package graph

import (
	"math/bits"
	"slices"
)

// Edge is an undirected edge between two distinct vertices with U < V.
type Edge struct {
	U int `json:"u"`
	V int `json:"v"`
}

// Graph is an immutable simple undirected graph over vertices 0..n-1.
//
// The zero value is an empty graph with no vertices.
type Graph struct {
	n     int
	edges int
	words int      // uint64 words per adjacency row
	bits  []uint64 // n*words packed adjacency matrix
	adj   [][]int  // sorted neighbors per vertex
	non   [][]int  // sorted non-neighbors per vertex, self excluded
}

// VertexCount returns the number of vertices n.
func (g *Graph) VertexCount() int { return g.n }

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Adjacent reports whether u and v are joined by an edge.
// A vertex is never adjacent to itself. Out-of-range vertices are not
// adjacent to anything.
func (g *Graph) Adjacent(u, v int) bool {
	if u < 0 || v < 0 || u >= g.n || v >= g.n {
		return false
	}
	return g.bits[u*g.words+v/64]&(1<<(uint(v)%64)) != 0
}

// Neighbors returns the sorted neighbors of v.
// The returned slice is shared with the graph and must not be modified.
func (g *Graph) Neighbors(v int) []int { return g.adj[v] }

// NonNeighbors returns the sorted vertices other than v that are not
// adjacent to v. The returned slice is shared and must not be modified.
func (g *Graph) NonNeighbors(v int) []int { return g.non[v] }

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int { return len(g.adj[v]) }

// Density returns 2m / (n(n-1)), or 0 for graphs with fewer than two vertices.
func (g *Graph) Density() float64 {
	if g.n < 2 {
		return 0
	}
	return 2 * float64(g.edges) / (float64(g.n) * float64(g.n-1))
}

// DegreeOrder returns a fresh slice of all vertices sorted by descending
// degree. Ties keep ascending vertex order.
func (g *Graph) DegreeOrder() []int {
	order := make([]int, g.n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return len(g.adj[b]) - len(g.adj[a])
	})
	return order
}

// Edges returns all edges sorted by (U, V).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for u, ns := range g.adj {
		for _, v := range ns {
			if u < v {
				out = append(out, Edge{U: u, V: v})
			}
		}
	}
	return out
}

// rowDegree counts the set bits of row u.
func (g *Graph) rowDegree(u int) int {
	d := 0
	for _, w := range g.bits[u*g.words : (u+1)*g.words] {
		d += bits.OnesCount64(w)
	}
	return d
}
