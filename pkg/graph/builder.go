package graph

import (
	"fmt"

	"github.com/matzehuels/tabuclique/pkg/errors"
)

// Builder accumulates undirected edges for a fixed vertex count.
// The zero value is not usable; use [NewBuilder].
type Builder struct {
	n     int
	words int
	bits  []uint64
}

// MaxVertices bounds the vertex count of a [Graph]. The bit matrix and the
// non-neighbor lists are O(n²); at this size an edgeless graph needs about
// 550 MB. The largest DIMACS clique benchmarks have 4000 vertices.
const MaxVertices = 1 << 13

// CheckVertexCount reports an INVALID_GRAPH error unless 0 <= n <= MaxVertices.
func CheckVertexCount(n int) error {
	switch {
	case n < 0:
		return errors.New(errors.ErrCodeInvalidGraph, "vertex count must not be negative, got %d", n)
	case n > MaxVertices:
		return errors.New(errors.ErrCodeInvalidGraph, "vertex count %d exceeds the limit of %d", n, MaxVertices)
	}
	return nil
}

// NewBuilder creates a builder for a graph with n vertices. A count
// rejected by [CheckVertexCount] allocates nothing; AddEdge and
// [Builder.Build] then report the error.
func NewBuilder(n int) *Builder {
	b := &Builder{n: n}
	if CheckVertexCount(n) == nil && n > 0 {
		b.words = (n + 63) / 64
		b.bits = make([]uint64, n*b.words)
	}
	return b
}

// VertexCount returns the vertex count the builder was created with.
func (b *Builder) VertexCount() int { return b.n }

// AddEdge records the undirected edge {u, v} using 0-based indices.
// Repeated edges are idempotent and self-loops are ignored.
func (b *Builder) AddEdge(u, v int) error {
	if err := CheckVertexCount(b.n); err != nil {
		return err
	}
	if u < 0 || u >= b.n {
		return errors.New(errors.ErrCodeInvalidGraph, "vertex %d out of range [0, %d)", u, b.n)
	}
	if v < 0 || v >= b.n {
		return errors.New(errors.ErrCodeInvalidGraph, "vertex %d out of range [0, %d)", v, b.n)
	}
	if u == v {
		return nil
	}
	b.set(u, v)
	b.set(v, u)
	return nil
}

// AddEdge1 records the undirected edge {u, v} given as 1-based external IDs.
func (b *Builder) AddEdge1(u, v int) error {
	if err := b.AddEdge(u-1, v-1); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %d-%d", u, v)
	}
	return nil
}

func (b *Builder) set(u, v int) {
	b.bits[u*b.words+v/64] |= 1 << (uint(v) % 64)
}

// Build freezes the accumulated edges into an immutable [Graph].
// The builder may keep being used afterwards; later edges do not affect
// graphs already built.
//
// Complexity: O(n²) time for the neighbor and non-neighbor lists.
func (b *Builder) Build() (*Graph, error) {
	if err := CheckVertexCount(b.n); err != nil {
		return nil, err
	}

	g := &Graph{
		n:     b.n,
		words: b.words,
		bits:  append([]uint64(nil), b.bits...),
		adj:   make([][]int, b.n),
		non:   make([][]int, b.n),
	}

	total := 0
	for u := 0; u < g.n; u++ {
		deg := g.rowDegree(u)
		total += deg
		g.adj[u] = make([]int, 0, deg)
		g.non[u] = make([]int, 0, g.n-1-deg)
		for v := 0; v < g.n; v++ {
			switch {
			case u == v:
			case g.Adjacent(u, v):
				g.adj[u] = append(g.adj[u], v)
			default:
				g.non[u] = append(g.non[u], v)
			}
		}
	}
	g.edges = total / 2

	return g, nil
}

// New builds a graph with n vertices from 0-based edge pairs.
func New(n int, edges [][2]int) (*Graph, error) {
	b := NewBuilder(n)
	for i, e := range edges {
		if err := b.AddEdge(e[0], e[1]); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	return b.Build()
}

// Complete returns the complete graph K_n.
func Complete(n int) *Graph {
	b := NewBuilder(n)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			_ = b.AddEdge(u, v)
		}
	}
	g, _ := b.Build()
	return g
}
