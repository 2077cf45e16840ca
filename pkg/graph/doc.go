// Package graph provides the immutable undirected graph model searched by
// the clique engine.
//
// # Overview
//
// A [Graph] has n vertices indexed 0..n-1. For every vertex it stores the
// sorted neighbor list, the sorted non-neighbor list (the complement,
// excluding the vertex itself) and a row of a packed adjacency bit matrix.
// The non-neighbor lists drive the clique partition updates; the bit matrix
// answers [Graph.Adjacent] in constant time.
//
// A Graph is immutable after construction and safe for concurrent readers.
//
// # Building
//
// Use a [Builder] to collect edges, then call [Builder.Build]:
//
//	b := graph.NewBuilder(5)
//	_ = b.AddEdge(0, 1)
//	_ = b.AddEdge1(2, 3) // 1-based external IDs, as in DIMACS files
//	g, err := b.Build()
//
// Duplicate edges are idempotent and self-loops are ignored, so the edge
// count reported by [Graph.EdgeCount] is the number of distinct undirected
// edges.
//
// # Degree Order
//
// [Graph.DegreeOrder] returns all vertices sorted by descending degree with
// ties broken by ascending vertex index. The greedy clique constructor
// computes it once per graph.
package graph
