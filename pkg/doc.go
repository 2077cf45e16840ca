// Package pkg holds the libraries behind tabuclique, a restarted tabu-search
// heuristic for the maximum clique problem.
//
// # Overview
//
// The packages fall into three groups:
//
//  1. Core: [graph] (adjacency model), [clique] (partition, tabu lists,
//     constructor, searcher, verifier) and [dimacs] (graph files)
//  2. Infrastructure: [cache], [store], [observability], [errors] and
//     [buildinfo]
//  3. Surfaces: [pipeline] (load → search → verify → record), [report]
//     (CSV reports), [render] (DOT and SVG drawings) and [api] (HTTP)
//
// # Architecture
//
//	DIMACS file / HTTP body
//	         ↓
//	    [dimacs] → [graph]
//	         ↓
//	    [pipeline] ──── [cache] (result by graph hash + options)
//	         ↓
//	    [clique] Searcher: construct → Move/Swap local search, N restarts
//	         ↓
//	    [clique] Verify ──── [store] (run history)
//	         ↓
//	    [report] CSV / [render] SVG / [api] JSON
//
// # Quick Start
//
//	g, err := dimacs.ReadFile("examples/graphs/johnson8-2-4.clq")
//	if err != nil {
//	    return err
//	}
//	s, err := clique.NewSearcher(g, clique.Options{Restarts: 100, Width: 2})
//	if err != nil {
//	    return err
//	}
//	res, err := s.Search(ctx)
//	fmt.Println(res.Size, clique.Verify(g, res.Clique).Valid)
//
// Searches are deterministic for a given seed, which is what makes the
// result cache in [pipeline] sound.
package pkg
