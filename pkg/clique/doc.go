// Package clique implements a tabu-search heuristic for the maximum clique
// problem.
//
// # The Problem
//
// A clique is a set of vertices that are pairwise adjacent. Finding the
// largest one is NP-hard, so this package does not attempt to prove
// optimality. It combines a randomized greedy constructor with a short local
// search and repeats the pair for a configurable number of restarts, keeping
// the largest clique seen.
//
// # Partition
//
// The search state is a [Partition]: a permutation of all vertices split by
// two borders into three contiguous regions.
//
//	order: [ clique | free | excluded ]
//	        0       qBorder  cBorder   n
//
// For every vertex the partition keeps a conflict counter, the number of
// clique vertices it is not adjacent to. Free vertices have no conflicts and
// can join the clique directly; excluded vertices have at least one. Both
// [Partition.Insert] and [Partition.Remove] only touch the non-neighbors of
// the vertex being moved, and region changes are slot swaps, so no operation
// allocates or shifts.
//
// # Search Loop
//
// Each restart of a [Searcher]:
//
//  1. Resets the partition and both tabu lists
//  2. Seeds the clique with the best of several [Constructor] builds
//  3. Alternates Move (insert a random free vertex) and Swap1-to-1 (trade a
//     clique vertex for a vertex whose only conflict it is) until the swap
//     budget is spent or neither step is possible
//  4. Records the clique if it is strictly larger than the best so far
//
// Two bounded [TabuList] values remember recently added and removed vertices
// so that swaps do not immediately undo each other.
//
// # Swap Eligibility
//
// [EligibilityLegacy], the default, only lets a clique vertex be swapped
// out if that same vertex is already in the removed list. Since the list
// starts empty at every restart this never admits a swap, so the search
// reduces to greedy construction followed by Moves. [EligibilityCandidate]
// instead forbids candidates that were recently removed, which lets swaps
// happen. The default is kept for reproducibility with earlier results.
//
// # Usage
//
//	s, err := clique.NewSearcher(g, clique.Options{Seed: 7})
//	if err != nil {
//	    return err
//	}
//	if err := s.RunSearch(ctx, 100, 2); err != nil {
//	    return err
//	}
//	best := s.BestClique()
//	if v := clique.Verify(g, best); !v.Valid {
//	    log.Warn("incorrect clique", "conflict", v.Conflict)
//	}
//
// The same seed, graph and options always produce the same clique.
package clique
