package clique

import (
	"fmt"

	"github.com/matzehuels/tabuclique/pkg/errors"
	"github.com/matzehuels/tabuclique/pkg/graph"
)

// Pair is an unordered vertex pair, reported in the order it was checked.
type Pair struct {
	U int `json:"u"`
	V int `json:"v"`
}

func (p Pair) String() string { return fmt.Sprintf("(%d, %d)", p.U, p.V) }

// Verification is the outcome of [Verify].
type Verification struct {
	Valid    bool   `json:"valid"`
	Conflict *Pair  `json:"conflict,omitempty"` // first non-adjacent pair
	Reason   string `json:"reason,omitempty"`
}

// Err returns nil for a valid clique, otherwise an ErrCodeVerification error.
func (v Verification) Err() error {
	if v.Valid {
		return nil
	}
	return errors.New(errors.ErrCodeVerification, "incorrect clique: %s", v.Reason)
}

// Verify checks that every pair of distinct vertices in clique is adjacent
// in g. Pairs are checked in index order (0,1), (0,2), ..., and the first
// failing pair is reported. Out-of-range and repeated vertices also make the
// set invalid. The empty set is a valid clique.
//
// Complexity: O(k²) for k = len(clique).
func Verify(g *graph.Graph, clique []int) Verification {
	n := g.VertexCount()
	for i, u := range clique {
		if u < 0 || u >= n {
			return Verification{Reason: fmt.Sprintf("vertex %d at index %d out of range [0, %d)", u, i, n)}
		}
	}
	for i, u := range clique {
		for _, v := range clique[i+1:] {
			if u == v {
				return Verification{Reason: fmt.Sprintf("vertex %d appears more than once", u)}
			}
			if !g.Adjacent(u, v) {
				return Verification{
					Conflict: &Pair{U: u, V: v},
					Reason:   fmt.Sprintf("vertices %d and %d are not adjacent", u, v),
				}
			}
		}
	}
	return Verification{Valid: true}
}
