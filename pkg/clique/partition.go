package clique

import (
	"fmt"

	"github.com/matzehuels/tabuclique/pkg/errors"
	"github.com/matzehuels/tabuclique/pkg/graph"
)

// Partition splits the vertices of a graph into a clique, a free region and
// an excluded region, and tracks for every vertex how many clique vertices it
// conflicts with (is not adjacent to).
//
// Invariants, for every vertex v:
//   - order[position[v]] == v
//   - v is in the clique region iff position[v] < qBorder
//   - v is free iff qBorder <= position[v] < cBorder, and then tau[v] == 0
//   - v is excluded iff position[v] >= cBorder, and then tau[v] >= 1
//
// A Partition is not safe for concurrent use.
type Partition struct {
	g        *graph.Graph
	order    []int
	position []int
	tau      []int
	qBorder  int
	cBorder  int
}

// NewPartition returns a reset partition over g.
func NewPartition(g *graph.Graph) *Partition {
	n := g.VertexCount()
	p := &Partition{
		g:        g,
		order:    make([]int, n),
		position: make([]int, n),
		tau:      make([]int, n),
	}
	p.Reset()
	return p
}

// Reset restores the identity order and an empty clique. Every vertex
// becomes free with no conflicts.
func (p *Partition) Reset() {
	for i := range p.order {
		p.order[i] = i
		p.position[i] = i
		p.tau[i] = 0
	}
	p.qBorder = 0
	p.cBorder = len(p.order)
}

// swap exchanges the vertex v with whatever occupies slot.
func (p *Partition) swap(v, slot int) {
	u := p.order[slot]
	from := p.position[v]
	p.order[from], p.order[slot] = u, v
	p.position[u], p.position[v] = from, slot
}

// Insert moves the free vertex v into the clique. Non-neighbors of v gain a
// conflict; those that had none leave the free region.
// It panics if v is not free.
//
// Complexity: O(|NonNeighbors(v)|).
func (p *Partition) Insert(v int) {
	if !p.IsFree(v) {
		errors.Invariant("insert %d: vertex is not free (slot %d, tau %d, borders %d/%d)",
			v, p.position[v], p.tau[v], p.qBorder, p.cBorder)
	}
	for _, j := range p.g.NonNeighbors(v) {
		if p.tau[j] == 0 {
			p.cBorder--
			p.swap(j, p.cBorder)
		}
		p.tau[j]++
	}
	p.swap(v, p.qBorder)
	p.qBorder++
}

// Remove moves the clique vertex v back to the free region. Non-neighbors of
// v lose a conflict; those left with none become free.
// It panics if v is not in the clique.
//
// Complexity: O(|NonNeighbors(v)|).
func (p *Partition) Remove(v int) {
	if !p.InClique(v) {
		errors.Invariant("remove %d: vertex is not in the clique (slot %d, qBorder %d)",
			v, p.position[v], p.qBorder)
	}
	for _, j := range p.g.NonNeighbors(v) {
		if p.tau[j] == 1 {
			p.swap(j, p.cBorder)
			p.cBorder++
		}
		p.tau[j]--
	}
	p.qBorder--
	p.swap(v, p.qBorder)
}

// InClique reports whether v is in the clique region.
func (p *Partition) InClique(v int) bool { return p.position[v] < p.qBorder }

// IsFree reports whether v is in the free region.
func (p *Partition) IsFree(v int) bool {
	pos := p.position[v]
	return pos >= p.qBorder && pos < p.cBorder
}

// Conflicts returns the number of clique vertices not adjacent to v.
func (p *Partition) Conflicts(v int) int { return p.tau[v] }

// CliqueSize returns the number of vertices in the clique region.
func (p *Partition) CliqueSize() int { return p.qBorder }

// FreeSize returns the number of vertices in the free region.
func (p *Partition) FreeSize() int { return p.cBorder - p.qBorder }

// Clique returns a copy of the clique region in slot order.
func (p *Partition) Clique() []int { return append([]int(nil), p.order[:p.qBorder]...) }

// Free returns a copy of the free region in slot order.
func (p *Partition) Free() []int { return append([]int(nil), p.order[p.qBorder:p.cBorder]...) }

// Excluded returns a copy of the excluded region in slot order.
func (p *Partition) Excluded() []int { return append([]int(nil), p.order[p.cBorder:]...) }

// Check recomputes every invariant from scratch and returns an
// ErrCodeInvariant error describing the first one that does not hold.
//
// Complexity: O(n²).
func (p *Partition) Check() error {
	n := len(p.order)
	if p.qBorder < 0 || p.qBorder > p.cBorder || p.cBorder > n {
		return errors.New(errors.ErrCodeInvariant, "borders out of order: 0 <= %d <= %d <= %d", p.qBorder, p.cBorder, n)
	}
	for slot, v := range p.order {
		if v < 0 || v >= n || p.position[v] != slot {
			return errors.New(errors.ErrCodeInvariant, "slot %d holds %d but position disagrees", slot, v)
		}
	}
	clique := p.order[:p.qBorder]
	for v := 0; v < n; v++ {
		want := 0
		for _, u := range clique {
			if u != v && !p.g.Adjacent(u, v) {
				want++
			}
		}
		if p.tau[v] != want {
			return errors.New(errors.ErrCodeInvariant, "vertex %d: tau %d, want %d", v, p.tau[v], want)
		}
		if err := p.checkRegion(v); err != nil {
			return err
		}
	}
	return nil
}

func (p *Partition) checkRegion(v int) error {
	switch {
	case p.InClique(v) && p.tau[v] != 0:
		return p.regionError(v, "clique")
	case p.IsFree(v) && p.tau[v] != 0:
		return p.regionError(v, "free")
	case !p.InClique(v) && !p.IsFree(v) && p.tau[v] < 1:
		return p.regionError(v, "excluded")
	}
	return nil
}

func (p *Partition) regionError(v int, region string) error {
	return errors.New(errors.ErrCodeInvariant, "%s vertex %d has tau %d", region, v, p.tau[v])
}

// String renders the three regions for debugging.
func (p *Partition) String() string {
	return fmt.Sprintf("clique=%v free=%v excluded=%v", p.Clique(), p.Free(), p.Excluded())
}
