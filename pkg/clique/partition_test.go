package clique_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tabuclique/pkg/clique"
	"github.com/matzehuels/tabuclique/pkg/errors"
)

func sorted(s []int) []int {
	out := slices.Clone(s)
	slices.Sort(out)
	return out
}

type regions struct{ clique, free, excluded []int }

func snapshot(p *clique.Partition) regions {
	return regions{sorted(p.Clique()), sorted(p.Free()), sorted(p.Excluded())}
}

func TestPartition_Reset(t *testing.T) {
	p := clique.NewPartition(k5MinusEdge(t))
	require.NoError(t, p.Check())
	assert.Zero(t, p.CliqueSize())
	assert.Equal(t, 5, p.FreeSize())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, p.Free())
	assert.Empty(t, p.Excluded())

	p.Insert(3)
	p.Reset()
	require.NoError(t, p.Check())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, p.Free())
}

func TestPartition_InsertRemove(t *testing.T) {
	p := clique.NewPartition(k5MinusEdge(t))

	p.Insert(3)
	require.NoError(t, p.Check())
	assert.Equal(t, []int{3}, p.Clique())
	assert.Equal(t, []int{4}, p.Excluded())
	assert.Equal(t, 1, p.Conflicts(4))
	assert.True(t, p.InClique(3))
	assert.False(t, p.IsFree(4))

	p.Insert(0)
	p.Insert(1)
	p.Insert(2)
	require.NoError(t, p.Check())
	assert.Equal(t, 4, p.CliqueSize())
	assert.Zero(t, p.FreeSize())

	p.Remove(3)
	require.NoError(t, p.Check())
	assert.Equal(t, []int{3, 4}, sorted(p.Free()))
	assert.Zero(t, p.Conflicts(4))

	p.Insert(4)
	require.NoError(t, p.Check())
	assert.Equal(t, []int{0, 1, 2, 4}, sorted(p.Clique()))
	assert.Equal(t, []int{3}, p.Excluded())
}

func TestPartition_PreconditionsPanic(t *testing.T) {
	p := clique.NewPartition(k5MinusEdge(t))
	p.Insert(3)

	tests := []struct {
		name string
		op   func()
	}{
		{"insert clique vertex", func() { p.Insert(3) }},
		{"insert excluded vertex", func() { p.Insert(4) }},
		{"remove free vertex", func() { p.Remove(0) }},
		{"remove excluded vertex", func() { p.Remove(4) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r)
				err, ok := r.(error)
				require.True(t, ok)
				assert.True(t, errors.Is(err, errors.ErrCodeInvariant))
			}()
			tt.op()
		})
	}
}

// TestPartition_RandomWalk applies random legal Insert and Remove calls and
// checks the full invariant after each one.
func TestPartition_RandomWalk(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for trial := 0; trial < 10; trial++ {
		g := randomGraph(t, uint64(trial), 40, 0.6)
		p := clique.NewPartition(g)

		for step := 0; step < 300; step++ {
			free := p.Free()
			if len(free) > 0 && (p.CliqueSize() == 0 || r.IntN(3) > 0) {
				p.Insert(free[r.IntN(len(free))])
			} else if q := p.Clique(); len(q) > 0 {
				p.Remove(q[r.IntN(len(q))])
			}
			require.NoError(t, p.Check(), "trial %d step %d", trial, step)
			require.Equal(t, g.VertexCount(), len(p.Clique())+len(p.Free())+len(p.Excluded()))
			require.True(t, clique.Verify(g, p.Clique()).Valid)
		}
	}
}

// TestPartition_Inverse checks that Insert then Remove, and Remove then
// Insert, restore the same three vertex sets.
func TestPartition_Inverse(t *testing.T) {
	r := rand.New(rand.NewPCG(8, 13))
	g := randomGraph(t, 99, 30, 0.5)
	p := clique.NewPartition(g)

	for step := 0; step < 200; step++ {
		before := snapshot(p)
		free := p.Free()
		if len(free) > 0 && (p.CliqueSize() == 0 || r.IntN(2) == 0) {
			v := free[r.IntN(len(free))]
			p.Insert(v)
			p.Remove(v)
			assert.Equal(t, before, snapshot(p), "insert/remove %d", v)
			p.Insert(v)
		} else if q := p.Clique(); len(q) > 0 {
			v := q[r.IntN(len(q))]
			p.Remove(v)
			p.Insert(v)
			assert.Equal(t, before, snapshot(p), "remove/insert %d", v)
			p.Remove(v)
		}
		require.NoError(t, p.Check())
	}
}

func TestPartition_EmptyGraph(t *testing.T) {
	p := clique.NewPartition(mustGraph(t, 0, nil))
	require.NoError(t, p.Check())
	assert.Empty(t, p.Clique())
	assert.Empty(t, p.Free())
	assert.Empty(t, p.Excluded())
}
