package dimacs_test

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tabuclique/pkg/dimacs"
	"github.com/matzehuels/tabuclique/pkg/errors"
	"github.com/matzehuels/tabuclique/pkg/graph"
)

func TestDecodeFile(t *testing.T) {
	inst, err := dimacs.DecodeFile(filepath.Join("testdata", "k5_minus_edge.clq"))
	require.NoError(t, err)

	assert.Equal(t, dimacs.Problem{Type: "edge", Vertices: 5, Edges: 9}, inst.Problem)
	assert.Equal(t, []string{"K5 without the edge {4, 5}", "maximum clique size 4"}, inst.Comments)
	assert.Equal(t, 5, inst.Graph.VertexCount())
	assert.Equal(t, 9, inst.Graph.EdgeCount())
	assert.False(t, inst.Graph.Adjacent(3, 4))
	assert.True(t, inst.Graph.Adjacent(0, 4))
}

func TestRead_DuplicatesAndBlankLines(t *testing.T) {
	in := "p col 3 4\n\ne 1 2\ne 2 1\n  e 1 2  \ne 2 3\n"
	g, err := dimacs.Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, []int{0, 2}, g.Neighbors(1))
}

func TestRead_NoEdges(t *testing.T) {
	g, err := dimacs.Read(strings.NewReader("p edge 3 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, g.VertexCount())
	assert.Zero(t, g.EdgeCount())
}

func TestRead_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line string
	}{
		{"missing problem", "c only comments\n", "missing problem line"},
		{"edge before problem", "e 1 2\np edge 2 1\n", "line 1"},
		{"duplicate problem", "p edge 2 1\np edge 2 1\n", "line 2"},
		{"short problem", "p edge 2\n", "line 1"},
		{"bad vertex count", "p edge x 1\n", "line 1"},
		{"negative vertex count", "p edge -2 1\n", "line 1"},
		{"bad edge count", "p edge 2 -1\n", "line 1"},
		{"short edge", "p edge 2 1\ne 1\n", "line 2"},
		{"non-integer edge", "p edge 2 1\ne 1 b\n", "line 2"},
		{"zero vertex", "p edge 2 1\nc ok\ne 0 1\n", "line 3"},
		{"out of range", "p edge 2 1\ne 1 3\n", "line 2"},
		{"unknown line", "p edge 2 1\nx 1 2\n", "line 2"},
		{"huge vertex count", "p edge 100000000 0\n", "line 1: vertex count 100000000 exceeds"},
		{"overflowing vertex count", "c big\np edge 9223372036854775807 0\n", "line 2"},
		{"one past the limit", fmt.Sprintf("p edge %d 0\n", graph.MaxVertices+1), "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dimacs.Read(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidGraph), err.Error())
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := dimacs.ReadFile(filepath.Join(t.TempDir(), "missing.clq"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestWriteRoundTrip(t *testing.T) {
	g, err := dimacs.ReadFile(filepath.Join("testdata", "k5_minus_edge.clq"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dimacs.Write(&buf, g, "generated\nby test"))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "c generated\nc by test\np edge 5 9\ne 1 2\n"), out)

	back, err := dimacs.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, g.Edges(), back.Edges())
	assert.Equal(t, dimacs.Marshal(g), dimacs.Marshal(back))

	path := filepath.Join(t.TempDir(), "out.clq")
	require.NoError(t, dimacs.WriteFile(path, g))
	again, err := dimacs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, g.Edges(), again.Edges())
}
