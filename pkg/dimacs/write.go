package dimacs

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/tabuclique/pkg/graph"
)

// Write encodes g in DIMACS format. Each comment becomes one "c" line ahead
// of the problem line; comments containing newlines are split.
func Write(w io.Writer, g *graph.Graph, comments ...string) error {
	bw := bufio.NewWriter(w)
	for _, c := range comments {
		for _, line := range strings.Split(c, "\n") {
			if line == "" {
				fmt.Fprintln(bw, "c")
				continue
			}
			fmt.Fprintf(bw, "c %s\n", line)
		}
	}
	fmt.Fprintf(bw, "p edge %d %d\n", g.VertexCount(), g.EdgeCount())
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "e %d %d\n", e.U+1, e.V+1)
	}
	return bw.Flush()
}

// Marshal returns the DIMACS encoding of g.
func Marshal(g *graph.Graph, comments ...string) []byte {
	var buf bytes.Buffer
	_ = Write(&buf, g, comments...)
	return buf.Bytes()
}

// WriteFile writes g to path, replacing any existing file.
func WriteFile(path string, g *graph.Graph, comments ...string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, g, comments...); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
