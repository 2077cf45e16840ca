package render

import (
	"bytes"
	"fmt"
	"slices"
)

// Graph is the adjacency view ToDOT needs. *graph.Graph satisfies it.
type Graph interface {
	VertexCount() int
	Adjacent(u, v int) bool
}

// Options configures DOT output.
type Options struct {
	// Full draws every vertex and edge of the graph.
	Full bool

	// Neighborhood adds vertices adjacent to at least MinLinks clique
	// vertices. Ignored when Full is set.
	Neighborhood bool

	// MinLinks is the adjacency threshold for Neighborhood; 0 means 1.
	MinLinks int

	// OneBased labels vertices with DIMACS 1-based IDs.
	OneBased bool

	// Layout names the Graphviz engine for SVG output (circo, neato, fdp,
	// sfdp, dot). Empty picks one from the other fields; see [Options.Engine].
	Layout string
}

const (
	cliqueFill = "#f4a261"
	cliqueEdge = "#e76f51"
)

// ToDOT renders g as an undirected DOT graph with clique highlighted.
// Vertices are named by their 0-based index; labels follow Options.OneBased.
func ToDOT(g Graph, clique []int, opts Options) string {
	in := make(map[int]bool, len(clique))
	for _, v := range clique {
		in[v] = true
	}
	vertices := selectVertices(g, clique, in, opts)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, width=0.4, fixedsize=true];\n")
	buf.WriteString("  edge [color=\"#b0b0b0\"];\n")
	buf.WriteString("\n")

	for _, v := range vertices {
		label := v
		if opts.OneBased {
			label++
		}
		if in[v] {
			fmt.Fprintf(&buf, "  %d [label=\"%d\", fillcolor=%q, penwidth=2];\n", v, label, cliqueFill)
		} else {
			fmt.Fprintf(&buf, "  %d [label=\"%d\"];\n", v, label)
		}
	}

	buf.WriteString("\n")
	for i, u := range vertices {
		for _, v := range vertices[i+1:] {
			if !g.Adjacent(u, v) {
				continue
			}
			if in[u] && in[v] {
				fmt.Fprintf(&buf, "  %d -- %d [color=%q, penwidth=2.5];\n", u, v, cliqueEdge)
			} else {
				fmt.Fprintf(&buf, "  %d -- %d;\n", u, v)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func selectVertices(g Graph, clique []int, in map[int]bool, opts Options) []int {
	n := g.VertexCount()
	if opts.Full {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}

	out := make([]int, 0, len(clique))
	for _, v := range clique {
		if v >= 0 && v < n {
			out = append(out, v)
		}
	}
	if opts.Neighborhood {
		need := max(opts.MinLinks, 1)
		for v := 0; v < n; v++ {
			if in[v] {
				continue
			}
			links := 0
			for _, u := range clique {
				if g.Adjacent(u, v) {
					links++
				}
			}
			if links >= need {
				out = append(out, v)
			}
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
