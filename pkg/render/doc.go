// Package render draws a graph with a clique highlighted.
//
// # Overview
//
// [ToDOT] produces an undirected Graphviz DOT document in which clique
// vertices are filled and clique edges drawn bold. [RenderSVG] lays the
// document out with the embedded Graphviz library (no external binary
// needed) and returns SVG bytes. A clique alone is laid out on a circle;
// drawings with more of the graph use a spring layout.
//
//	opts := render.Options{}
//	dot := render.ToDOT(g, best, opts)
//	svg, err := render.RenderSVG(ctx, dot, opts.Engine())
//
// # Large Graphs
//
// Benchmark instances have hundreds of vertices and tens of thousands of
// edges, which Graphviz cannot draw legibly. By default [ToDOT] keeps only
// the clique and, when [Options.Neighborhood] is set, the vertices adjacent
// to at least [Options.MinLinks] clique vertices. [Options.Full] draws the
// whole graph.
package render
