// Package dimacs reads and writes graphs in the DIMACS clique format used by
// the standard .clq benchmark instances (C125.9, brock200_1, keller4, ...).
//
// # Format
//
// The format is line oriented:
//
//	c this is a comment
//	p edge 4 3
//	e 1 2
//	e 2 3
//	e 3 4
//
// Comment lines start with "c". Exactly one problem line "p <type> <n> <m>"
// declares the vertex count n and the edge count m, and must precede every
// edge line. Edge lines "e <u> <v>" use 1-based vertex IDs. Repeated edges
// are accepted and collapse to one, so the declared edge count is only
// informational. Blank lines are ignored.
//
// Vertex IDs are shifted to 0-based indices on read and back to 1-based on
// write. Malformed input produces an error coded
// [errors.ErrCodeInvalidGraph] that names the offending line.
package dimacs
