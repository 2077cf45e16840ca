package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/tabuclique/pkg/errors"
	"github.com/matzehuels/tabuclique/pkg/graph"
)

// maxLine bounds a single input line. Benchmark files never come close.
const maxLine = 1 << 20

// Problem is the content of the "p" line.
type Problem struct {
	Type     string // usually "edge" or "col"
	Vertices int
	Edges    int // declared edge count, may differ from the distinct edges read
}

// Instance is a parsed DIMACS file.
type Instance struct {
	Problem  Problem
	Comments []string // comment text without the leading "c"
	Graph    *graph.Graph
}

// Read parses a DIMACS graph from r and returns the graph.
// Read does not close r.
func Read(r io.Reader) (*graph.Graph, error) {
	inst, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return inst.Graph, nil
}

// ReadFile opens path and parses it with [Read]. A missing file is reported
// with [errors.ErrCodeFileNotFound].
func ReadFile(path string) (*graph.Graph, error) {
	inst, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return inst.Graph, nil
}

// DecodeFile is [ReadFile] returning the full [Instance].
func DecodeFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	inst, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

// Decode parses a DIMACS graph from r and returns the problem line, the
// comments and the graph.
func Decode(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var (
		inst    Instance
		b       *graph.Builder
		lineNum int
	)
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line[0] == 'c' {
			inst.Comments = append(inst.Comments, strings.TrimSpace(line[1:]))
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "p":
			if b != nil {
				return nil, lineError(lineNum, "duplicate problem line")
			}
			if len(fields) != 4 {
				return nil, lineError(lineNum, "problem line must be \"p <type> <vertices> <edges>\"")
			}
			n, ok := parseCount(fields[2])
			if !ok {
				return nil, lineError(lineNum, "vertex count %q is not a non-negative integer", fields[2])
			}
			m, ok := parseCount(fields[3])
			if !ok {
				return nil, lineError(lineNum, "edge count %q is not a non-negative integer", fields[3])
			}
			if n > graph.MaxVertices {
				return nil, lineError(lineNum, "vertex count %d exceeds the limit of %d", n, graph.MaxVertices)
			}
			inst.Problem = Problem{Type: fields[1], Vertices: n, Edges: m}
			b = graph.NewBuilder(n)

		case "e":
			if b == nil {
				return nil, lineError(lineNum, "edge before problem line")
			}
			if len(fields) != 3 {
				return nil, lineError(lineNum, "edge line must be \"e <u> <v>\"")
			}
			u, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, lineError(lineNum, "vertex %q is not an integer", fields[1])
			}
			v, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, lineError(lineNum, "vertex %q is not an integer", fields[2])
			}
			if err := b.AddEdge1(u, v); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "line %d", lineNum)
			}

		default:
			return nil, lineError(lineNum, "unknown line type %q", fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read line %d", lineNum+1)
	}
	if b == nil {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "missing problem line")
	}

	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	inst.Graph = g
	return &inst, nil
}

func parseCount(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil && n >= 0
}

func lineError(line int, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidGraph, "line %d: %s", line, fmt.Sprintf(format, args...))
}
