// Package cli implements the tabuclique command-line interface.
//
// # Commands
//
//   - search: find a large clique in one DIMACS graph
//   - batch: search many graphs and write the CSV report
//   - verify: check a vertex set against a graph
//   - render: draw the graph with its clique highlighted (DOT or SVG)
//   - serve: expose the pipeline over HTTP
//   - cache: inspect and clear the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// routes cache and search hooks to the log. Loggers are passed through
// context.Context so long-running searches can report progress.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger stamping each line with the wall clock to the
// hundredth of a second ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey struct{}

// withLogger stores l in ctx. The root command does this before any
// subcommand runs.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger stored by withLogger, or
// log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	l, ok := ctx.Value(ctxKey{}).(*log.Logger)
	if !ok {
		return log.Default()
	}
	return l
}
