package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabuclique/pkg/pipeline"
	"github.com/matzehuels/tabuclique/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output       string // output file; derived from the input when empty
	format       string // dot or svg; inferred from output when empty
	full         bool   // draw the whole graph
	neighborhood bool   // add vertices adjacent to the clique
	minLinks     int    // adjacency threshold for neighborhood
	layout       string // Graphviz engine, empty for automatic
	oneBased     bool   // label vertices with DIMACS IDs
}

func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags searchFlags
		opts  renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw a graph with its best clique highlighted",
		Long: `Search the graph (or reuse the cached result) and draw the clique as DOT
or as SVG laid out by Graphviz. By default only the clique is drawn; use
--neighborhood to add the vertices around it, or --full for the whole graph.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts.format = resolveFormat(opts.format, opts.output)
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			if err := render.ValidateLayout(opts.layout); err != nil {
				return err
			}
			popts, err := flags.pipelineOptions(cmd, c, args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, flags.backend, backendNone)
			if err != nil {
				return err
			}
			defer runner.Close(context.WithoutCancel(ctx))
			return runRender(ctx, runner, popts, &opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), dot")
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletions("svg", "dot"))
	cmd.Flags().BoolVar(&opts.full, "full", false, "draw every vertex and edge")
	cmd.Flags().BoolVar(&opts.neighborhood, "neighborhood", false, "also draw vertices adjacent to the clique")
	cmd.Flags().IntVar(&opts.minLinks, "min-links", 1, "clique neighbors a vertex needs to be drawn with --neighborhood")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "Graphviz engine for svg: circo, neato, fdp, sfdp, dot (default: automatic)")
	_ = cmd.RegisterFlagCompletionFunc("layout", fixedCompletions("circo", "neato", "fdp", "sfdp", "dot"))
	cmd.Flags().BoolVar(&opts.oneBased, "one-based", false, "label vertices with 1-based DIMACS IDs")

	return cmd
}

// resolveFormat returns format, or the format named by output's extension,
// or svg.
func resolveFormat(format, output string) string {
	if format != "" {
		return format
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); pipeline.ValidFormats[ext] {
		return ext
	}
	return pipeline.FormatSVG
}

// outputPath derives the output file from the input when output is empty.
func outputPath(output, input, format string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

func runRender(ctx context.Context, runner *pipeline.Runner, popts pipeline.Options, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", popts.Path)

	rep := newSearchReporter(ctx, filepath.Base(popts.Path))
	popts.Search.Progress = rep.onRestart
	res, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	rep.finish(res)

	var data []byte
	err = withSpinner(ctx, fmt.Sprintf("Drawing %s...", opts.format), "Drawing failed", func() error {
		var rerr error
		data, rerr = runner.Render(ctx, res, opts.format, render.Options{
			Full:         opts.full,
			Neighborhood: opts.neighborhood,
			MinLinks:     opts.minLinks,
			OneBased:     opts.oneBased,
			Layout:       opts.layout,
		})
		return rerr
	})
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	path := outputPath(opts.output, popts.Path, opts.format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Clique of size %d drawn", res.Search.Size)
	printFile(path)
	return nil
}
