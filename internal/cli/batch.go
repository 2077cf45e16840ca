package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabuclique/pkg/errors"
	"github.com/matzehuels/tabuclique/pkg/pipeline"
	"github.com/matzehuels/tabuclique/pkg/report"
)

// graphExts are the file extensions collected from directory arguments.
var graphExts = []string{".clq", ".col", ".dimacs"}

func (c *CLI) batchCommand() *cobra.Command {
	var (
		flags  searchFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "batch [files or directories...]",
		Short: "Search many graphs and write a CSV report",
		Long: `Search every given DIMACS file, and every .clq, .col or .dimacs file in
the given directories, with the same options. One line per instance is
written to the report; a failing instance is reported and skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			paths, err := collectGraphs(args)
			if err != nil {
				return err
			}
			opts, err := flags.pipelineOptions(cmd, c, "")
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, flags.backend, backendNone)
			if err != nil {
				return err
			}
			defer runner.Close(context.WithoutCancel(ctx))
			return runBatch(ctx, runner, paths, opts, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", pipeline.DefaultReport, "report file (- for stdout)")

	return cmd
}

func runBatch(ctx context.Context, runner *pipeline.Runner, paths []string, opts pipeline.Options, output string) (err error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	out := os.Stdout
	if output != "-" {
		f, ferr := os.Create(output)
		if ferr != nil {
			return fmt.Errorf("create report: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}
	w := report.NewCSVWriter(out)

	items, runErr := runner.ExecuteBatch(ctx, paths, opts, func(it pipeline.BatchItem) {
		if it.Err != nil {
			logger.Error("instance failed", "path", it.Path, "error", errors.UserMessage(it.Err))
			return
		}
		if werr := w.Write(it.Result.Row()); werr != nil {
			logger.Error("write report row", "error", werr)
		}
		logger.Info("instance done", "instance", it.Result.Instance, "size", it.Result.Search.Size, "cached", it.Result.CacheHit)
	})
	if ferr := w.Flush(); ferr != nil {
		return fmt.Errorf("write report: %w", ferr)
	}
	prog.done(fmt.Sprintf("Searched %d graphs", len(items)))

	if output != "-" {
		fmt.Println(renderBatchTable(items))
		printFile(output)
	}
	return runErr
}

// collectGraphs expands directory arguments to their graph files, sorted
// by name. File arguments are kept as given.
func collectGraphs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.New(errors.ErrCodeFileNotFound, "no such file or directory: %s", arg)
			}
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && slices.Contains(graphExts, strings.ToLower(filepath.Ext(e.Name()))) {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no graph files found")
	}
	return paths, nil
}
