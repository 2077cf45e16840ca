package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabuclique/pkg/clique"
	"github.com/matzehuels/tabuclique/pkg/pipeline"
)

// searchFlags holds the search options shared by search, batch and render.
// Only flags set on the command line override the config file.
type searchFlags struct {
	restarts    int
	width       int
	trials      int
	swapBudget  int
	tabuSize    int
	seed        uint64
	eligibility string
	debug       bool
	refresh     bool
	backend     backendFlags
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.restarts, "restarts", "r", clique.DefaultRestarts, "number of restarts")
	cmd.Flags().IntVarP(&f.width, "width", "w", clique.DefaultWidth, "constructor randomization width (1 = greedy)")
	cmd.Flags().IntVar(&f.trials, "trials", clique.DefaultTrials, "constructor builds per restart")
	cmd.Flags().IntVar(&f.swapBudget, "swap-budget", clique.DefaultSwapBudget, "accepted swaps per restart")
	cmd.Flags().IntVar(&f.tabuSize, "tabu-size", clique.DefaultTabuSize, "capacity of each tabu list")
	cmd.Flags().Uint64Var(&f.seed, "seed", clique.DefaultSeed, "random seed")
	cmd.Flags().StringVar(&f.eligibility, "eligibility", "legacy", "swap eligibility: legacy, candidate")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "check partition invariants after every step")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	_ = cmd.RegisterFlagCompletionFunc("eligibility", fixedCompletions("legacy", "candidate"))
	f.backend.register(cmd)
}

// options merges the flags that were set over base.
func (f *searchFlags) options(cmd *cobra.Command, base clique.Options) (clique.Options, error) {
	o := base
	set := cmd.Flags().Changed
	if set("restarts") {
		o.Restarts = f.restarts
	}
	if set("width") {
		o.Width = f.width
	}
	if set("trials") {
		o.Trials = f.trials
	}
	if set("swap-budget") {
		o.SwapBudget = f.swapBudget
	}
	if set("tabu-size") {
		o.TabuSize = f.tabuSize
	}
	if set("seed") {
		o.Seed = f.seed
	}
	if set("eligibility") {
		e, err := clique.ParseEligibility(f.eligibility)
		if err != nil {
			return o, err
		}
		o.Eligibility = e
	}
	o.Debug = f.debug
	o = o.WithDefaults()
	return o, o.Validate()
}

// pipelineOptions builds the pipeline options for one graph file.
func (f *searchFlags) pipelineOptions(cmd *cobra.Command, c *CLI, path string) (pipeline.Options, error) {
	so, err := f.options(cmd, c.config.Search)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{Path: path, Search: so, Refresh: f.refresh}, nil
}

func (c *CLI) searchCommand() *cobra.Command {
	var (
		flags       searchFlags
		interactive bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:               "search [file]",
		Short:             "Search a DIMACS graph for a large clique",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := flags.pipelineOptions(cmd, c, args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, flags.backend, backendNone)
			if err != nil {
				return err
			}
			defer runner.Close(context.WithoutCancel(ctx))

			if interactive {
				return runInteractive(ctx, runner, opts)
			}
			return runSearch(ctx, runner, opts, asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "show live restart progress")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func runSearch(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, asJSON bool) error {
	rep := newSearchReporter(ctx, filepath.Base(opts.Path))
	opts.Search.Progress = rep.onRestart

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		if res != nil && ctx.Err() != nil {
			printWarning("Search interrupted, best clique so far:")
			printResult(res)
		}
		return err
	}
	rep.finish(res)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(res)
	printNewline()
	printNextStep("Render it", fmt.Sprintf("%s render %s -o %s.svg", appName, opts.Path, res.Instance))
	return nil
}
