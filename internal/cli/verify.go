package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabuclique/pkg/clique"
	"github.com/matzehuels/tabuclique/pkg/dimacs"
	"github.com/matzehuels/tabuclique/pkg/errors"
)

func (c *CLI) verifyCommand() *cobra.Command {
	var oneBased bool

	cmd := &cobra.Command{
		Use:   "verify [file] [vertices...]",
		Short: "Check that a vertex set is a clique",
		Long: `Check that every pair of the given vertices is adjacent in the graph.
Vertices may be given as separate arguments or comma separated, as in the
batch report ("0,5,12"). IDs are 0-based unless --one-based is set.`,
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			vertices, err := parseVertices(args[1:], oneBased)
			if err != nil {
				return err
			}
			prog := newProgress(loggerFromContext(cmd.Context()))
			g, err := dimacs.ReadFile(args[0])
			if err != nil {
				return err
			}
			prog.done("Loaded graph")

			v := clique.Verify(g, vertices)
			if !v.Valid {
				printError("Not a clique: %s", v.Reason)
				return v.Err()
			}
			printSuccess("Valid clique of size %s", StyleNumber.Render(strconv.Itoa(len(vertices))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&oneBased, "one-based", false, "vertex IDs are 1-based as in DIMACS files")
	return cmd
}

// parseVertices parses vertex IDs from args, each of which may hold a
// comma separated list.
func parseVertices(args []string, oneBased bool) ([]int, error) {
	var out []int
	for _, arg := range args {
		for _, f := range strings.Split(arg, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "invalid vertex %q", f)
			}
			if oneBased {
				v--
			}
			out = append(out, v)
		}
	}
	return out, nil
}
