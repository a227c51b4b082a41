package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mstcc/pkg/errors"
	"github.com/matzehuels/mstcc/pkg/problem"
)

// maxLineSize bounds a solution line. A tree on n vertices needs roughly
// 12 bytes per edge for large instances.
const maxLineSize = 64 << 20

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var withWeight bool

	cmd := &cobra.Command{
		Use:   "check INSTANCE [SOLUTIONS]",
		Short: "Verify solution lines against an instance",
		Long: `Check reads solution lines, either result lines written by solve or bare
"u-v u-v ..." edge lists, and verifies that each one is a spanning tree of
the instance. Declared weights and conflict counts are recomputed and
compared. Solutions are read from stdin when no file is given.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readInstance(args[0])
			if err != nil {
				return err
			}
			in := io.Reader(os.Stdin)
			if len(args) == 2 {
				f, err := os.Open(args[1])
				if err != nil {
					return errors.Wrap(errors.ErrCodeFileNotFound, err, "solutions %s", args[1])
				}
				defer f.Close()
				in = f
			}
			return c.runCheck(p, in, withWeight)
		},
	}

	cmd.Flags().BoolVar(&withWeight, "weight", false, "bare edge lists start with the declared weight")

	return cmd
}

// runCheck verifies every non-blank line of in and fails if any solution
// is invalid.
func (c *CLI) runCheck(p *problem.Problem, in io.Reader, withWeight bool) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	total, failed := 0, 0
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		total++

		sol, err := problem.ParseSolution(p, text, withWeight)
		if err != nil {
			failed++
			printError("line %d: %s", line, errors.UserMessage(err))
			continue
		}
		r := p.Verify(sol)
		label := fmt.Sprintf("line %d", line)
		if sol.Name != "" {
			label += " (" + sol.Name + ")"
		}
		if !r.OK() {
			failed++
			printError("%s: %s", label, strings.Join(r.Violations, ", "))
			continue
		}
		if r.Feasible() {
			printSuccess("%s: weight %d, feasible", label, r.Weight)
		} else {
			printWarning("%s: weight %d, %d conflicts", label, r.Weight, r.Conflicts)
			for _, pair := range r.Pairs {
				u1, v1 := p.G.Ends(pair[0])
				u2, v2 := p.G.Ends(pair[1])
				printDetail("%d-%d conflicts with %d-%d", u1, v1, u2, v2)
			}
		}
		c.Logger.Debug("Verified solution", "line", line, "edges", len(sol.Edges), "weight", r.Weight, "conflicts", r.Conflicts)
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read solutions")
	}

	if total == 0 {
		printInfo("No solutions to check")
		return nil
	}
	if failed > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%d of %d solutions failed verification", failed, total)
	}
	printInfo("%d solutions verified", total)
	return nil
}
