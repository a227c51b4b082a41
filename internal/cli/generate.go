package cli

import (
	"io"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mstcc/pkg/errors"
	"github.com/matzehuels/mstcc/pkg/problem"
)

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := problem.GenerateOptions{
		Name:      "random",
		Vertices:  20,
		Edges:     60,
		Conflicts: 100,
		MaxWeight: 100,
	}
	var (
		seed   uint64
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random connected instance",
		Example: `  mstcc generate -n 50 -m 200 -c 500 --seed 7 -o inst.txt
  mstcc generate -n 10 -m 20 -c 10 | mstcc solve -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateInstanceName(opts.Name); err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = rand.Uint64()
				c.Logger.Info("Generated seed", "seed", seed)
			}
			p, err := problem.Generate(opts, rand.New(rand.NewPCG(seed, seed)))
			if err != nil {
				return err
			}
			return c.writeInstance(p, output)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Name, "name", opts.Name, "instance name")
	f.IntVarP(&opts.Vertices, "vertices", "n", opts.Vertices, "number of vertices")
	f.IntVarP(&opts.Edges, "edges", "m", opts.Edges, "number of edges")
	f.IntVarP(&opts.Conflicts, "conflicts", "c", opts.Conflicts, "number of conflict pairs")
	f.Uint32Var(&opts.MaxWeight, "max-weight", opts.MaxWeight, "largest edge weight")
	f.Uint64Var(&seed, "seed", 0, "random seed (default: drawn and logged)")
	f.StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// writeInstance writes p to path, or to the CLI output when path is empty.
func (c *CLI) writeInstance(p *problem.Problem, path string) error {
	var w io.Writer = c.Out
	if path != "" {
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
		}
		defer f.Close()
		w = f
	}
	if err := problem.Write(w, p); err != nil {
		return err
	}
	if path != "" {
		printFile(path)
	}
	c.Logger.Debug("Generated instance", "name", p.Name, "vertices", p.NumVertices(), "edges", p.NumEdges(), "conflicts", p.NumCC)
	return nil
}
