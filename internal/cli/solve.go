package cli

import (
	"bytes"
	"context"
	stderrors "errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mstcc/pkg/config"
	"github.com/matzehuels/mstcc/pkg/errors"
	"github.com/matzehuels/mstcc/pkg/metrics"
	"github.com/matzehuels/mstcc/pkg/observability"
	"github.com/matzehuels/mstcc/pkg/pipeline"
	"github.com/matzehuels/mstcc/pkg/problem"
	"github.com/matzehuels/mstcc/pkg/render"
)

// solveFlags holds the flags of the solve command that are not solver
// parameters.
type solveFlags struct {
	config      string
	seed        uint64
	noCache     bool
	redisAddr   string
	refresh     bool
	metricsFile string
	dotFile     string
	svgFile     string
	jsonFile    string
	showNonTree bool
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	opts := pipeline.DefaultOptions()
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "solve INSTANCE",
		Short: "Find a low-cost spanning tree for an instance",
		Long: `Solve builds an initial spanning tree and improves it by edge exchange.

The result line "name,seconds,conflicts,weight,u-v u-v ..." is written to
stdout. Parameters can also come from a TOML or YAML file (--config); flags
given on the command line take precedence.

Algorithms:
  2ex          replace one tree edge at a time
  4ex          replace two tree edges at a time
  2ex+4ex      both, until neither improves
  ils-<alg>    any of the above inside iterated local search`,
		Example: `  mstcc solve instance.txt --seed 1
  mstcc solve instance.txt --alg ils-2ex --init greedy --ils-max-iters 500
  mstcc solve instance.txt --config params.toml --svg tree.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := mergeOptions(cmd, opts, &flags)
			if err != nil {
				return err
			}
			return c.runSolve(cmd.Context(), args[0], merged, &flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.config, "config", "", "parameter file (.toml, .yaml)")
	f.Uint64Var(&flags.seed, "seed", 0, "random seed (default: drawn and logged)")
	f.Uint64Var(&opts.Alpha, "alpha", opts.Alpha, "weight coefficient of the objective")
	f.Uint64Var(&opts.Beta, "beta", opts.Beta, "conflict coefficient of the objective")
	f.Uint64Var(&opts.GreedyAlpha, "greedy-alpha", opts.GreedyAlpha, "weight coefficient of the greedy constructor")
	f.Uint64Var(&opts.GreedyBeta, "greedy-beta", opts.GreedyBeta, "conflict coefficient of the greedy constructor")
	f.StringVar((*string)(&opts.Init), "init", string(opts.Init), "initial tree: random, kruskal, greedy")
	f.StringVar(&opts.Alg, "alg", opts.Alg, "algorithm: 2ex, 4ex, 2ex+4ex, ils-2ex, ils-4ex, ils-2ex+4ex")
	f.BoolVar(&opts.Sort, "sort", false, "scan candidate edges by ascending objective")
	f.BoolVar(&opts.StopOnFeasible, "stop-on-feasible", false, "stop at the first conflict-free tree")

	f.IntVar(&opts.ILS.MaxIters, "ils-max-iters", opts.ILS.MaxIters, "ILS iteration limit")
	f.IntVar(&opts.ILS.MaxItersNoImprov, "ils-max-iters-no-improv", opts.ILS.MaxItersNoImprov, "ILS iterations without improvement before stopping")
	f.IntVar(&opts.ILS.NumExcludes, "ils-excludes", opts.ILS.NumExcludes, "edges removed per perturbation")
	f.IntVar(&opts.ILS.ItersRestart, "ils-iters-restart", opts.ILS.ItersRestart, "iterations without improvement before a restart (0 disables)")
	f.IntVar(&opts.ILS.ItersRestartToBest, "ils-iters-restart-to-best", opts.ILS.ItersRestartToBest, "iterations without improvement before returning to the best tree (0 disables)")
	f.StringVar((*string)(&opts.ILS.Restart), "ils-restart", string(opts.ILS.Restart), "restart strategy: random, kruskal, greedy")

	f.BoolVar(&flags.noCache, "no-cache", false, "disable the solution cache")
	f.StringVar(&flags.redisAddr, "cache-redis", "", "use the Redis server at ADDR as solution cache")
	f.BoolVar(&flags.refresh, "refresh", false, "ignore cached solutions")
	f.StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus textfile metrics to PATH")
	f.StringVar(&flags.dotFile, "dot", "", "write the tree as Graphviz DOT to PATH")
	f.StringVar(&flags.svgFile, "svg", "", "render the tree as SVG to PATH")
	f.StringVar(&flags.jsonFile, "json", "", "write the full result as JSON to PATH")
	f.BoolVar(&flags.showNonTree, "show-non-tree", false, "include non-tree edges in DOT and SVG output")

	return cmd
}

// solverFlags lists the flags that map onto pipeline options. When a config
// file is given, only these flags that were set explicitly override it.
var solverFlags = []string{
	"alpha", "beta", "greedy-alpha", "greedy-beta", "init", "alg", "sort", "stop-on-feasible",
	"ils-max-iters", "ils-max-iters-no-improv", "ils-excludes",
	"ils-iters-restart", "ils-iters-restart-to-best", "ils-restart",
}

// mergeOptions combines the config file and the command-line flags.
func mergeOptions(cmd *cobra.Command, fromFlags pipeline.Options, flags *solveFlags) (pipeline.Options, error) {
	opts := fromFlags
	if flags.config != "" {
		opts = pipeline.DefaultOptions()
		if err := config.Load(flags.config, &opts); err != nil {
			return opts, err
		}
		for _, name := range solverFlags {
			if cmd.Flags().Changed(name) {
				overrideOption(&opts, &fromFlags, name)
			}
		}
	}
	if cmd.Flags().Changed("seed") {
		seed := flags.seed
		opts.Seed = &seed
	}
	return opts, opts.Validate()
}

// overrideOption copies the option behind flag name from src to dst.
func overrideOption(dst, src *pipeline.Options, name string) {
	switch name {
	case "alpha":
		dst.Alpha = src.Alpha
	case "beta":
		dst.Beta = src.Beta
	case "greedy-alpha":
		dst.GreedyAlpha = src.GreedyAlpha
	case "greedy-beta":
		dst.GreedyBeta = src.GreedyBeta
	case "init":
		dst.Init = src.Init
	case "alg":
		dst.Alg = src.Alg
	case "sort":
		dst.Sort = src.Sort
	case "stop-on-feasible":
		dst.StopOnFeasible = src.StopOnFeasible
	case "ils-max-iters":
		dst.ILS.MaxIters = src.ILS.MaxIters
	case "ils-max-iters-no-improv":
		dst.ILS.MaxItersNoImprov = src.ILS.MaxItersNoImprov
	case "ils-excludes":
		dst.ILS.NumExcludes = src.ILS.NumExcludes
	case "ils-iters-restart":
		dst.ILS.ItersRestart = src.ILS.ItersRestart
	case "ils-iters-restart-to-best":
		dst.ILS.ItersRestartToBest = src.ILS.ItersRestartToBest
	case "ils-restart":
		dst.ILS.Restart = src.ILS.Restart
	}
}

// runSolve solves one instance and writes the requested outputs. An
// interrupted run still reports the best tree found before returning the
// cancellation error.
func (c *CLI) runSolve(ctx context.Context, input string, opts pipeline.Options, flags *solveFlags) error {
	var reg *prometheus.Registry
	if flags.metricsFile != "" {
		reg = metrics.Register()
		defer observability.Reset()
	}

	p, err := readInstance(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("Read instance", "name", p.Name, "vertices", p.NumVertices(), "edges", p.NumEdges(), "conflicts", p.NumCC)

	runner, err := c.newRunner(ctx, flags.noCache, flags.redisAddr)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	opts.Logger = c.Logger
	opts.Refresh = flags.refresh

	prog := newProgress(c.Logger)
	res, solveErr := runner.Solve(ctx, p, opts)
	if res == nil {
		return solveErr
	}
	if err := res.WriteCSV(c.Out, p); err != nil {
		return err
	}
	if solveErr != nil && stderrors.Is(solveErr, context.Canceled) {
		c.Logger.Warn("Interrupted, reporting best tree so far")
	} else if solveErr == nil {
		prog.done("Solved " + p.Name)
	}
	printStats(res.Conflicts, res.Weight, res.Cached)

	if err := c.writeOutputs(ctx, p, res, flags); err != nil {
		return err
	}
	if reg != nil {
		if err := errors.ValidateOutputPath(flags.metricsFile); err != nil {
			return err
		}
		if err := metrics.WriteFile(flags.metricsFile, reg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write metrics %s", flags.metricsFile)
		}
		printFile(flags.metricsFile)
	}
	return solveErr
}

// writeOutputs writes the JSON, DOT and SVG artifacts that were requested.
func (c *CLI) writeOutputs(ctx context.Context, p *problem.Problem, res *pipeline.Result, flags *solveFlags) error {
	if flags.jsonFile != "" {
		var buf bytes.Buffer
		if err := res.WriteJSON(&buf); err != nil {
			return err
		}
		if err := writeFile(flags.jsonFile, buf.Bytes()); err != nil {
			return err
		}
		printFile(flags.jsonFile)
	}

	if flags.dotFile == "" && flags.svgFile == "" {
		return nil
	}
	dot := render.ToDOT(p, res.Tree, render.Options{ShowNonTree: flags.showNonTree})
	if flags.dotFile != "" {
		if err := writeFile(flags.dotFile, []byte(dot)); err != nil {
			return err
		}
		printFile(flags.dotFile)
	}
	if flags.svgFile != "" {
		var spinner *Spinner
		if c.Logger.GetLevel() <= LogInfo {
			spinner = newSpinnerWithContext(ctx, "Rendering SVG...")
			spinner.Start()
		}
		svg, err := render.RenderSVG(ctx, dot)
		if spinner != nil {
			spinner.Stop()
		}
		if err != nil {
			return err
		}
		if err := writeFile(flags.svgFile, svg); err != nil {
			return err
		}
		printFile(flags.svgFile)
	}
	return nil
}
