// Package ils implements iterated local search over an MSTCC spanning tree.
//
// Each iteration runs a local search engine to a local optimum, records the
// result if it beats the best tree so far, and then perturbs the tree by
// dropping a few random edges and reconnecting it from a shuffled edge
// order. Two optional thresholds rebuild the tree from scratch or return to
// the best tree after a run of iterations without improvement.
package ils

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mstcc/pkg/construct"
	"github.com/matzehuels/mstcc/pkg/errors"
	"github.com/matzehuels/mstcc/pkg/graph"
	"github.com/matzehuels/mstcc/pkg/observability"
	"github.com/matzehuels/mstcc/pkg/problem"
	"github.com/matzehuels/mstcc/pkg/search"
)

// =============================================================================
// Configuration
// =============================================================================

const (
	DefaultMaxIters           = 100
	DefaultMaxItersNoImprov   = 10
	DefaultNumExcludes        = 1
	DefaultMaxRebuildAttempts = 100
)

// Config controls the search. Zero thresholds disable restarts and resets.
type Config struct {
	MaxIters         int `json:"max_iters" toml:"max_iters" yaml:"max_iters"`
	MaxItersNoImprov int `json:"max_iters_no_improv" toml:"max_iters_no_improv" yaml:"max_iters_no_improv"`
	NumExcludes      int `json:"num_excludes" toml:"num_excludes" yaml:"num_excludes"`

	// ItersRestart rebuilds the tree with Restart after this many
	// iterations without improvement.
	ItersRestart int `json:"iters_restart" toml:"iters_restart" yaml:"iters_restart"`

	// ItersRestartToBest resets the tree to the best one found before
	// perturbing, after this many iterations without improvement.
	ItersRestartToBest int `json:"iters_restart_to_best" toml:"iters_restart_to_best" yaml:"iters_restart_to_best"`

	Restart        construct.Strategy `json:"restart" toml:"restart" yaml:"restart"`
	StopOnFeasible bool               `json:"stop_on_feasible" toml:"stop_on_feasible" yaml:"stop_on_feasible"`

	// MaxRebuildAttempts bounds the shuffles tried to reconnect a perturbed
	// tree. Only the first attempt honors the excluded edges.
	MaxRebuildAttempts int `json:"max_rebuild_attempts" toml:"max_rebuild_attempts" yaml:"max_rebuild_attempts"`
}

// DefaultConfig returns the default search parameters.
func DefaultConfig() Config {
	return Config{
		MaxIters:           DefaultMaxIters,
		MaxItersNoImprov:   DefaultMaxItersNoImprov,
		NumExcludes:        DefaultNumExcludes,
		Restart:            construct.DefaultStrategy,
		MaxRebuildAttempts: DefaultMaxRebuildAttempts,
	}
}

// Validate checks that every parameter is in range.
func (c Config) Validate() error {
	switch {
	case c.MaxIters < 1:
		return errors.New(errors.ErrCodeInvalidParam, "max iterations must be positive, got %d", c.MaxIters)
	case c.MaxItersNoImprov < 1:
		return errors.New(errors.ErrCodeInvalidParam, "max iterations without improvement must be positive, got %d", c.MaxItersNoImprov)
	case c.NumExcludes < 0:
		return errors.New(errors.ErrCodeInvalidParam, "excluded edge count must not be negative, got %d", c.NumExcludes)
	case c.ItersRestart < 0 || c.ItersRestartToBest < 0:
		return errors.New(errors.ErrCodeInvalidParam, "restart thresholds must not be negative")
	case c.MaxRebuildAttempts < 1:
		return errors.New(errors.ErrCodeInvalidParam, "rebuild attempts must be positive, got %d", c.MaxRebuildAttempts)
	}
	if err := construct.ValidateStrategy(c.Restart); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParam, err, "restart")
	}
	return nil
}

// =============================================================================
// Search
// =============================================================================

// ILS drives a local search engine. It is not safe for concurrent use.
type ILS struct {
	Config

	// Logger receives best-tree improvements at info level and restarts at
	// debug level. Nil disables logging.
	Logger *log.Logger

	p       *problem.Problem
	obj     problem.Objective
	builder *construct.Builder
	rng     *rand.Rand

	best    []int
	scratch []int
	rebuilt []int
	order   []int
	exclude []int
	uf      *graph.UnionFind
}

// New creates an iterated local search for p. builder serves restarts; rng
// drives the perturbation and should be the stream builder draws from.
func New(p *problem.Problem, obj problem.Objective, cfg Config, builder *construct.Builder, rng *rand.Rand) *ILS {
	n := max(p.NumVertices()-1, 0)
	return &ILS{
		Config:  cfg,
		p:       p,
		obj:     obj,
		builder: builder,
		rng:     rng,
		best:    make([]int, 0, n),
		scratch: make([]int, 0, n),
		rebuilt: make([]int, 0, n),
		order:   p.G.Edges(),
		uf:      graph.NewUnionFind(p.NumVertices()),
	}
}

// Run improves tree with engine and returns the conflicts of the best tree
// found, which is left in tree. A cancelled ctx ends the search after the
// current iteration; the best tree so far is still installed and ctx.Err()
// is returned with it.
func (s *ILS) Run(ctx context.Context, tree []int, engine search.Engine) (uint64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	hooks := observability.Solve()

	var (
		bestWeight, bestConflicts uint64
		bestObj                   uint64
		haveBest                  bool
		noImprov, sinceRestart    int
		sinceReset                int
		runErr                    error
	)
loop:
	for iter := 0; iter < s.MaxIters; iter++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		conflicts := engine.Run(tree)
		weight := s.p.Weight(tree)
		hooks.OnIteration(ctx, iter, conflicts, weight)

		if cur := s.obj.Eval(weight, conflicts); !haveBest || cur < bestObj {
			if haveBest {
				s.logBest("conflicts", bestConflicts, conflicts)
				s.logBest("weight", bestWeight, weight)
			}
			bestObj, bestWeight, bestConflicts, haveBest = cur, weight, conflicts, true
			s.best = append(s.best[:0], tree...)
			noImprov, sinceRestart, sinceReset = 0, 0, 0
			hooks.OnImprovement(ctx, conflicts, weight)
			if s.StopOnFeasible && conflicts == 0 {
				break loop
			}
		} else {
			noImprov++
			sinceRestart++
			sinceReset++
			switch {
			case noImprov >= s.MaxItersNoImprov:
				break loop
			case s.ItersRestart > 0 && sinceRestart >= s.ItersRestart:
				sinceRestart = 0
				if err := s.restart(ctx, tree); err != nil {
					runErr = err
					break loop
				}
				continue
			case s.ItersRestartToBest > 0 && sinceReset >= s.ItersRestartToBest:
				sinceReset = 0
				copy(tree, s.best)
			}
		}

		if err := s.perturb(tree); err != nil {
			runErr = err
			break
		}
	}

	if !haveBest {
		return s.p.Conflicts(tree), runErr
	}
	copy(tree, s.best)
	return bestConflicts, runErr
}

func (s *ILS) restart(ctx context.Context, tree []int) error {
	if s.Logger != nil {
		s.Logger.Debug("ils restart", "strategy", s.Restart)
	}
	observability.Solve().OnRestart(ctx, string(s.Restart))
	built, err := s.builder.Build(s.scratch, s.Restart)
	if err != nil {
		return err
	}
	s.scratch = built
	if len(built) != len(tree) {
		return errors.New(errors.ErrCodeInternal, "restart built %d edges, want %d", len(built), len(tree))
	}
	copy(tree, built)
	return nil
}

// perturb drops NumExcludes random edges from tree and reconnects it. On
// failure tree is left inconsistent and the caller restores the best. The
// kept edges come first in the Kruskal order, so all of them survive; the
// rest of the order is a fresh shuffle. If the excluded edges were bridges
// of the remaining graph, later attempts allow them again.
func (s *ILS) perturb(tree []int) error {
	kept := len(tree)
	s.exclude = s.exclude[:0]
	for range min(s.NumExcludes, len(tree)) {
		i := s.rng.IntN(kept)
		s.exclude = append(s.exclude, tree[i])
		tree[i] = tree[kept-1]
		kept--
	}
	want := s.p.NumVertices() - 1

	for attempt := 0; attempt < s.MaxRebuildAttempts; attempt++ {
		s.rng.Shuffle(len(s.order), func(i, j int) { s.order[i], s.order[j] = s.order[j], s.order[i] })
		candidates := append(s.scratch[:0], tree[:kept]...)
		for _, e := range s.order {
			if !slices.Contains(s.exclude, e) {
				candidates = append(candidates, e)
			}
		}
		s.scratch = candidates
		s.rebuilt = graph.KruskalInto(s.rebuilt, s.p.G, candidates, s.uf)
		if len(s.rebuilt) == want {
			copy(tree, s.rebuilt)
			return nil
		}
		s.exclude = s.exclude[:0]
	}
	return &errors.PerturbationError{Attempts: s.MaxRebuildAttempts, Excluded: len(tree) - kept}
}

func (s *ILS) logBest(what string, old, new uint64) {
	if s.Logger == nil {
		return
	}
	s.Logger.Infof("%-9s best %d -> %d (%.02f%%)", what, old, new, search.Improvement(old, new))
}

// String describes the configuration for logs.
func (c Config) String() string {
	return fmt.Sprintf("iters=%d no-improv=%d excludes=%d restart=%d/%s to-best=%d",
		c.MaxIters, c.MaxItersNoImprov, c.NumExcludes, c.ItersRestart, c.Restart, c.ItersRestartToBest)
}
