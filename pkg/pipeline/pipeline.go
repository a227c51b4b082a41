// Package pipeline wires instance loading, tree construction, local search
// and caching into one solver run shared by every command.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mstcc/pkg/cache"
	"github.com/matzehuels/mstcc/pkg/construct"
	"github.com/matzehuels/mstcc/pkg/errors"
	"github.com/matzehuels/mstcc/pkg/ils"
	"github.com/matzehuels/mstcc/pkg/problem"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Config Files
// =============================================================================

const (
	// DefaultAlpha weighs tree weight in the refinement objective.
	DefaultAlpha = uint64(1)

	// DefaultBeta weighs conflicts in the refinement objective. It is large
	// enough that one conflict outweighs any realistic weight difference.
	DefaultBeta = uint64(10000)

	// DefaultGreedyAlpha and DefaultGreedyBeta weigh the greedy constructor.
	DefaultGreedyAlpha = uint64(1)
	DefaultGreedyBeta  = uint64(10000)

	// DefaultAlg is the default improvement algorithm.
	DefaultAlg = Alg1Exchange
)

// Algorithm names. The ils- prefix wraps any base algorithm in iterated
// local search.
const (
	Alg1Exchange = "2ex"
	Alg2Exchange = "4ex"
	AlgBoth      = "2ex+4ex"

	ilsPrefix = "ils-"
)

// ValidAlgs is the set of supported algorithms.
var ValidAlgs = map[string]bool{
	Alg1Exchange:             true,
	Alg2Exchange:             true,
	AlgBoth:                  true,
	ilsPrefix + Alg1Exchange: true,
	ilsPrefix + Alg2Exchange: true,
	ilsPrefix + AlgBoth:      true,
}

// ValidateAlg checks that an algorithm name is valid.
func ValidateAlg(alg string) error {
	if !ValidAlgs[alg] {
		return errors.New(errors.ErrCodeInvalidParam,
			"invalid alg: %q (must be one of: 2ex, 4ex, 2ex+4ex, ils-2ex, ils-4ex, ils-2ex+4ex)", alg)
	}
	return nil
}

// =============================================================================
// Options - Solver Configuration
// =============================================================================

// Options configures one solver run. Config files decode into it, so the
// field tags double as the file schema.
type Options struct {
	Alg  string             `json:"alg" toml:"alg" yaml:"alg"`
	Init construct.Strategy `json:"init" toml:"init" yaml:"init"`

	// Refinement objective.
	Alpha uint64 `json:"alpha" toml:"alpha" yaml:"alpha"`
	Beta  uint64 `json:"beta" toml:"beta" yaml:"beta"`

	// Objective of the greedy constructor, for the initial tree and for
	// greedy ILS restarts.
	GreedyAlpha uint64 `json:"greedy_alpha" toml:"greedy_alpha" yaml:"greedy_alpha"`
	GreedyBeta  uint64 `json:"greedy_beta" toml:"greedy_beta" yaml:"greedy_beta"`

	// Seed fixes the random stream. Runs without a seed draw one and are
	// never cached.
	Seed *uint64 `json:"seed,omitempty" toml:"seed,omitempty" yaml:"seed,omitempty"`

	Sort           bool `json:"sort" toml:"sort" yaml:"sort"`
	StopOnFeasible bool `json:"stop_on_feasible" toml:"stop_on_feasible" yaml:"stop_on_feasible"`

	ILS ils.Config `json:"ils" toml:"ils" yaml:"ils"`

	// Runtime options (not serialized)
	Logger  *log.Logger `json:"-" toml:"-" yaml:"-"`
	Refresh bool        `json:"-" toml:"-" yaml:"-"` // ignore cached solutions
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	return Options{
		Alg:         DefaultAlg,
		Init:        construct.DefaultStrategy,
		Alpha:       DefaultAlpha,
		Beta:        DefaultBeta,
		GreedyAlpha: DefaultGreedyAlpha,
		GreedyBeta:  DefaultGreedyBeta,
		ILS:         ils.DefaultConfig(),
	}
}

// Validate checks every option.
func (o *Options) Validate() error {
	if err := ValidateAlg(o.Alg); err != nil {
		return err
	}
	if err := construct.ValidateStrategy(o.Init); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParam, err, "init")
	}
	if o.Alpha == 0 && o.Beta == 0 {
		return errors.New(errors.ErrCodeInvalidParam, "alpha and beta cannot both be zero")
	}
	if o.IsILS() {
		if err := o.ILS.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsILS reports whether the algorithm runs under iterated local search.
func (o *Options) IsILS() bool {
	return strings.HasPrefix(o.Alg, ilsPrefix)
}

// BaseAlg returns the local search algorithm without the ils- prefix.
func (o *Options) BaseAlg() string {
	return strings.TrimPrefix(o.Alg, ilsPrefix)
}

// Objective returns the refinement objective.
func (o *Options) Objective() problem.Objective {
	return problem.Objective{Alpha: o.Alpha, Beta: o.Beta}
}

// GreedyObjective returns the constructor objective.
func (o *Options) GreedyObjective() problem.Objective {
	return problem.Objective{Alpha: o.GreedyAlpha, Beta: o.GreedyBeta}
}

// Cacheable reports whether the run is reproducible and may be cached.
func (o *Options) Cacheable() bool {
	return o.Seed != nil
}

// SolutionKeyOpts returns cache key options for the run.
func (o *Options) SolutionKeyOpts() cache.SolutionKeyOpts {
	k := cache.SolutionKeyOpts{
		Alg:            o.Alg,
		Init:           string(o.Init),
		Alpha:          o.Alpha,
		Beta:           o.Beta,
		GreedyAlpha:    o.GreedyAlpha,
		GreedyBeta:     o.GreedyBeta,
		Sort:           o.Sort,
		StopOnFeasible: o.StopOnFeasible,
	}
	if o.Seed != nil {
		k.Seed = *o.Seed
	}
	if o.IsILS() {
		k.ILS = &cache.ILSKey{
			MaxIters:           o.ILS.MaxIters,
			MaxItersNoImprov:   o.ILS.MaxItersNoImprov,
			NumExcludes:        o.ILS.NumExcludes,
			ItersRestart:       o.ILS.ItersRestart,
			ItersRestartToBest: o.ILS.ItersRestartToBest,
			Restart:            string(o.ILS.Restart),
			MaxRebuildAttempts: o.ILS.MaxRebuildAttempts,
		}
	}
	return k
}

// String summarizes the options for logs.
func (o *Options) String() string {
	s := fmt.Sprintf("alg=%s init=%s alpha=%d beta=%d sort=%v", o.Alg, o.Init, o.Alpha, o.Beta, o.Sort)
	if o.IsILS() {
		s += " " + o.ILS.String()
	}
	return s
}
