package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mstcc/pkg/cache"
	"github.com/matzehuels/mstcc/pkg/construct"
	"github.com/matzehuels/mstcc/pkg/errors"
	"github.com/matzehuels/mstcc/pkg/graph"
	"github.com/matzehuels/mstcc/pkg/ils"
	"github.com/matzehuels/mstcc/pkg/observability"
	"github.com/matzehuels/mstcc/pkg/problem"
	"github.com/matzehuels/mstcc/pkg/search"
)

// keyTypeSolution labels solution entries in cache hooks.
const keyTypeSolution = "solution"

// Runner executes solver runs with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// InstanceHash returns the content hash of p used in cache keys.
func InstanceHash(p *problem.Problem) string {
	h, _ := cache.HashStream(func(w io.Writer) error { return problem.Write(w, p) })
	return h
}

// Solve builds an initial tree for p and improves it as opts describe.
//
// If ctx is cancelled during iterated local search, Solve returns the best
// result found so far together with the context error. Such partial results
// are not cached.
func (r *Runner) Solve(ctx context.Context, p *problem.Problem, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	var key string
	if opts.Cacheable() {
		key = r.Keyer.SolutionKey(InstanceHash(p), opts.SolutionKeyOpts())
		if !opts.Refresh {
			if res, ok := r.lookup(ctx, p, key); ok {
				logger.Info("using cached solution", "run", res.RunID)
				return res, nil
			}
		}
	}

	res, err := r.solve(ctx, p, opts, logger)
	if err != nil {
		return res, err
	}

	if key != "" {
		if data, err := json.Marshal(res); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLSolution); err != nil {
				logger.Warn("cache write failed", "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, keyTypeSolution, len(data))
			}
		}
	}
	return res, nil
}

func (r *Runner) solve(ctx context.Context, p *problem.Problem, opts Options, logger *log.Logger) (*Result, error) {
	start := time.Now()
	hooks := observability.Solve()
	hooks.OnSolveStart(ctx, p.Name, opts.Alg)

	seed := rand.Uint64()
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		logger.Info("using random seed", "seed", seed)
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	res := &Result{RunID: uuid.NewString(), Name: p.Name, Alg: opts.Alg, Seed: seed}
	logger.Debug("solving", "run", res.RunID, "instance", p.Name, "opts", opts.String())

	builder := construct.NewBuilder(p, opts.GreedyObjective(), rng)
	tree, err := builder.Build(nil, opts.Init)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParam, err, "init")
	}
	res.Initial.Weight, res.Initial.Conflicts = p.Weight(tree), p.Conflicts(tree)
	logger.Info("initial tree", "strategy", opts.Init, "weight", res.Initial.Weight, "conflicts", res.Initial.Conflicts)

	obj := opts.Objective()
	engine := newEngine(p, obj, opts, logger)

	var conflicts uint64
	var runErr error
	if opts.IsILS() {
		cfg := opts.ILS
		cfg.StopOnFeasible = cfg.StopOnFeasible || opts.StopOnFeasible
		s := ils.New(p, obj, cfg, builder, rng)
		s.Logger = logger
		conflicts, runErr = s.Run(ctx, tree, engine)
	} else {
		conflicts = engine.Run(tree)
	}

	res.Tree = tree
	res.Conflicts = conflicts
	res.Weight = p.Weight(tree)
	res.Elapsed = time.Since(start)
	res.fillEdges(p)
	hooks.OnSolveComplete(ctx, p.Name, opts.Alg, res.Conflicts, res.Weight, res.Elapsed, runErr)

	switch {
	case runErr == nil:
		return res, nil
	case stderrors.Is(runErr, context.Canceled), stderrors.Is(runErr, context.DeadlineExceeded):
		return res, runErr
	default:
		return nil, runErr
	}
}

// newEngine creates the local search named by opts.BaseAlg.
func newEngine(p *problem.Problem, obj problem.Objective, opts Options, logger *log.Logger) search.Engine {
	one := func() search.Engine {
		e := search.NewOneEdge(p, obj)
		e.Sort, e.StopOnFeasible, e.Logger = opts.Sort, opts.StopOnFeasible, logger
		return e
	}
	two := func() search.Engine {
		e := search.NewTwoEdge(p, obj)
		e.Sort, e.StopOnFeasible, e.Logger = opts.Sort, opts.StopOnFeasible, logger
		return e
	}
	switch opts.BaseAlg() {
	case Alg2Exchange:
		return two()
	case AlgBoth:
		c := search.NewChain(p, obj, one(), two())
		c.StopOnFeasible = opts.StopOnFeasible
		return c
	default:
		return one()
	}
}

// lookup returns a cached result if it decodes and still describes a
// spanning tree of p with the recorded weight and conflicts.
func (r *Runner) lookup(ctx context.Context, p *problem.Problem, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeSolution)
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil ||
		!graph.IsSpanningTree(p.G, res.Tree) ||
		p.Weight(res.Tree) != res.Weight ||
		p.Conflicts(res.Tree) != res.Conflicts {
		observability.Cache().OnCacheMiss(ctx, keyTypeSolution)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeSolution)
	res.Cached = true
	return &res, true
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
