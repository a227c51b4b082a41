package ils

import (
	"context"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mstcc/pkg/construct"
	"github.com/matzehuels/mstcc/pkg/errors"
	"github.com/matzehuels/mstcc/pkg/graph"
	"github.com/matzehuels/mstcc/pkg/observability"
	"github.com/matzehuels/mstcc/pkg/problem"
	"github.com/matzehuels/mstcc/pkg/search"
)

type funcEngine func(tree []int) uint64

func (funcEngine) Name() string            { return "func" }
func (f funcEngine) Run(tree []int) uint64 { return f(tree) }

// noop returns an engine that leaves the tree alone and counts its calls.
func noop(p *problem.Problem, calls *int) search.Engine {
	return funcEngine(func(tree []int) uint64 {
		*calls++
		return p.Conflicts(tree)
	})
}

// path returns an instance whose only spanning tree is the path 0-1-...-n-1.
func path(n int) *problem.Problem {
	ends := make([][2]int, n-1)
	for i := range ends {
		ends[i] = [2]int{i, i + 1}
	}
	g := graph.MustNew(n, ends)
	w := make([]uint32, n-1)
	for i := range w {
		w[i] = 1
	}
	return &problem.Problem{Name: "path", G: g, W: w, CC: make([][]int, n-1)}
}

func newILS(p *problem.Problem, cfg Config, seed uint64) *ILS {
	rng := rand.New(rand.NewPCG(seed, seed))
	return New(p, problem.DefaultObjective, cfg, construct.NewBuilder(p, problem.DefaultObjective, rng), rng)
}

func randomInstance(t *testing.T, seed uint64) *problem.Problem {
	t.Helper()
	p, err := problem.Generate(problem.GenerateOptions{Vertices: 12, Edges: 30, Conflicts: 45, MaxWeight: 10},
		rand.New(rand.NewPCG(seed, 0)))
	require.NoError(t, err)
	return p
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero iters", func(c *Config) { c.MaxIters = 0 }},
		{"zero no-improv", func(c *Config) { c.MaxItersNoImprov = 0 }},
		{"negative excludes", func(c *Config) { c.NumExcludes = -1 }},
		{"negative restart", func(c *Config) { c.ItersRestart = -1 }},
		{"negative reset", func(c *Config) { c.ItersRestartToBest = -2 }},
		{"zero attempts", func(c *Config) { c.MaxRebuildAttempts = 0 }},
		{"bad strategy", func(c *Config) { c.Restart = "prim" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidParam))
		})
	}
}

func TestNoExcludesKeepsLocalOptimum(t *testing.T) {
	p := randomInstance(t, 1)
	tree, err := construct.Build(p, construct.Random, problem.DefaultObjective, rand.New(rand.NewPCG(2, 2)))
	require.NoError(t, err)

	engine := search.NewOneEdge(p, problem.DefaultObjective)
	local := slices.Clone(tree)
	want := engine.Run(local)

	calls := 0
	counted := funcEngine(func(tree []int) uint64 { calls++; return engine.Run(tree) })

	cfg := DefaultConfig()
	cfg.NumExcludes = 0
	got, err := newILS(p, cfg, 3).Run(context.Background(), tree, counted)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, local, tree)
	assert.Equal(t, cfg.MaxItersNoImprov+1, calls)
}

func TestMaxItersBoundsRuns(t *testing.T) {
	p := randomInstance(t, 4)
	tree := graph.KruskalByWeight(p.G, p.W)

	calls := 0
	cfg := DefaultConfig()
	cfg.MaxIters = 7
	cfg.MaxItersNoImprov = 1000
	_, err := newILS(p, cfg, 5).Run(context.Background(), tree, noop(p, &calls))
	require.NoError(t, err)
	assert.Equal(t, 7, calls)
}

func TestResultIsBestSeen(t *testing.T) {
	for seed := uint64(0); seed < 8; seed++ {
		p := randomInstance(t, 10+seed)
		obj := problem.DefaultObjective
		tree, err := construct.Build(p, construct.Random, obj, rand.New(rand.NewPCG(seed, 1)))
		require.NoError(t, err)

		engine := search.NewOneEdge(p, obj)
		var seen []uint64
		recorded := funcEngine(func(tree []int) uint64 {
			c := engine.Run(tree)
			seen = append(seen, obj.Eval(p.Weight(tree), c))
			return c
		})

		cfg := DefaultConfig()
		cfg.NumExcludes = 3
		got, err := newILS(p, cfg, seed).Run(context.Background(), tree, recorded)
		require.NoError(t, err)

		require.True(t, graph.IsSpanningTree(p.G, tree))
		assert.Equal(t, p.Conflicts(tree), got)
		assert.Equal(t, slices.Min(seen), obj.Eval(p.Weight(tree), got))
		assert.LessOrEqual(t, obj.Eval(p.Weight(tree), got), seen[0])
	}
}

func TestDeterministicForSeed(t *testing.T) {
	p := randomInstance(t, 20)
	start := graph.KruskalByWeight(p.G, p.W)

	run := func() []int {
		tree := slices.Clone(start)
		cfg := DefaultConfig()
		cfg.NumExcludes = 2
		_, err := newILS(p, cfg, 21).Run(context.Background(), tree, search.NewTwoEdge(p, problem.DefaultObjective))
		require.NoError(t, err)
		return tree
	}
	assert.Equal(t, run(), run())
}

func TestStopOnFeasible(t *testing.T) {
	p := problem.Small()
	tree := []int{0, 1, 2}

	calls := 0
	engine := search.NewOneEdge(p, problem.DefaultObjective)
	counted := funcEngine(func(tree []int) uint64 { calls++; return engine.Run(tree) })

	cfg := DefaultConfig()
	cfg.StopOnFeasible = true
	cfg.MaxItersNoImprov = 50
	got, err := newILS(p, cfg, 1).Run(context.Background(), tree, counted)
	require.NoError(t, err)
	assert.Zero(t, got)
	assert.Zero(t, p.Conflicts(tree))
	assert.Equal(t, 1, calls)
}

func TestCancelledBeforeStart(t *testing.T) {
	p := path(5)
	tree := p.G.Edges()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := newILS(p, DefaultConfig(), 1).Run(ctx, tree, noop(p, &calls))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
	assert.Equal(t, []int{0, 1, 2, 3}, tree)
}

func TestCancelledMidRunKeepsBest(t *testing.T) {
	p := randomInstance(t, 30)
	tree := graph.KruskalByWeight(p.G, p.W)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := search.NewOneEdge(p, problem.DefaultObjective)
	calls := 0
	cancelling := funcEngine(func(tree []int) uint64 {
		calls++
		if calls == 3 {
			cancel()
		}
		return engine.Run(tree)
	})

	cfg := DefaultConfig()
	cfg.MaxItersNoImprov = 1000
	got, err := newILS(p, cfg, 31).Run(ctx, tree, cancelling)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, calls)
	require.True(t, graph.IsSpanningTree(p.G, tree))
	assert.Equal(t, p.Conflicts(tree), got)
}

func TestPerturbationFailure(t *testing.T) {
	p := path(6)
	tree := p.G.Edges()

	cfg := DefaultConfig()
	cfg.MaxRebuildAttempts = 1
	calls := 0
	_, err := newILS(p, cfg, 1).Run(context.Background(), tree, noop(p, &calls))

	var perr *errors.PerturbationError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Attempts)
	assert.Equal(t, 1, perr.Excluded)
	assert.True(t, errors.Is(err, errors.ErrCodePerturbationFailed))
	assert.Equal(t, 1, calls)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, tree, "best tree is restored")
}

func TestPerturbationRetryDropsExclusions(t *testing.T) {
	p := path(6)
	tree := p.G.Edges()

	cfg := DefaultConfig()
	cfg.MaxRebuildAttempts = 2
	calls := 0
	_, err := newILS(p, cfg, 1).Run(context.Background(), tree, noop(p, &calls))
	require.NoError(t, err)
	assert.Equal(t, cfg.MaxItersNoImprov+1, calls)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, tree)
}

type restartCounter struct {
	observability.NoopSolveHooks
	restarts []string
}

func (r *restartCounter) OnRestart(_ context.Context, strategy string) {
	r.restarts = append(r.restarts, strategy)
}

func TestRestartThreshold(t *testing.T) {
	hooks := &restartCounter{}
	observability.SetSolveHooks(hooks)
	defer observability.Reset()

	p := path(5)
	tree := p.G.Edges()
	cfg := DefaultConfig()
	cfg.NumExcludes = 0
	cfg.MaxItersNoImprov = 5
	cfg.ItersRestart = 2
	cfg.Restart = construct.Greedy

	calls := 0
	_, err := newILS(p, cfg, 1).Run(context.Background(), tree, noop(p, &calls))
	require.NoError(t, err)
	assert.Equal(t, []string{"greedy", "greedy"}, hooks.restarts)
	assert.Equal(t, 6, calls)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, tree)
}

func TestRestartToBestPerturbsFromBest(t *testing.T) {
	p := randomInstance(t, 40)
	obj := problem.DefaultObjective
	tree, err := construct.Build(p, construct.Random, obj, rand.New(rand.NewPCG(41, 41)))
	require.NoError(t, err)

	var best []int
	var bestObj uint64
	checking := funcEngine(func(tree []int) uint64 {
		if best != nil {
			diff := 0
			for _, e := range tree {
				if !slices.Contains(best, e) {
					diff++
				}
			}
			require.LessOrEqual(t, diff, 1, "perturbation must start from the best tree")
		}
		if cur := obj.Eval(p.Weight(tree), p.Conflicts(tree)); best == nil || cur < bestObj {
			best, bestObj = slices.Clone(tree), cur
		}
		return p.Conflicts(tree)
	})

	cfg := DefaultConfig()
	cfg.ItersRestartToBest = 1
	cfg.MaxItersNoImprov = 30
	_, err = newILS(p, cfg, 42).Run(context.Background(), tree, checking)
	require.NoError(t, err)
	assert.ElementsMatch(t, best, tree)
}
