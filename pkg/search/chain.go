package search

import (
	"strings"

	"github.com/matzehuels/mstcc/pkg/problem"
)

// Chain runs several engines in sequence and repeats the round until a
// whole round leaves the objective unchanged. The result is a local optimum
// of every engine's neighborhood at once.
type Chain struct {
	Engines []Engine

	// StopOnFeasible ends the run as soon as the tree has no conflicts.
	StopOnFeasible bool

	p   *problem.Problem
	obj problem.Objective
}

// NewChain chains engines for p under objective obj.
func NewChain(p *problem.Problem, obj problem.Objective, engines ...Engine) *Chain {
	return &Chain{Engines: engines, p: p, obj: obj}
}

// Name implements Engine.
func (c *Chain) Name() string {
	names := make([]string, len(c.Engines))
	for i, e := range c.Engines {
		names[i] = e.Name()
	}
	return strings.Join(names, "+")
}

// Run implements Engine.
func (c *Chain) Run(tree []int) uint64 {
	conflicts := c.p.Conflicts(tree)
	best := c.obj.Eval(c.p.Weight(tree), conflicts)
	for {
		for _, e := range c.Engines {
			if c.StopOnFeasible && conflicts == 0 {
				return conflicts
			}
			conflicts = e.Run(tree)
		}
		cur := c.obj.Eval(c.p.Weight(tree), conflicts)
		if cur >= best {
			return conflicts
		}
		best = cur
	}
}
