// Package construct builds initial spanning trees for the local searches
// and rebuilds trees when the iterated local search restarts.
//
// Three strategies are available:
//
//   - random: Kruskal over a uniformly shuffled edge order
//   - kruskal: minimum spanning tree by weight, ignoring conflicts
//   - greedy: Kruskal-like, but each step takes the edge with the lowest
//     objective given the conflicts with the edges already chosen
package construct

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/mstcc/pkg/graph"
	"github.com/matzehuels/mstcc/pkg/problem"
)

// Strategy names a tree construction method.
type Strategy string

const (
	Random  Strategy = "random"
	Kruskal Strategy = "kruskal"
	Greedy  Strategy = "greedy"
)

// DefaultStrategy is used when no strategy is given.
const DefaultStrategy = Random

// ValidStrategies is the set of supported strategies.
var ValidStrategies = map[Strategy]bool{
	Random:  true,
	Kruskal: true,
	Greedy:  true,
}

// ValidateStrategy checks that s names a supported strategy.
func ValidateStrategy(s Strategy) error {
	if !ValidStrategies[s] {
		return fmt.Errorf("invalid strategy: %q (must be one of: random, kruskal, greedy)", s)
	}
	return nil
}

// Builder constructs spanning trees of one instance. It keeps its scratch
// buffers between calls and is not safe for concurrent use.
type Builder struct {
	p   *problem.Problem
	obj problem.Objective // used by Greedy only
	rng *rand.Rand

	order []int
	uf    *graph.UnionFind
}

// NewBuilder creates a builder for p. obj weighs the greedy strategy; rng
// drives the random one.
func NewBuilder(p *problem.Problem, obj problem.Objective, rng *rand.Rand) *Builder {
	return &Builder{
		p:     p,
		obj:   obj,
		rng:   rng,
		order: p.G.Edges(),
		uf:    graph.NewUnionFind(p.NumVertices()),
	}
}

// Build writes a spanning tree of the instance into dst (truncated first)
// and returns it. The instance graph must be connected.
func (b *Builder) Build(dst []int, s Strategy) ([]int, error) {
	switch s {
	case Random:
		return b.random(dst), nil
	case Kruskal:
		return append(dst[:0], graph.KruskalByWeight(b.p.G, b.p.W)...), nil
	case Greedy:
		return b.greedy(dst), nil
	default:
		return dst, ValidateStrategy(s)
	}
}

func (b *Builder) random(dst []int) []int {
	for i := range b.order {
		b.order[i] = i
	}
	b.rng.Shuffle(len(b.order), func(i, j int) { b.order[i], b.order[j] = b.order[j], b.order[i] })
	return graph.KruskalInto(dst, b.p.G, b.order, b.uf)
}

// Build is a convenience wrapper for a single construction.
func Build(p *problem.Problem, s Strategy, obj problem.Objective, rng *rand.Rand) ([]int, error) {
	return NewBuilder(p, obj, rng).Build(nil, s)
}
