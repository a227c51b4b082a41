// Package search implements the edge-exchange local searches that improve
// an MSTCC spanning tree.
//
// Both engines mutate the caller's tree slice in place and keep a conflict
// tracker and a connectivity tracker in lockstep with it. They stop at a
// local optimum of their neighborhood and return the conflict count of the
// final tree:
//
//   - [OneEdge] (1-exchange): replace one tree edge by one non-tree edge
//   - [TwoEdge] (2-exchange): replace two tree edges by two non-tree edges
//   - [Chain]: alternate engines until none of them improves
//
// Moves are first-improvement and ties are broken by array position, so a
// run is deterministic for a given input tree.
package search

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mstcc/pkg/conflicts"
	"github.com/matzehuels/mstcc/pkg/problem"
)

// Engine is a local search that improves tree in place until it reaches a
// local optimum and returns the number of conflicts of the result.
type Engine interface {
	// Name is the --alg value that selects the engine, such as "2ex" for
	// one-edge exchange (two edges change per move).
	Name() string
	Run(tree []int) uint64
}

// state is the bookkeeping shared by both engines: the conflict tracker,
// the partition of edges into tree and non-tree, cached sort keys and the
// running tree weight.
type state struct {
	p   *problem.Problem
	obj problem.Objective

	tracker *conflicts.Tracker
	inTree  []bool
	nonTree []int
	key     []uint64 // per-edge objective snapshot taken at the start of a pass
	weight  uint64
}

func newState(p *problem.Problem, obj problem.Objective) state {
	return state{
		p:       p,
		obj:     obj,
		tracker: conflicts.New(p),
		inTree:  make([]bool, p.NumEdges()),
		nonTree: make([]int, 0, p.NumEdges()),
		key:     make([]uint64, p.NumEdges()),
	}
}

// setup loads tree into the conflict tracker and recomputes the partition
// and running weight.
func (s *state) setup(tree []int) {
	s.tracker.Reset()
	for i := range s.inTree {
		s.inTree[i] = false
	}
	for _, e := range tree {
		s.tracker.Add(e)
		s.inTree[e] = true
	}
	s.nonTree = s.nonTree[:0]
	for e, in := range s.inTree {
		if !in {
			s.nonTree = append(s.nonTree, e)
		}
	}
	s.weight = s.p.Weight(tree)
}

// edgeObj scores e against the edges currently tracked.
func (s *state) edgeObj(e int) uint64 {
	return s.obj.Eval(uint64(s.p.W[e]), s.tracker.Of(e))
}

// current returns the objective of the tracked tree.
func (s *state) current() uint64 {
	return s.obj.Eval(s.weight, s.tracker.Total())
}

// sortByKey snapshots every edge's objective and orders tree edges from
// worst to best and non-tree edges from best to worst. Both sorts are
// stable.
func (s *state) sortByKey(tree []int) {
	for e := range s.key {
		s.key[e] = s.edgeObj(e)
	}
	slices.SortStableFunc(tree, func(a, b int) int { return cmpKey(s.key[b], s.key[a]) })
	slices.SortStableFunc(s.nonTree, func(a, b int) int { return cmpKey(s.key[a], s.key[b]) })
}

// cutoff returns the number of leading non-tree edges whose snapshot key is
// below limit. Requires a prior sortByKey in the same pass.
func (s *state) cutoff(limit uint64) int {
	i, _ := slices.BinarySearchFunc(s.nonTree, limit, func(e int, t uint64) int { return cmpKey(s.key[e], t) })
	return i
}

// verify panics if the running weight drifted from the tree.
func (s *state) verify(tree []int) {
	if got := s.p.Weight(tree); got != s.weight {
		panic(fmt.Sprintf("search: running weight %d, tree weighs %d", s.weight, got))
	}
}

func cmpKey(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// =============================================================================
// Logging
// =============================================================================

// Improvement returns the relative decrease from old to new in percent. An
// increase yields a negative value; an old value of zero yields zero.
func Improvement(old, new uint64) float64 {
	switch {
	case old == 0:
		return 0
	case old > new:
		return 100 * float64(old-new) / float64(old)
	default:
		return -100 * float64(new-old) / float64(old)
	}
}

func logImprovement(l *log.Logger, what string, old, new uint64) {
	if l == nil {
		return
	}
	l.Debugf("%-9s %d -> %d (%.02f%%)", what, old, new, Improvement(old, new))
}
