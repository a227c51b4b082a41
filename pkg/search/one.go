package search

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/mstcc/pkg/connectivity"
	"github.com/matzehuels/mstcc/pkg/problem"
)

// OneEdge is the 1-exchange local search. A move removes a tree edge rem
// and inserts a non-tree edge ins that reconnects the two halves. With the
// conflict counts taken after rem is removed, the objective changes by
// exactly obj(ins) - obj(rem), so a move improves iff obj(ins) < obj(rem).
//
// An OneEdge is reusable across runs but not safe for concurrent use.
type OneEdge struct {
	// Sort orders tree edges from worst to best and candidates from best to
	// worst at the start of every pass, and bounds the candidate scan by
	// binary search.
	Sort bool

	// StopOnFeasible ends the run as soon as the tree has no conflicts.
	StopOnFeasible bool

	// Logger receives one debug line per accepted move. Nil disables it.
	Logger *log.Logger

	state
	conn *connectivity.SingleCut
}

// NewOneEdge creates a 1-exchange engine for p under objective obj.
func NewOneEdge(p *problem.Problem, obj problem.Objective) *OneEdge {
	return &OneEdge{
		state: newState(p, obj),
		conn:  connectivity.NewSingleCut(p.G),
	}
}

// Name implements Engine.
func (s *OneEdge) Name() string { return "2ex" }

// Run improves tree until no single exchange helps and returns the number of
// conflicts of the result. tree must be a spanning tree; it is modified in
// place and keeps its length.
func (s *OneEdge) Run(tree []int) uint64 {
	s.setup(tree)
	if s.Logger != nil {
		s.Logger.Debug("start one-edge replacement", "weight", s.weight, "conflicts", s.tracker.Total())
	}
	for !(s.StopOnFeasible && s.tracker.Total() == 0) && s.step(tree) {
	}
	s.verify(tree)
	if s.Logger != nil {
		s.Logger.Debug("end one-edge replacement", "weight", s.weight, "conflicts", s.tracker.Total())
	}
	return s.tracker.Total()
}

func (s *OneEdge) setup(tree []int) {
	s.state.setup(tree)
	s.conn.SetEdges(tree)
}

// step performs the first improving exchange it finds and reports whether
// there was one.
func (s *OneEdge) step(tree []int) bool {
	if s.Sort {
		s.sortByKey(tree)
	}
	beta := s.obj.Beta
	for i, rem := range tree {
		a, b := s.p.G.Ends(rem)
		s.tracker.Remove(rem)
		s.conn.Disconnect(a, b)
		remObj := s.edgeObj(rem)

		// A candidate's snapshot key overstates its current score by at most
		// beta (it may conflict with rem), so keys >= remObj+beta cannot win.
		limit := len(s.nonTree)
		if s.Sort {
			limit = s.cutoff(remObj + beta)
		}
		for j := 0; j < limit; j++ {
			ins := s.nonTree[j]
			if s.edgeObj(ins) >= remObj {
				continue
			}
			x, y := s.p.G.Ends(ins)
			if s.conn.IsConnected(x, y) {
				continue
			}
			s.accept(tree, i, j)
			return true
		}

		s.tracker.Add(rem)
		s.conn.Reconnect()
	}
	return false
}

// accept swaps tree[i] with nonTree[j] and brings every tracker along. rem
// must already be removed from the conflict tracker.
func (s *OneEdge) accept(tree []int, i, j int) {
	rem, ins := tree[i], s.nonTree[j]
	oldWeight, oldConflicts := s.weight, s.tracker.Total()+s.tracker.Of(rem)

	tree[i], s.nonTree[j] = ins, rem
	s.inTree[rem], s.inTree[ins] = false, true
	s.conn.ReplaceEdge(rem, ins)
	s.tracker.Add(ins)
	s.weight = s.weight - uint64(s.p.W[rem]) + uint64(s.p.W[ins])

	logImprovement(s.Logger, "conflicts", oldConflicts, s.tracker.Total())
	logImprovement(s.Logger, "weight", oldWeight, s.weight)
}
