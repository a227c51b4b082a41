package search

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/mstcc/pkg/connectivity"
	"github.com/matzehuels/mstcc/pkg/problem"
)

// categoryPairs lists the component-pair categories whose union reconnects
// three components, in the order they are tried: (C01,C02), (C01,C12),
// (C02,C12).
var categoryPairs = [3][2]int{{0, 1}, {0, 2}, {1, 2}}

// TwoEdge is the 2-exchange local search. A move removes two tree edges,
// which splits the tree into three components, and inserts two non-tree
// edges that join all three again.
//
// Candidates are bucketed by the component pair they bridge (C01, C02 and
// C12) and must each score below obj(ei)+obj(ej) taken after both removals.
// Every combination from two different buckets is scored exactly by adding
// both edges to the conflict tracker; the first strict improvement is
// taken.
//
// A TwoEdge is reusable across runs but not safe for concurrent use.
type TwoEdge struct {
	// Sort orders tree edges from worst to best and candidates from best to
	// worst at the start of every pass, and bounds the candidate scan by
	// binary search.
	Sort bool

	// StopOnFeasible ends the run as soon as the tree has no conflicts.
	StopOnFeasible bool

	// Logger receives one debug line per accepted move. Nil disables it.
	Logger *log.Logger

	state
	conn    *connectivity.DoubleCut
	buckets [3][]int // positions in nonTree, per category
}

// NewTwoEdge creates a 2-exchange engine for p under objective obj.
func NewTwoEdge(p *problem.Problem, obj problem.Objective) *TwoEdge {
	return &TwoEdge{
		state: newState(p, obj),
		conn:  connectivity.NewDoubleCut(p.G),
	}
}

// Name implements Engine.
func (s *TwoEdge) Name() string { return "4ex" }

// Run improves tree until no double exchange helps and returns the number
// of conflicts of the result. tree must be a spanning tree; it is modified
// in place and keeps its length.
func (s *TwoEdge) Run(tree []int) uint64 {
	s.setup(tree)
	if s.Logger != nil {
		s.Logger.Debug("start two-edge replacement", "weight", s.weight, "conflicts", s.tracker.Total())
	}
	for !(s.StopOnFeasible && s.tracker.Total() == 0) && s.step(tree) {
	}
	s.verify(tree)
	if s.Logger != nil {
		s.Logger.Debug("end two-edge replacement", "weight", s.weight, "conflicts", s.tracker.Total())
	}
	return s.tracker.Total()
}

func (s *TwoEdge) setup(tree []int) {
	s.state.setup(tree)
	s.conn.SetEdges(tree)
}

// step performs the first improving double exchange it finds and reports
// whether there was one.
func (s *TwoEdge) step(tree []int) bool {
	if s.Sort {
		s.sortByKey(tree)
	}
	for i := 0; i < len(tree); i++ {
		for j := i + 1; j < len(tree); j++ {
			if s.tryPair(tree, i, j) {
				return true
			}
		}
	}
	return false
}

// tryPair probes removing tree[i] and tree[j]. On success the move is
// applied; otherwise every tracker is restored.
func (s *TwoEdge) tryPair(tree []int, i, j int) bool {
	ei, ej := tree[i], tree[j]
	a, b := s.p.G.Ends(ei)
	c, d := s.p.G.Ends(ej)

	before, prevConflicts := s.current(), s.tracker.Total()
	s.conn.Disconnect2(a, b, c, d)
	s.tracker.Remove(ei)
	s.tracker.Remove(ej)

	wei, wej := s.edgeObj(ei), s.edgeObj(ej)
	limit := wei + wej
	base := s.obj.Eval(s.weight-uint64(s.p.W[ei])-uint64(s.p.W[ej]), s.tracker.Total())

	s.bucket(limit)

	for _, pair := range categoryPairs {
		for _, ka := range s.buckets[pair[0]] {
			e1 := s.nonTree[ka]
			o1 := s.edgeObj(e1)
			x1, y1 := s.p.G.Ends(e1)
			for _, kb := range s.buckets[pair[1]] {
				e2 := s.nonTree[kb]
				// The exact objective is base+o1+o2 plus beta if e1 and e2
				// conflict, so this bound never discards an improvement.
				if base+o1+s.edgeObj(e2) >= before {
					continue
				}
				x2, y2 := s.p.G.Ends(e2)
				if !s.conn.CheckReconnect(x1, y1, x2, y2) {
					continue
				}

				s.tracker.Add(e1)
				s.tracker.Add(e2)
				weight := s.weight - uint64(s.p.W[ei]) - uint64(s.p.W[ej]) + uint64(s.p.W[e1]) + uint64(s.p.W[e2])
				if after := s.obj.Eval(weight, s.tracker.Total()); after < before {
					s.accept(tree, i, j, ka, kb, weight, prevConflicts)
					return true
				}
				s.tracker.Remove(e2)
				s.tracker.Remove(e1)
			}
		}
	}

	s.tracker.Add(ei)
	s.tracker.Add(ej)
	return false
}

// bucket collects the non-tree positions whose edge bridges two different
// components and scores below limit.
func (s *TwoEdge) bucket(limit uint64) {
	for c := range s.buckets {
		s.buckets[c] = s.buckets[c][:0]
	}
	// Removing two tree edges lowers a candidate's conflict count by at most
	// two, so its snapshot key overstates the current score by <= 2*beta.
	n := len(s.nonTree)
	if s.Sort {
		n = s.cutoff(limit + 2*s.obj.Beta)
	}
	for k := 0; k < n; k++ {
		e := s.nonTree[k]
		if s.edgeObj(e) >= limit {
			continue
		}
		x, y := s.p.G.Ends(e)
		if cat := s.conn.Category(x, y); cat >= 0 {
			s.buckets[cat] = append(s.buckets[cat], k)
		}
	}
}

// accept installs the move found by tryPair. e1 and e2 are already tracked.
func (s *TwoEdge) accept(tree []int, i, j, ka, kb int, weight, prevConflicts uint64) {
	ei, ej := tree[i], tree[j]
	e1, e2 := s.nonTree[ka], s.nonTree[kb]
	oldWeight := s.weight

	tree[i], s.nonTree[ka] = e1, ei
	tree[j], s.nonTree[kb] = e2, ej
	s.inTree[ei], s.inTree[ej] = false, false
	s.inTree[e1], s.inTree[e2] = true, true
	s.weight = weight
	s.conn.SetEdges(tree)

	logImprovement(s.Logger, "conflicts", prevConflicts, s.tracker.Total())
	logImprovement(s.Logger, "weight", oldWeight, s.weight)
}
