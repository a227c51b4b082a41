// Package problem defines MSTCC instances: a graph with edge weights and
// symmetric pairwise conflicts, plus the scalarized objective used to
// compare spanning trees.
//
// Instances are read from the line-oriented format used by the benchmark
// sets (a name line, the counts n, m and c, m weighted edges and c conflict
// pairs). See [Read].
package problem

import (
	"slices"

	"github.com/matzehuels/mstcc/pkg/graph"
)

// Problem is an immutable MSTCC instance. It is shared by reference between
// every tracker and search engine of a run.
type Problem struct {
	Name string
	G    *graph.Graph

	// W[e] is the weight of edge e.
	W []uint32

	// CC[e] lists the edges conflicting with e. The relation is symmetric:
	// f is in CC[e] exactly when e is in CC[f].
	CC [][]int

	// NumCC is the number of declared conflict pairs.
	NumCC int
}

// Objective scalarizes weight and conflicts: Alpha*weight + Beta*conflicts.
type Objective struct {
	Alpha uint64
	Beta  uint64
}

// DefaultObjective matches the defaults of the command line tool.
var DefaultObjective = Objective{Alpha: 1, Beta: 10000}

// Eval returns the objective value of a solution with the given weight and
// conflict count.
func (o Objective) Eval(weight, conflicts uint64) uint64 {
	return o.Alpha*weight + o.Beta*conflicts
}

// NumVertices returns the number of vertices.
func (p *Problem) NumVertices() int { return p.G.NumVertices() }

// NumEdges returns the number of edges.
func (p *Problem) NumEdges() int { return p.G.NumEdges() }

// Weight returns the total weight of edges.
func (p *Problem) Weight(edges []int) uint64 {
	var sum uint64
	for _, e := range edges {
		sum += uint64(p.W[e])
	}
	return sum
}

// Conflicts returns the number of conflicting pairs among edges by direct
// enumeration. It is meant for verification, not for the search hot path.
func (p *Problem) Conflicts(edges []int) uint64 {
	return uint64(len(p.ConflictPairs(edges)))
}

// ConflictPairs returns every conflicting pair {e, f} among edges with e < f,
// sorted.
func (p *Problem) ConflictPairs(edges []int) [][2]int {
	in := make(map[int]bool, len(edges))
	for _, e := range edges {
		in[e] = true
	}
	var pairs [][2]int
	for e := range in {
		for _, f := range p.CC[e] {
			if e < f && in[f] {
				pairs = append(pairs, [2]int{e, f})
			}
		}
	}
	slices.SortFunc(pairs, func(a, b [2]int) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})
	return pairs
}
