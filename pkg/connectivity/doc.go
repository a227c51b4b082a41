// Package connectivity answers "are these two vertices still connected?"
// for a spanning tree from which one or two edges have been logically cut.
//
// Both trackers stamp the tree with one DFS from a fixed root (vertex 0).
// Removing the tree edge (u, v) detaches the subtree of whichever endpoint
// is deeper, and membership in a subtree is an O(1) interval test on the
// discover/finish stamps. Probing a cut is therefore O(1). Only committing
// a move (ReplaceEdge, SetEdges) pays for a new O(V) traversal.
//
// [SingleCut] supports one outstanding cut for the 1-exchange neighborhood.
// [DoubleCut] supports two and labels the three resulting components for
// the 2-exchange neighborhood.
package connectivity

import (
	"fmt"
	"slices"

	"github.com/matzehuels/mstcc/pkg/errors"
	"github.com/matzehuels/mstcc/pkg/graph"
)

// root is the DFS root. Component 0 of a DoubleCut always contains it.
const root = 0

// stamped is the tree and traversal state shared by both trackers.
type stamped struct {
	g     *graph.Graph
	dfs   *graph.DFS
	edges []int
}

func newStamped(g *graph.Graph) stamped {
	return stamped{
		g:     g,
		dfs:   graph.NewDFS(g),
		edges: make([]int, 0, max(g.NumVertices()-1, 0)),
	}
}

func (s *stamped) set(edges []int) {
	s.edges = append(s.edges[:0], edges...)
	s.dfs.RunTree(s.edges, root)
}

func (s *stamped) replace(rem, ins int) {
	i := slices.Index(s.edges, rem)
	if i < 0 {
		panic(fmt.Sprintf("connectivity: edge %d is not in the tree", rem))
	}
	s.edges[i] = ins
	s.dfs.RunTree(s.edges, root)
}

// deeper returns the endpoint of the tree edge (u, v) farther from the root.
func (s *stamped) deeper(u, v int) int {
	if s.dfs.IsAncestor(u, v) {
		return v
	}
	return u
}

func (s *stamped) under(sub, v int) bool {
	return s.dfs.IsAncestor(sub, v)
}

// Check re-stamps the tree from scratch and reports any difference from the
// stored stamps. It is a test oracle and allocates.
func (s *stamped) Check() error {
	if !graph.IsSpanningTree(s.g, s.edges) {
		return errors.New(errors.ErrCodeInternal, "connectivity: edges %v are not a spanning tree", s.edges)
	}
	fresh := graph.NewDFS(s.g)
	fresh.RunTree(s.edges, root)
	for v := range fresh.Disc {
		if fresh.Disc[v] != s.dfs.Disc[v] || fresh.Fin[v] != s.dfs.Fin[v] {
			return errors.New(errors.ErrCodeInternal, "connectivity: stale stamps at vertex %d: [%d,%d], want [%d,%d]",
				v, s.dfs.Disc[v], s.dfs.Fin[v], fresh.Disc[v], fresh.Fin[v])
		}
	}
	return nil
}
