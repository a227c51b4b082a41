package graph

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Components returns the connected components of the subgraph formed by all
// vertices of g and the given edges. Each component is sorted, and
// components are ordered by their smallest vertex.
func Components(g *Graph, edges []int) [][]int {
	ug := toGonum(g, edges)
	ccs := topo.ConnectedComponents(ug)
	out := make([][]int, 0, len(ccs))
	for _, cc := range ccs {
		comp := make([]int, len(cc))
		for i, n := range cc {
			comp[i] = int(n.ID())
		}
		slices.Sort(comp)
		out = append(out, comp)
	}
	slices.SortFunc(out, func(a, b []int) int { return a[0] - b[0] })
	return out
}

// IsConnected reports whether g is connected. A graph without vertices is
// not.
func IsConnected(g *Graph) bool {
	if g.NumVertices() == 0 {
		return false
	}
	return len(Components(g, g.Edges())) == 1
}

// IsSpanningTree reports whether edges is a spanning tree of g.
func IsSpanningTree(g *Graph, edges []int) bool {
	n := g.NumVertices()
	if n == 0 || len(edges) != n-1 {
		return false
	}
	for _, e := range edges {
		if e < 0 || e >= g.NumEdges() {
			return false
		}
	}
	return len(Components(g, edges)) == 1
}

// toGonum converts the edge subset into a gonum simple graph. Self-loops are
// dropped since they never affect connectivity.
func toGonum(g *Graph, edges []int) *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	for v := 0; v < g.NumVertices(); v++ {
		ug.AddNode(simple.Node(v))
	}
	for _, e := range edges {
		u, v := g.Ends(e)
		if u == v {
			continue
		}
		ug.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(v)})
	}
	return ug
}
