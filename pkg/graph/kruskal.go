package graph

import "slices"

// Kruskal returns the spanning forest obtained by scanning order and keeping
// every edge that joins two different components. The first edge seen
// between two components wins. Scanning stops once n-1 edges are kept.
func Kruskal(g *Graph, order []int) []int {
	return KruskalInto(nil, g, order, NewUnionFind(g.NumVertices()))
}

// KruskalInto is Kruskal with caller-provided storage. dst is truncated and
// appended to; uf is reset before use.
func KruskalInto(dst []int, g *Graph, order []int, uf *UnionFind) []int {
	dst = dst[:0]
	uf.Reset()
	want := g.NumVertices() - 1
	for _, e := range order {
		if len(dst) >= want {
			break
		}
		u, v := g.Ends(e)
		if uf.Union(u, v) {
			dst = append(dst, e)
		}
	}
	return dst
}

// KruskalByWeight returns a minimum spanning forest under weights w. Ties are
// broken by edge index.
func KruskalByWeight(g *Graph, w []uint32) []int {
	order := g.Edges()
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case w[a] < w[b]:
			return -1
		case w[a] > w[b]:
			return 1
		}
		return 0
	})
	return Kruskal(g, order)
}
