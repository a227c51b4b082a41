package graph

import (
	"fmt"
	"math/rand/v2"
)

// Graph is an undirected multigraph with stable vertex and edge indices.
type Graph struct {
	n     int
	ends  [][2]int
	inc   [][]int
	index map[[2]int]int
}

// New builds a graph with n vertices and the given edges. Edge i of the
// result is ends[i]. Endpoints must be in [0, n).
func New(n int, ends [][2]int) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative vertex count %d", n)
	}
	g := &Graph{
		n:     n,
		ends:  make([][2]int, len(ends)),
		inc:   make([][]int, n),
		index: make(map[[2]int]int, len(ends)),
	}
	for e, uv := range ends {
		u, v := uv[0], uv[1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, fmt.Errorf("edge %d (%d, %d): vertex out of range [0, %d)", e, u, v, n)
		}
		g.ends[e] = uv
		g.inc[u] = append(g.inc[u], e)
		if v != u {
			g.inc[v] = append(g.inc[v], e)
		}
		if _, ok := g.index[key(u, v)]; !ok {
			g.index[key(u, v)] = e
		}
	}
	return g, nil
}

// MustNew is like New but panics on error. Intended for tests and fixtures.
func MustNew(n int, ends [][2]int) *Graph {
	g, err := New(n, ends)
	if err != nil {
		panic(err)
	}
	return g
}

func key(u, v int) [2]int {
	if u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}

// NumVertices returns the number of vertices.
func (g *Graph) NumVertices() int { return g.n }

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int { return len(g.ends) }

// Ends returns the endpoints of edge e in the order they were added.
func (g *Graph) Ends(e int) (int, int) {
	uv := g.ends[e]
	return uv[0], uv[1]
}

// Opposite returns the endpoint of e that is not v.
func (g *Graph) Opposite(e, v int) int {
	u, w := g.Ends(e)
	if u == v {
		return w
	}
	return u
}

// Incident returns the edges incident to v. The slice must not be modified.
func (g *Graph) Incident(v int) []int { return g.inc[v] }

// EdgeByEnds returns the lowest-indexed edge joining u and v, in either
// orientation.
func (g *Graph) EdgeByEnds(u, v int) (int, bool) {
	e, ok := g.index[key(u, v)]
	return e, ok
}

// Edges returns the edge indices 0..m-1 as a fresh slice.
func (g *Graph) Edges() []int {
	edges := make([]int, len(g.ends))
	for i := range edges {
		edges[i] = i
	}
	return edges
}

// RandomTree returns a graph on n vertices whose n-1 edges form a uniformly
// shaped random recursive tree. Vertex labels are shuffled so that vertex 0
// is not always the root of the construction.
func RandomTree(n int, rng *rand.Rand) *Graph {
	perm := rng.Perm(n)
	ends := make([][2]int, 0, max(n-1, 0))
	for v := 1; v < n; v++ {
		ends = append(ends, [2]int{perm[rng.IntN(v)], perm[v]})
	}
	rng.Shuffle(len(ends), func(i, j int) { ends[i], ends[j] = ends[j], ends[i] })
	return MustNew(n, ends)
}
