package graph

import "fmt"

// DFS computes discover/finish timestamps over the subgraph formed by a set
// of edges. It keeps its buffers between calls so repeated traversals of
// same-sized trees do not allocate.
//
// Each vertex takes one tick of a shared clock when first discovered and
// another when finished, so a is an ancestor of v (or v itself) exactly when
// Disc[a] <= Disc[v] and Fin[v] <= Fin[a].
type DFS struct {
	g *Graph

	// Disc and Fin hold the stamps of the last Run. Unvisited vertices
	// have Disc == -1.
	Disc []int
	Fin  []int

	off   []int // CSR offsets into adj
	adj   []int // neighbor vertices
	stack []frame
}

type frame struct {
	v    int
	next int // next CSR slot to scan
}

// NewDFS creates a traversal workspace for g.
func NewDFS(g *Graph) *DFS {
	n := g.NumVertices()
	return &DFS{
		g:    g,
		Disc: make([]int, n),
		Fin:  make([]int, n),
		off:  make([]int, n+1),
	}
}

// Run traverses the subgraph formed by edges from root and returns the
// number of vertices reached. The traversal does not revisit vertices, so
// on a non-tree edge set the stamps describe a DFS spanning forest.
func (d *DFS) Run(edges []int, root int) int {
	n := d.g.NumVertices()
	for i := range d.off {
		d.off[i] = 0
	}
	for _, e := range edges {
		u, v := d.g.Ends(e)
		d.off[u+1]++
		d.off[v+1]++
	}
	for i := 1; i <= n; i++ {
		d.off[i] += d.off[i-1]
	}
	d.adj = slicesGrow(d.adj, 2*len(edges))
	fill := d.cursors()
	for _, e := range edges {
		u, v := d.g.Ends(e)
		d.adj[fill[u]] = v
		fill[u]++
		d.adj[fill[v]] = u
		fill[v]++
	}

	for i := range d.Disc {
		d.Disc[i] = -1
		d.Fin[i] = -1
	}
	if n == 0 {
		return 0
	}

	time, visited := 0, 1
	d.Disc[root] = time
	time++
	d.stack = append(d.stack[:0], frame{v: root, next: d.off[root]})
	for len(d.stack) > 0 {
		top := &d.stack[len(d.stack)-1]
		if top.next == d.off[top.v+1] {
			d.Fin[top.v] = time
			time++
			d.stack = d.stack[:len(d.stack)-1]
			continue
		}
		w := d.adj[top.next]
		top.next++
		if d.Disc[w] >= 0 {
			continue
		}
		d.Disc[w] = time
		time++
		visited++
		d.stack = append(d.stack, frame{v: w, next: d.off[w]})
	}
	return visited
}

// cursors returns a scratch copy of the CSR start offsets. It reuses Fin,
// which Run overwrites afterwards anyway.
func (d *DFS) cursors() []int {
	copy(d.Fin, d.off[:len(d.Fin)])
	return d.Fin
}

// IsAncestor reports whether a is an ancestor of v in the last traversal.
// Every vertex is its own ancestor.
func (d *DFS) IsAncestor(a, v int) bool {
	return d.Disc[a] <= d.Disc[v] && d.Fin[v] <= d.Fin[a]
}

// RunTree is Run for callers that require edges to be a spanning tree. It
// panics if the edge count is not n-1 or some vertex is unreachable.
func (d *DFS) RunTree(edges []int, root int) {
	n := d.g.NumVertices()
	if len(edges) != n-1 {
		panic(fmt.Sprintf("graph: %d edges do not form a spanning tree on %d vertices", len(edges), n))
	}
	if got := d.Run(edges, root); got != n {
		panic(fmt.Sprintf("graph: tree reaches %d of %d vertices", got, n))
	}
}

func slicesGrow(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	return s[:n]
}
