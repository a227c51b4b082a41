package connectivity

import (
	"fmt"

	"github.com/matzehuels/mstcc/pkg/graph"
)

// DoubleCut tracks a spanning tree with up to two edges cut. The cuts split
// the vertices into components labeled 0, 1 and 2, where 0 holds the root,
// 2 is the subtree under subB and 1 is what remains under subA.
type DoubleCut struct {
	stamped
	subA int
	subB int
	cuts int
}

// NewDoubleCut creates a tracker for spanning trees of g. Call SetEdges
// before querying it.
func NewDoubleCut(g *graph.Graph) *DoubleCut {
	return &DoubleCut{stamped: newStamped(g), subA: root, subB: root}
}

// SetEdges installs edges as the current tree and clears both cuts. It
// panics if edges is not a spanning tree of the graph.
func (c *DoubleCut) SetEdges(edges []int) {
	c.set(edges)
	c.Reset()
}

// Edges returns the current tree. The slice is owned by the tracker.
func (c *DoubleCut) Edges() []int { return c.edges }

// Reset clears both cuts.
func (c *DoubleCut) Reset() {
	c.subA = root
	c.subB = root
	c.cuts = 0
}

// Comp returns the component label of v.
func (c *DoubleCut) Comp(v int) int {
	switch {
	case c.under(c.subB, v):
		return 2
	case c.under(c.subA, v):
		return 1
	default:
		return 0
	}
}

// IsConnected reports whether u and v lie in the same component.
func (c *DoubleCut) IsConnected(u, v int) bool {
	return c.Comp(u) == c.Comp(v)
}

// Disconnect cuts the tree edge joining u and v. It panics on a third cut or
// when u and v are already separated.
func (c *DoubleCut) Disconnect(u, v int) {
	if c.cuts == 2 {
		panic(fmt.Sprintf("connectivity: third cut (%d, %d) without reset", u, v))
	}
	if !c.IsConnected(u, v) {
		panic(fmt.Sprintf("connectivity: cut (%d, %d) joins separated components", u, v))
	}
	c.cuts++

	r := c.deeper(u, v)
	switch comp := c.Comp(r); comp {
	case 0:
		c.subB = c.subA
		c.subA = r
	case 1:
		c.subB = r
	case 2:
		if c.subA == root {
			c.subA = r
			c.subB = r
		} else {
			c.subB = r
		}
	default:
		panic(fmt.Sprintf("connectivity: impossible component %d", comp))
	}
}

// Disconnect2 resets and then cuts the tree edges (a, b) and (x, y).
func (c *DoubleCut) Disconnect2(a, b, x, y int) {
	c.Reset()
	c.Disconnect(a, b)
	c.Disconnect(x, y)
}

// CheckReconnect reports whether adding the edges (x1, y1) and (x2, y2)
// rejoins the three components into one tree: each edge must bridge two
// different components and together they must touch all three.
func (c *DoubleCut) CheckReconnect(x1, y1, x2, y2 int) bool {
	a1, b1 := c.Comp(x1), c.Comp(y1)
	a2, b2 := c.Comp(x2), c.Comp(y2)
	if a1 == b1 || a2 == b2 {
		return false
	}
	if min(a1, b1) == min(a2, b2) && max(a1, b1) == max(a2, b2) {
		return false
	}
	var seen [3]bool
	seen[a1], seen[b1], seen[a2], seen[b2] = true, true, true, true
	return seen[0] && seen[1] && seen[2]
}

// Category returns the index of the component pair an edge between x and y
// bridges: 0 for {0,1}, 1 for {0,2}, 2 for {1,2}. It returns -1 when both
// endpoints share a component.
func (c *DoubleCut) Category(x, y int) int {
	a, b := c.Comp(x), c.Comp(y)
	if a == b {
		return -1
	}
	return a + b - 1
}
