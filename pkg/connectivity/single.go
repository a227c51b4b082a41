package connectivity

import (
	"fmt"

	"github.com/matzehuels/mstcc/pkg/graph"
)

// SingleCut tracks a spanning tree with at most one edge cut.
type SingleCut struct {
	stamped
	sub int // root of the detached subtree; root when nothing is cut
}

// NewSingleCut creates a tracker for spanning trees of g. Call SetEdges
// before querying it.
func NewSingleCut(g *graph.Graph) *SingleCut {
	return &SingleCut{stamped: newStamped(g), sub: root}
}

// SetEdges installs edges as the current tree and clears the cut. It panics
// if edges is not a spanning tree of the graph.
func (c *SingleCut) SetEdges(edges []int) {
	c.set(edges)
	c.sub = root
}

// Edges returns the current tree. The slice is owned by the tracker.
func (c *SingleCut) Edges() []int { return c.edges }

// IsConnected reports whether u and v lie on the same side of the cut.
// Without a cut every pair is connected.
func (c *SingleCut) IsConnected(u, v int) bool {
	return c.under(c.sub, u) == c.under(c.sub, v)
}

// Disconnect cuts the tree edge joining u and v. At most one cut may be
// outstanding; clear it with Reconnect, SetEdges or ReplaceEdge.
func (c *SingleCut) Disconnect(u, v int) {
	if c.sub != root {
		panic(fmt.Sprintf("connectivity: cut (%d, %d) while another cut is outstanding", u, v))
	}
	c.sub = c.deeper(u, v)
}

// Reconnect clears the outstanding cut without changing the tree.
func (c *SingleCut) Reconnect() {
	c.sub = root
}

// Cut returns the root of the detached subtree, or false if nothing is cut.
func (c *SingleCut) Cut() (int, bool) {
	return c.sub, c.sub != root
}

// ReplaceEdge commits a 1-exchange: rem leaves the tree, ins joins it, the
// tree is stamped again and the cut is cleared.
func (c *SingleCut) ReplaceEdge(rem, ins int) {
	c.replace(rem, ins)
	c.sub = root
}
