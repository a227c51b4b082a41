package connectivity

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mstcc/pkg/graph"
)

// labels maps each vertex to the index of its component in the tree minus
// the removed edges, computed from scratch.
func labels(g *graph.Graph, removed ...int) []int {
	kept := slices.DeleteFunc(g.Edges(), func(e int) bool { return slices.Contains(removed, e) })
	out := make([]int, g.NumVertices())
	for i, comp := range graph.Components(g, kept) {
		for _, v := range comp {
			out[v] = i
		}
	}
	return out
}

func TestSingleCutFreshIsConnected(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for n := 2; n < 20; n++ {
		g := graph.RandomTree(n, rng)
		c := NewSingleCut(g)
		c.SetEdges(g.Edges())
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				require.True(t, c.IsConnected(u, v))
			}
		}
		_, cut := c.Cut()
		assert.False(t, cut)
	}
}

func TestSingleCutMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 3))
	for n := 2; n < 20; n++ {
		g := graph.RandomTree(n, rng)
		c := NewSingleCut(g)
		c.SetEdges(g.Edges())
		for _, e := range g.Edges() {
			want := labels(g, e)
			u, v := g.Ends(e)
			c.Disconnect(u, v)
			for x := 0; x < n; x++ {
				for y := x + 1; y < n; y++ {
					require.Equal(t, want[x] == want[y], c.IsConnected(x, y), "n=%d e=%d x=%d y=%d", n, e, x, y)
				}
			}
			c.Reconnect()
		}
	}
}

func TestSingleCutSecondCutPanics(t *testing.T) {
	g := graph.MustNew(3, [][2]int{{0, 1}, {1, 2}})
	c := NewSingleCut(g)
	c.SetEdges(g.Edges())
	c.Disconnect(0, 1)
	assert.Panics(t, func() { c.Disconnect(1, 2) })
}

func TestSingleCutReplaceEdge(t *testing.T) {
	// 4-cycle 0-1-2-3-0; tree is the path 0-1-2-3.
	g := graph.MustNew(4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
	c := NewSingleCut(g)
	c.SetEdges([]int{0, 1, 2})

	c.Disconnect(1, 2)
	require.False(t, c.IsConnected(0, 3))
	require.True(t, c.IsConnected(2, 3))

	c.ReplaceEdge(1, 3)
	assert.ElementsMatch(t, []int{0, 3, 2}, c.Edges())
	_, cut := c.Cut()
	assert.False(t, cut)

	c.Disconnect(0, 1)
	assert.False(t, c.IsConnected(1, 2))
	assert.True(t, c.IsConnected(0, 3))
	assert.True(t, c.IsConnected(2, 0))
}

func TestSingleCutRejectsNonTree(t *testing.T) {
	g := graph.MustNew(4, [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 3}})
	c := NewSingleCut(g)
	assert.Panics(t, func() { c.SetEdges([]int{0, 1}) })
	assert.Panics(t, func() { c.SetEdges([]int{0, 1, 2}) })
	assert.Panics(t, func() { c.ReplaceEdge(3, 2) })
}

func TestDoubleCutFreshIsConnected(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 5))
	for n := 2; n < 20; n++ {
		g := graph.RandomTree(n, rng)
		c := NewDoubleCut(g)
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				require.True(t, c.IsConnected(u, v))
			}
		}
	}
}

func TestDoubleCutOneCutMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(6, 7))
	for n := 2; n < 20; n++ {
		g := graph.RandomTree(n, rng)
		c := NewDoubleCut(g)
		c.SetEdges(g.Edges())
		for _, e := range g.Edges() {
			want := labels(g, e)
			u, v := g.Ends(e)
			c.Reset()
			c.Disconnect(u, v)
			for x := 0; x < n; x++ {
				for y := x + 1; y < n; y++ {
					require.Equal(t, want[x] == want[y], c.IsConnected(x, y), "n=%d e=%d", n, e)
				}
			}
		}
	}
}

func TestDoubleCutTwoCutsMatchBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 9))
	for n := 3; n < 20; n++ {
		g := graph.RandomTree(n, rng)
		c := NewDoubleCut(g)
		c.SetEdges(g.Edges())
		for e1 := 0; e1 < g.NumEdges(); e1++ {
			for e2 := e1 + 1; e2 < g.NumEdges(); e2++ {
				for _, order := range [][2]int{{e1, e2}, {e2, e1}} {
					want := labels(g, e1, e2)
					a, b := g.Ends(order[0])
					x, y := g.Ends(order[1])
					c.Disconnect2(a, b, x, y)

					assert.Equal(t, 0, c.Comp(0), "root is in component 0")
					for u := 0; u < n; u++ {
						for v := u + 1; v < n; v++ {
							require.Equal(t, want[u] == want[v], c.IsConnected(u, v),
								"n=%d cuts=%v u=%d comp %d v=%d comp %d", n, order, u, c.Comp(u), v, c.Comp(v))
						}
					}
				}
			}
		}
	}
}

func TestDoubleCutThirdCutPanics(t *testing.T) {
	g := graph.MustNew(4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	c := NewDoubleCut(g)
	c.SetEdges(g.Edges())
	c.Disconnect(0, 1)
	c.Disconnect(2, 3)
	assert.Panics(t, func() { c.Disconnect(1, 2) })

	c.Reset()
	assert.NotPanics(t, func() { c.Disconnect(1, 2) })
}

func TestDoubleCutSeparatedEndpointsPanics(t *testing.T) {
	g := graph.MustNew(3, [][2]int{{0, 1}, {1, 2}})
	c := NewDoubleCut(g)
	c.SetEdges(g.Edges())
	c.Disconnect(0, 1)
	assert.Panics(t, func() { c.Disconnect(0, 1) })
}

func TestDoubleCutReconnect(t *testing.T) {
	// Path 0-1-2-3 plus chords; cut (0,1) and (2,3) leaves {0}, {1,2}, {3}.
	g := graph.MustNew(4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {0, 2}, {1, 3}, {0, 3}})
	c := NewDoubleCut(g)
	c.SetEdges([]int{0, 1, 2})
	c.Disconnect2(0, 1, 2, 3)

	comp := func(v int) int { return c.Comp(v) }
	require.NotEqual(t, comp(0), comp(1))
	require.Equal(t, comp(1), comp(2))
	require.NotEqual(t, comp(3), comp(0))
	require.NotEqual(t, comp(3), comp(1))

	assert.True(t, c.CheckReconnect(0, 2, 1, 3), "chords (0,2) and (1,3)")
	assert.True(t, c.CheckReconnect(0, 3, 3, 2))
	assert.False(t, c.CheckReconnect(0, 2, 1, 0), "same component pair twice")
	assert.False(t, c.CheckReconnect(1, 2, 0, 3), "first edge inside a component")

	assert.Equal(t, -1, c.Category(1, 2))
	assert.NotEqual(t, c.Category(0, 2), c.Category(1, 3))
	assert.NotEqual(t, c.Category(0, 3), c.Category(0, 2))
}

func TestDoubleCutSetEdgesClearsCuts(t *testing.T) {
	g := graph.MustNew(3, [][2]int{{0, 1}, {1, 2}, {0, 2}})
	c := NewDoubleCut(g)
	c.SetEdges([]int{0, 1})
	c.Disconnect2(0, 1, 1, 2)
	c.SetEdges([]int{0, 2})
	for v := 1; v < 3; v++ {
		assert.True(t, c.IsConnected(0, v))
	}
	assert.NotPanics(t, func() { c.Disconnect2(0, 1, 0, 2) })
}

func TestCheckDetectsStaleStamps(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	g := graph.RandomTree(8, rng)
	c := NewSingleCut(g)
	c.SetEdges(g.Edges())
	require.NoError(t, c.Check())

	c.dfs.Fin[3]++
	assert.Error(t, c.Check())

	d := NewDoubleCut(g)
	d.SetEdges(g.Edges())
	require.NoError(t, d.Check())
	d.edges = d.edges[1:]
	assert.Error(t, d.Check())
}
