package construct

import (
	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/matzehuels/mstcc/pkg/conflicts"
)

// candidate is a heap entry. key is the edge's objective when it was pushed;
// conflict counts only grow while the tree is built, so a stale key is a
// lower bound of the current one.
type candidate struct {
	key  uint64
	edge int
}

func byKeyThenEdge(a, b interface{}) int {
	x, y := a.(candidate), b.(candidate)
	switch {
	case x.key < y.key:
		return -1
	case x.key > y.key:
		return 1
	}
	return x.edge - y.edge
}

// greedy repeatedly adds the edge joining two components whose objective,
// counting conflicts with the edges chosen so far, is lowest. Ties go to the
// lower edge index. Keys are refreshed lazily: a popped entry whose key is
// stale is pushed back with its current key.
func (b *Builder) greedy(dst []int) []int {
	dst = dst[:0]
	p := b.p
	b.uf.Reset()
	tracker := conflicts.New(p)

	heap := binaryheap.NewWith(byKeyThenEdge)
	for e := 0; e < p.NumEdges(); e++ {
		heap.Push(candidate{key: b.obj.Eval(uint64(p.W[e]), 0), edge: e})
	}

	want := p.NumVertices() - 1
	for len(dst) < want {
		top, ok := heap.Pop()
		if !ok {
			break
		}
		c := top.(candidate)
		u, v := p.G.Ends(c.edge)
		if b.uf.InSameSet(u, v) {
			continue
		}
		if cur := b.obj.Eval(uint64(p.W[c.edge]), tracker.Of(c.edge)); cur != c.key {
			heap.Push(candidate{key: cur, edge: c.edge})
			continue
		}
		b.uf.Union(u, v)
		tracker.Add(c.edge)
		dst = append(dst, c.edge)
	}
	return dst
}
