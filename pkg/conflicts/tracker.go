// Package conflicts maintains conflict counts for a changing set of edges.
//
// A [Tracker] holds a subset T of the instance's edges and, for every edge e
// of the instance (tracked or not), the number c(e) of tracked edges that
// conflict with e. It also keeps the number of conflicting pairs inside T.
// Adding or removing e costs O(|CC[e]|), so the local search engines can
// probe a removal, score candidates against the updated counts and undo the
// removal cheaply.
package conflicts

import (
	"fmt"

	"github.com/matzehuels/mstcc/pkg/errors"
	"github.com/matzehuels/mstcc/pkg/problem"
)

// Tracker counts conflicts within a dynamic edge subset.
//
// Misuse (adding a tracked edge, removing an untracked one) panics: the
// search engines guarantee these preconditions and a violation means the
// tracker and the solution have drifted apart.
type Tracker struct {
	cc    [][]int
	count []uint32 // c(e): tracked edges conflicting with e
	pos   []int    // index of e in edges, -1 when untracked
	edges []int
	total uint64
}

// New creates an empty tracker for p.
func New(p *problem.Problem) *Tracker {
	m := p.NumEdges()
	t := &Tracker{
		cc:    p.CC,
		count: make([]uint32, m),
		pos:   make([]int, m),
		edges: make([]int, 0, max(p.NumVertices()-1, 0)),
	}
	for i := range t.pos {
		t.pos[i] = -1
	}
	return t
}

// NewWithEdges creates a tracker for p holding edges.
func NewWithEdges(p *problem.Problem, edges []int) *Tracker {
	t := New(p)
	for _, e := range edges {
		t.Add(e)
	}
	return t
}

// Add starts tracking e.
func (t *Tracker) Add(e int) {
	if t.pos[e] >= 0 {
		panic(fmt.Sprintf("conflicts: edge %d is already tracked", e))
	}
	for _, f := range t.cc[e] {
		t.count[f]++
		if t.pos[f] >= 0 {
			t.total++
		}
	}
	t.pos[e] = len(t.edges)
	t.edges = append(t.edges, e)
}

// Remove stops tracking e in O(|CC[e]|) time. The order of Edges is not
// preserved.
func (t *Tracker) Remove(e int) {
	i := t.pos[e]
	if i < 0 {
		panic(fmt.Sprintf("conflicts: edge %d is not tracked", e))
	}
	last := len(t.edges) - 1
	moved := t.edges[last]
	t.edges[i] = moved
	t.pos[moved] = i
	t.edges = t.edges[:last]
	t.pos[e] = -1

	for _, f := range t.cc[e] {
		t.count[f]--
		if t.pos[f] >= 0 {
			t.total--
		}
	}
}

// Replace removes rem and then adds ins. It is not atomic: ins must not be
// tracked already, otherwise the call panics after rem has been removed.
func (t *Tracker) Replace(rem, ins int) {
	t.Remove(rem)
	t.Add(ins)
}

// Reset stops tracking every edge.
func (t *Tracker) Reset() {
	for _, e := range t.edges {
		t.pos[e] = -1
	}
	for i := range t.count {
		t.count[i] = 0
	}
	t.edges = t.edges[:0]
	t.total = 0
}

// Total returns the number of conflicting pairs among tracked edges. Each
// unordered pair is counted once.
func (t *Tracker) Total() uint64 { return t.total }

// Of returns c(e), the number of tracked edges conflicting with e. It is
// defined for untracked edges too.
func (t *Tracker) Of(e int) uint64 { return uint64(t.count[e]) }

// Contains reports whether e is tracked.
func (t *Tracker) Contains(e int) bool { return t.pos[e] >= 0 }

// Len returns the number of tracked edges.
func (t *Tracker) Len() int { return len(t.edges) }

// Edges returns the tracked edges in unspecified order. The slice is owned
// by the tracker and changes with it.
func (t *Tracker) Edges() []int { return t.edges }

// Check rebuilds a tracker from the current edge list and compares it with
// the incrementally maintained state.
func (t *Tracker) Check() error {
	fresh := &Tracker{
		cc:    t.cc,
		count: make([]uint32, len(t.count)),
		pos:   make([]int, len(t.pos)),
	}
	for i := range fresh.pos {
		fresh.pos[i] = -1
	}
	for _, e := range t.edges {
		if fresh.pos[e] >= 0 {
			return errors.New(errors.ErrCodeInternal, "edge %d tracked twice", e)
		}
		fresh.Add(e)
	}

	if fresh.total != t.total {
		return errors.New(errors.ErrCodeInternal, "total %d, want %d", t.total, fresh.total)
	}
	for e := range t.count {
		if fresh.count[e] != t.count[e] {
			return errors.New(errors.ErrCodeInternal, "count of edge %d is %d, want %d", e, t.count[e], fresh.count[e])
		}
		if (fresh.pos[e] >= 0) != (t.pos[e] >= 0) {
			return errors.New(errors.ErrCodeInternal, "membership of edge %d is inconsistent", e)
		}
		if t.pos[e] >= 0 && t.edges[t.pos[e]] != e {
			return errors.New(errors.ErrCodeInternal, "position index of edge %d is stale", e)
		}
	}
	return nil
}
