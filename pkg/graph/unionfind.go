package graph

// UnionFind is a disjoint-set forest over the integers 0..n-1.
type UnionFind struct {
	parent []int
	rank   []uint8
	sets   int
}

// NewUnionFind creates n singleton sets.
func NewUnionFind(n int) *UnionFind {
	uf := &UnionFind{
		parent: make([]int, n),
		rank:   make([]uint8, n),
	}
	uf.Reset()
	return uf
}

// Reset puts every element back into its own set.
func (uf *UnionFind) Reset() {
	for i := range uf.parent {
		uf.parent[i] = i
		uf.rank[i] = 0
	}
	uf.sets = len(uf.parent)
}

// Find returns the representative of x's set.
func (uf *UnionFind) Find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets of x and y. It reports false if they were already
// in the same set.
func (uf *UnionFind) Union(x, y int) bool {
	rx, ry := uf.Find(x), uf.Find(y)
	if rx == ry {
		return false
	}
	switch {
	case uf.rank[rx] < uf.rank[ry]:
		uf.parent[rx] = ry
	case uf.rank[rx] > uf.rank[ry]:
		uf.parent[ry] = rx
	default:
		uf.parent[ry] = rx
		uf.rank[rx]++
	}
	uf.sets--
	return true
}

// InSameSet reports whether x and y belong to the same set.
func (uf *UnionFind) InSameSet(x, y int) bool {
	return uf.Find(x) == uf.Find(y)
}

// NumSets returns the number of disjoint sets.
func (uf *UnionFind) NumSets() int { return uf.sets }
