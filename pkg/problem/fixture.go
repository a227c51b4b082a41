package problem

import "github.com/matzehuels/mstcc/pkg/graph"

// Small returns a four-vertex instance on the complete graph K4 with unit
// weights:
//
//	e0=(0,1) e1=(0,2) e2=(0,3) e3=(1,2) e4=(1,3) e5=(2,3)
//
// and conflicts (e0,e1) (e0,e3) (e1,e2) (e1,e5) (e2,e4). It is small enough
// to reason about by hand and is used by tests and examples.
func Small() *Problem {
	g := graph.MustNew(4, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}})
	cc := make([][]int, g.NumEdges())
	pairs := [][2]int{{0, 1}, {0, 3}, {1, 2}, {1, 5}, {2, 4}}
	for _, p := range pairs {
		cc[p[0]] = append(cc[p[0]], p[1])
		cc[p[1]] = append(cc[p[1]], p[0])
	}
	return &Problem{
		Name:  "small",
		G:     g,
		W:     []uint32{1, 1, 1, 1, 1, 1},
		CC:    cc,
		NumCC: len(pairs),
	}
}
