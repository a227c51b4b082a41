// Package graph provides the undirected multigraph primitives the solver is
// built on.
//
// A [Graph] is immutable once constructed: vertices are numbered 0..n-1 and
// edges keep the index they were added with, so per-edge data (weights,
// conflict lists, membership flags) lives in plain slices indexed by edge.
//
// # Primitives
//
//   - [UnionFind]: disjoint sets with path halving and union by rank
//   - [Kruskal], [KruskalByWeight]: spanning forests from an edge order
//   - [DFS]: reusable iterative traversal producing discover/finish stamps
//   - [Components], [IsConnected], [IsSpanningTree]: validation backed by gonum
//
// # Example
//
//	g, _ := graph.New(4, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})
//	tree := graph.Kruskal(g, []int{3, 2, 1, 0})
//	fmt.Println(tree) // [3 2 1]
package graph
