// Package pkg provides the libraries behind mstcc, a heuristic solver for the
// minimum spanning tree problem with conflict constraints.
//
// # Overview
//
// An instance is a connected weighted graph whose edges may conflict in
// pairs. A spanning tree T costs α·w(T) + β·c(T), where c(T) counts the
// conflicting pairs with both edges in T. Solvers start from a constructed
// tree and apply improving edge exchanges until none is left.
//
// # Architecture
//
//	instance file
//	     ↓
//	[problem]        graph, weights, conflict lists, objective
//	     ↓
//	[construct]      random, kruskal or greedy initial tree
//	     ↓
//	[search]         1-exchange and 2-exchange local search
//	     ↓           built on [conflicts] and [connectivity]
//	[ils]            perturbation and restarts around a search engine
//	     ↓
//	[pipeline]       options, caching, result line
//
// # Main Packages
//
//   - [graph]: vertex and edge storage, union-find, Kruskal, DFS stamps
//   - [problem]: instances, objective, solution parsing and verification
//   - [conflicts]: per-edge conflict counts against the current tree
//   - [connectivity]: component queries after removing one or two tree edges
//   - [search]: first-improvement exchange engines
//   - [ils]: iterated local search driver
//   - [construct]: initial and restart trees
//   - [pipeline]: the solve pipeline with cache-or-compute
//
// # Supporting Packages
//
//   - [cache]: file, Redis and null solution caches
//   - [config]: TOML and YAML parameter files
//   - [observability], [metrics]: solver hooks and their Prometheus backend
//   - [render]: DOT and SVG drawings of a solution
//   - [errors]: structured error codes
//   - [buildinfo]: version information set at build time
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/mstcc/pkg/graph
// [problem]: https://pkg.go.dev/github.com/matzehuels/mstcc/pkg/problem
// [conflicts]: https://pkg.go.dev/github.com/matzehuels/mstcc/pkg/conflicts
// [connectivity]: https://pkg.go.dev/github.com/matzehuels/mstcc/pkg/connectivity
// [search]: https://pkg.go.dev/github.com/matzehuels/mstcc/pkg/search
// [ils]: https://pkg.go.dev/github.com/matzehuels/mstcc/pkg/ils
// [construct]: https://pkg.go.dev/github.com/matzehuels/mstcc/pkg/construct
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mstcc/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mstcc/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/mstcc/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/mstcc/pkg/observability
// [metrics]: https://pkg.go.dev/github.com/matzehuels/mstcc/pkg/metrics
// [render]: https://pkg.go.dev/github.com/matzehuels/mstcc/pkg/render
// [errors]: https://pkg.go.dev/github.com/matzehuels/mstcc/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/mstcc/pkg/buildinfo
package pkg
