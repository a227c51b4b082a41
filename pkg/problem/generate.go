package problem

import (
	"math/rand/v2"

	"github.com/matzehuels/mstcc/pkg/errors"
	"github.com/matzehuels/mstcc/pkg/graph"
)

// GenerateOptions describes a random instance.
type GenerateOptions struct {
	Name      string
	Vertices  int
	Edges     int
	Conflicts int
	MaxWeight uint32 // weights are drawn uniformly from [1, MaxWeight]
}

// Generate builds a random connected simple instance. A random spanning tree
// guarantees connectivity, the remaining edges and the conflict pairs are
// sampled without repetition.
func Generate(opts GenerateOptions, rng *rand.Rand) (*Problem, error) {
	n, m, c := opts.Vertices, opts.Edges, opts.Conflicts
	if n < 1 {
		return nil, errors.New(errors.ErrCodeInvalidParam, "vertex count must be positive, got %d", n)
	}
	if m < n-1 || m > n*(n-1)/2 {
		return nil, errors.New(errors.ErrCodeInvalidParam, "edge count %d outside [%d, %d]", m, n-1, n*(n-1)/2)
	}
	if c < 0 || c > m*(m-1)/2 {
		return nil, errors.New(errors.ErrCodeInvalidParam, "conflict count %d outside [0, %d]", c, m*(m-1)/2)
	}
	if opts.MaxWeight == 0 {
		return nil, errors.New(errors.ErrCodeInvalidParam, "max weight must be positive")
	}
	name := opts.Name
	if name == "" {
		name = "random"
	}

	tree := graph.RandomTree(n, rng)
	ends := make([][2]int, 0, m)
	seen := make(map[[2]int]bool, m)
	for _, e := range tree.Edges() {
		u, v := tree.Ends(e)
		ends = append(ends, [2]int{u, v})
		seen[[2]int{min(u, v), max(u, v)}] = true
	}
	for len(ends) < m {
		u, v := rng.IntN(n), rng.IntN(n)
		k := [2]int{min(u, v), max(u, v)}
		if u == v || seen[k] {
			continue
		}
		seen[k] = true
		ends = append(ends, [2]int{u, v})
	}
	rng.Shuffle(len(ends), func(i, j int) { ends[i], ends[j] = ends[j], ends[i] })

	g, err := graph.New(n, ends)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build random graph")
	}

	w := make([]uint32, m)
	for e := range w {
		w[e] = 1 + rng.Uint32N(opts.MaxWeight)
	}

	cc := make([][]int, m)
	pairs := make(map[[2]int]bool, c)
	for len(pairs) < c {
		e, f := rng.IntN(m), rng.IntN(m)
		k := [2]int{min(e, f), max(e, f)}
		if e == f || pairs[k] {
			continue
		}
		pairs[k] = true
		cc[e] = append(cc[e], f)
		cc[f] = append(cc[f], e)
	}

	return &Problem{Name: name, G: g, W: w, CC: cc, NumCC: c}, nil
}
