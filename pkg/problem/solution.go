package problem

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/mstcc/pkg/errors"
	"github.com/matzehuels/mstcc/pkg/graph"
)

// Solution is a spanning tree candidate read back from a result line,
// together with whatever totals the line declared.
type Solution struct {
	Name  string
	Edges []int

	// Declared totals. Nil when the line did not carry them.
	Weight    *uint64
	Conflicts *uint64
}

// ParseSolution parses one solution line in either of two layouts:
//
//	name,elapsed,conflicts,weight,u-v u-v ...
//	[weight] u-v u-v ...
//
// The weight prefix of the second layout is read only when withWeight is
// set. Edges are resolved against p by their endpoints.
func ParseSolution(p *Problem, line string, withWeight bool) (Solution, error) {
	var sol Solution
	line = strings.TrimSpace(line)

	if parts := strings.Split(line, ","); len(parts) == 5 {
		sol.Name = parts[0]
		c, err := strconv.ParseUint(strings.TrimSpace(parts[2]), 10, 64)
		if err != nil {
			return sol, errors.New(errors.ErrCodeInvalidFormat, "invalid conflict count %q", parts[2])
		}
		w, err := strconv.ParseUint(strings.TrimSpace(parts[3]), 10, 64)
		if err != nil {
			return sol, errors.New(errors.ErrCodeInvalidFormat, "invalid weight %q", parts[3])
		}
		sol.Conflicts, sol.Weight = &c, &w
		line = parts[4]
	} else if len(parts) != 1 {
		return sol, errors.New(errors.ErrCodeInvalidFormat, "expected 5 comma-separated fields, got %d", len(parts))
	}

	fields := strings.Fields(line)
	if withWeight && sol.Weight == nil {
		if len(fields) == 0 {
			return sol, errors.New(errors.ErrCodeInvalidFormat, "missing weight")
		}
		w, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return sol, errors.New(errors.ErrCodeInvalidFormat, "invalid weight %q", fields[0])
		}
		sol.Weight = &w
		fields = fields[1:]
	}

	sol.Edges = make([]int, 0, len(fields))
	for _, f := range fields {
		us, vs, ok := strings.Cut(f, "-")
		if !ok {
			return sol, errors.New(errors.ErrCodeInvalidFormat, "invalid edge %q, want u-v", f)
		}
		u, err1 := strconv.Atoi(us)
		v, err2 := strconv.Atoi(vs)
		if err1 != nil || err2 != nil {
			return sol, errors.New(errors.ErrCodeInvalidFormat, "invalid edge %q, want u-v", f)
		}
		e, ok := p.G.EdgeByEnds(u, v)
		if !ok {
			return sol, errors.New(errors.ErrCodeInvalidInput, "edge %d-%d is not in the instance", u, v)
		}
		sol.Edges = append(sol.Edges, e)
	}
	return sol, nil
}

// Report is the outcome of verifying a solution.
type Report struct {
	SpanningTree bool
	Weight       uint64
	Conflicts    uint64
	Pairs        [][2]int // conflicting tree edge pairs
	Violations   []string
}

// OK reports whether the solution had no violations.
func (r Report) OK() bool { return len(r.Violations) == 0 }

// Feasible reports whether the solution is a conflict-free spanning tree.
func (r Report) Feasible() bool { return r.SpanningTree && r.Conflicts == 0 }

// Verify recomputes the totals of sol from scratch and lists every
// violation: not a spanning tree, or declared totals that do not match.
// Conflicts in the tree are reported in Pairs but are not violations, since
// the objective admits them.
func (p *Problem) Verify(sol Solution) Report {
	r := Report{
		SpanningTree: graph.IsSpanningTree(p.G, sol.Edges),
		Weight:       p.Weight(sol.Edges),
		Pairs:        p.ConflictPairs(sol.Edges),
	}
	r.Conflicts = uint64(len(r.Pairs))
	if !r.SpanningTree {
		r.Violations = append(r.Violations, "not a spanning tree")
	}
	if sol.Weight != nil && *sol.Weight != r.Weight {
		r.Violations = append(r.Violations, fmt.Sprintf("weight %d != %d", *sol.Weight, r.Weight))
	}
	if sol.Conflicts != nil && *sol.Conflicts != r.Conflicts {
		r.Violations = append(r.Violations, fmt.Sprintf("conflicts %d != %d", *sol.Conflicts, r.Conflicts))
	}
	return r
}
