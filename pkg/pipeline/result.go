package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/matzehuels/mstcc/pkg/problem"
)

// Result is the outcome of one solver run.
type Result struct {
	RunID     string        `json:"run_id"`
	Name      string        `json:"name"`
	Alg       string        `json:"alg"`
	Seed      uint64        `json:"seed"`
	Tree      []int         `json:"tree"`
	Edges     [][2]int      `json:"edges"`
	Weight    uint64        `json:"weight"`
	Conflicts uint64        `json:"conflicts"`
	Elapsed   time.Duration `json:"elapsed"`

	// Initial describes the constructed tree before local search.
	Initial struct {
		Weight    uint64 `json:"weight"`
		Conflicts uint64 `json:"conflicts"`
	} `json:"initial"`

	// Cached is set when the result was served from the cache.
	Cached bool `json:"-"`
}

// Feasible reports whether the tree has no conflicts.
func (r *Result) Feasible() bool { return r.Conflicts == 0 }

// WriteCSV writes the result line
//
//	name,elapsed_seconds,conflicts,weight,u-v u-v ...
//
// followed by a newline.
func (r *Result) WriteCSV(w io.Writer, p *problem.Problem) error {
	_, err := fmt.Fprintf(w, "%s,%.02f,%d,%d,%s\n",
		r.Name, r.Elapsed.Seconds(), r.Conflicts, r.Weight, problem.FormatEdges(p, r.Tree))
	return err
}

// WriteJSON writes the result as indented JSON.
func (r *Result) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r *Result) fillEdges(p *problem.Problem) {
	r.Edges = make([][2]int, len(r.Tree))
	for i, e := range r.Tree {
		u, v := p.G.Ends(e)
		r.Edges[i] = [2]int{u, v}
	}
}
