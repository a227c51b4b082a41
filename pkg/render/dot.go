package render

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/mstcc/pkg/problem"
)

// Options configures DOT output.
type Options struct {
	// ShowNonTree draws the edges outside the tree as dashed grey lines.
	ShowNonTree bool

	// Detailed labels every edge with its index and weight. Otherwise only
	// the weight is shown.
	Detailed bool
}

// Edge colors.
const (
	colorTree     = "black"
	colorConflict = "#d62728"
	colorNonTree  = "#c7c7c7"
)

// ToDOT converts a solution tree to an undirected Graphviz graph.
func ToDOT(p *problem.Problem, tree []int, opts Options) string {
	inTree := make([]bool, p.NumEdges())
	for _, e := range tree {
		inTree[e] = true
	}
	partners := conflictPartners(p, tree, inTree)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "graph %q {\n", p.Name)
	fmt.Fprintf(&buf, "  // weight=%d conflicts=%d\n", p.Weight(tree), p.Conflicts(tree))
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, width=0.3];\n")
	buf.WriteString("  edge [fontsize=10];\n\n")

	for v := 0; v < p.NumVertices(); v++ {
		fmt.Fprintf(&buf, "  %d;\n", v)
	}
	buf.WriteString("\n")

	for _, e := range tree {
		fmt.Fprintf(&buf, "  %s [%s];\n", fmtEnds(p, e), strings.Join(treeAttrs(p, e, partners[e], opts), ", "))
	}
	if opts.ShowNonTree {
		buf.WriteString("\n")
		for e := 0; e < p.NumEdges(); e++ {
			if inTree[e] {
				continue
			}
			fmt.Fprintf(&buf, "  %s [style=dashed, color=%q, constraint=false];\n", fmtEnds(p, e), colorNonTree)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// conflictPartners returns, for each tree edge, the tree edges it conflicts
// with in ascending order.
func conflictPartners(p *problem.Problem, tree []int, inTree []bool) map[int][]int {
	partners := make(map[int][]int)
	for _, e := range tree {
		for _, f := range p.CC[e] {
			if inTree[f] {
				partners[e] = append(partners[e], f)
			}
		}
		slices.Sort(partners[e])
	}
	return partners
}

func fmtEnds(p *problem.Problem, e int) string {
	u, v := p.G.Ends(e)
	return fmt.Sprintf("%d -- %d", u, v)
}

func treeAttrs(p *problem.Problem, e int, partners []int, opts Options) []string {
	label := fmt.Sprintf("%d", p.W[e])
	if opts.Detailed {
		label = fmt.Sprintf("e%d w=%d", e, p.W[e])
	}
	if len(partners) == 0 {
		return []string{fmt.Sprintf("label=%q", label), "penwidth=2", fmt.Sprintf("color=%q", colorTree)}
	}
	names := make([]string, len(partners))
	for i, f := range partners {
		names[i] = fmt.Sprintf("e%d", f)
	}
	label += "\n× " + strings.Join(names, " ")
	return []string{
		fmt.Sprintf("label=%q", label),
		"penwidth=3",
		fmt.Sprintf("color=%q", colorConflict),
		fmt.Sprintf("fontcolor=%q", colorConflict),
	}
}
