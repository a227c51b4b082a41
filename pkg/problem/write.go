package problem

import (
	"bufio"
	"fmt"
	"io"
)

// Write serializes p in the format accepted by [Read].
func Write(w io.Writer, p *Problem) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, p.Name)
	fmt.Fprintln(bw, p.NumVertices())
	fmt.Fprintln(bw, p.NumEdges())
	fmt.Fprintln(bw, p.NumCC)
	for e := 0; e < p.NumEdges(); e++ {
		u, v := p.G.Ends(e)
		fmt.Fprintf(bw, "%d %d %d\n", u, v, p.W[e])
	}
	for e, fs := range p.CC {
		for _, f := range fs {
			if e >= f {
				continue
			}
			a, b := p.G.Ends(e)
			x, y := p.G.Ends(f)
			fmt.Fprintf(bw, "%d %d %d %d\n", a, b, x, y)
		}
	}
	return bw.Flush()
}

// FormatEdges renders edges as space-separated "u-v" pairs, each followed
// by a space, the layout used in result lines.
func FormatEdges(p *Problem, edges []int) string {
	buf := make([]byte, 0, len(edges)*8)
	for _, e := range edges {
		u, v := p.G.Ends(e)
		buf = fmt.Appendf(buf, "%d-%d ", u, v)
	}
	return string(buf)
}
