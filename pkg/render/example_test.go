package render_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/mstcc/pkg/problem"
	"github.com/matzehuels/mstcc/pkg/render"
)

func ExampleToDOT() {
	p := problem.Small()
	dot := render.ToDOT(p, []int{2, 3, 5}, render.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "--") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// 0 -- 3 [label="1", penwidth=2, color="black"];
	// 1 -- 2 [label="1", penwidth=2, color="black"];
	// 2 -- 3 [label="1", penwidth=2, color="black"];
}
