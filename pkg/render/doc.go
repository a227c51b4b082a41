// Package render draws a solution tree of an MSTCC instance.
//
// [ToDOT] produces a Graphviz DOT document of the tree. Tree edges that take
// part in a conflict pair are drawn red and labelled with the edges they
// conflict with; non-tree edges can be added as faint dashed lines to show
// the alternatives the search had. [RenderSVG] lays the document out with
// the embedded Graphviz library, so no dot binary is needed.
//
//	dot := render.ToDOT(p, result.Tree, render.Options{ShowNonTree: true})
//	svg, err := render.RenderSVG(ctx, dot)
package render
