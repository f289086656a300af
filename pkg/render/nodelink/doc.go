// Package nodelink renders optimal BSTs as Graphviz node-link diagrams.
//
// # Overview
//
// This package produces tree drawings using Graphviz, where keys appear as
// circles connected by lines. It's an alternative to the fixed geometric
// drawing of pkg/render/svg for trees too deep for the shrinking spacing
// rule: Graphviz sizes the canvas to fit.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(res.Tree, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, labels include the sorted index, the subtree's
//     key interval and (given a Result) its optimal cost
//
// # Child Orientation
//
// Graphviz has no notion of left and right children. The generated DOT sets
// ordering=out and adds an invisible placeholder for the missing child of
// any node with exactly one child, so a lone right child is still drawn to
// the right.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
