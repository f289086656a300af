package nodelink

import (
	"fmt"

	"github.com/matzehuels/obst/pkg/graph"
	"github.com/matzehuels/obst/pkg/layout"
	"github.com/matzehuels/obst/pkg/obst"
)

// Export creates a serializable nodelink layout from a result.
//
// Unlike tree layouts, nodelink layouts don't carry final positions:
// Graphviz places nodes during rendering. The exported layout still lists
// the tree's nodes and edges (with the geometric positions from pkg/layout)
// so consumers can inspect structure without parsing DOT.
func Export(res *obst.Result, opts Options, width, height float64, style string) graph.Layout {
	if opts.Detailed && opts.Result == nil {
		opts.Result = res
	}
	tree := layout.Compute(res.Tree, layout.WithFrame(width, height))
	out := tree.Export(style, res)
	out.VizType = graph.VizTypeNodelink
	out.DOT = ToDOT(res.Tree, opts)
	out.Engine = "dot"
	return out
}

// Parse extracts the DOT string from a serialized nodelink layout.
//
// Returns an error if the layout is not a nodelink type or is missing the DOT string.
func Parse(l graph.Layout) (string, error) {
	if l.VizType != "" && l.VizType != graph.VizTypeNodelink {
		return "", fmt.Errorf("invalid viz_type for nodelink layout: %q", l.VizType)
	}

	if l.DOT == "" {
		return "", fmt.Errorf("nodelink layout must contain DOT string")
	}

	return l.DOT, nil
}
