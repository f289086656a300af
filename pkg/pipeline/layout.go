package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/obst/pkg/graph"
	"github.com/matzehuels/obst/pkg/layout"
	"github.com/matzehuels/obst/pkg/observability"
	"github.com/matzehuels/obst/pkg/obst"
	"github.com/matzehuels/obst/pkg/render/nodelink"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout generates a serializable layout for any visualization type.
//
// Both layout types embed the result document and list positioned nodes
// and edges; nodelink layouts add the DOT source for Graphviz.
func GenerateLayout(ctx context.Context, res *obst.Result, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.VizType, res.Len())
	start := time.Now()

	var l graph.Layout
	if opts.IsNodelink() {
		l = generateNodelinkLayout(res, opts)
	} else {
		l = generateTreeLayout(res, opts)
	}

	hooks.OnLayoutComplete(ctx, opts.VizType, time.Since(start), nil)
	return l, nil
}

// generateTreeLayout positions the tree with the fixed-offset rule.
func generateTreeLayout(res *obst.Result, opts Options) graph.Layout {
	return layout.Compute(res.Tree, opts.LayoutOptions()...).Export(opts.Style, res)
}

// generateNodelinkLayout emits DOT; Graphviz places the nodes at render time.
func generateNodelinkLayout(res *obst.Result, opts Options) graph.Layout {
	return nodelink.Export(res, nodelink.Options{Detailed: opts.Detailed}, opts.Width, opts.Height, opts.Style)
}
