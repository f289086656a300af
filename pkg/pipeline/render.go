package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/obst/pkg/errors"
	"github.com/matzehuels/obst/pkg/graph"
	"github.com/matzehuels/obst/pkg/observability"
	"github.com/matzehuels/obst/pkg/obst"
	"github.com/matzehuels/obst/pkg/render/nodelink"
	"github.com/matzehuels/obst/pkg/render/svg"
	"github.com/matzehuels/obst/pkg/render/text"
)

// maxParallelRenders bounds concurrent renders. Each PNG or PDF render
// spawns an rsvg-convert process.
const maxParallelRenders = 4

// RenderFromLayout generates output artifacts in the requested formats.
// Formats are rendered concurrently; the first failure cancels the rest.
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	opts = applyLayoutMetadata(opts, l)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRenders)

	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(gctx, l, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// RenderFromLayoutData decodes a serialized layout and renders it.
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	l, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse layout")
	}
	return RenderFromLayout(ctx, l, opts)
}

func renderFormat(ctx context.Context, l graph.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.MarshalLayout(l)
	case FormatDOT:
		return renderDOT(l, opts)
	case FormatText:
		res, err := layoutResult(l)
		if err != nil {
			return nil, err
		}
		return RenderText(res), nil
	}

	if l.IsNodelink() {
		return renderNodelink(ctx, l, format, opts)
	}
	return renderTree(ctx, l, format, opts)
}

// renderTree draws a positioned tree layout.
func renderTree(ctx context.Context, l graph.Layout, format string, opts Options) ([]byte, error) {
	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSVG:
		return svg.Render(l, svgOpts...), nil
	case FormatPNG:
		return svg.RenderPNG(ctx, l, opts.Scale, svgOpts...)
	case FormatPDF:
		return svg.RenderPDF(ctx, l, svgOpts...)
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported tree format: %s", format)
	}
}

// renderNodelink runs the layout's DOT through Graphviz.
func renderNodelink(ctx context.Context, l graph.Layout, format string, opts Options) ([]byte, error) {
	dot, err := nodelink.Parse(l)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "nodelink layout")
	}

	switch format {
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot, opts.Scale)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported nodelink format: %s", format)
	}
}

// renderDOT returns the layout's DOT source, generating it from the
// embedded result for tree layouts.
func renderDOT(l graph.Layout, opts Options) ([]byte, error) {
	if l.DOT != "" {
		return []byte(l.DOT), nil
	}
	res, err := layoutResult(l)
	if err != nil {
		return nil, err
	}
	return []byte(nodelink.ToDOT(res.Tree, nodelink.Options{Detailed: opts.Detailed, Result: res})), nil
}

// RenderText formats the tree structure followed by the cost and root
// tables, without terminal styling.
func RenderText(res *obst.Result) []byte {
	var b strings.Builder
	b.WriteString(text.Structure(res.Tree))
	fmt.Fprintf(&b, "\nTotal cost: %s\n", text.FormatNumber(res.TotalCost))
	if res.Len() > 0 {
		fmt.Fprintf(&b, "\nCost table\n%s\n", text.CostTable(res, text.Plain()))
		fmt.Fprintf(&b, "\nRoot table\n%s\n", text.RootTable(res, text.Plain()))
	}
	return []byte(b.String())
}

// layoutResult decodes the result document embedded in a layout.
func layoutResult(l graph.Layout) (*obst.Result, error) {
	if l.Result == nil {
		return nil, errs.New(errs.ErrCodeUnsupported, "layout carries no result document")
	}
	res, err := graph.ToResult(*l.Result)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "layout result")
	}
	return res, nil
}

// applyLayoutMetadata applies layout metadata to options if not already set.
// This ensures that serialized layouts keep their original rendering settings.
func applyLayoutMetadata(opts Options, l graph.Layout) Options {
	if opts.Style == "" && l.Style != "" {
		opts.Style = l.Style
	}
	if opts.VizType == "" && l.VizType != "" {
		opts.VizType = l.VizType
	}
	if opts.Width == 0 && l.Width > 0 {
		opts.Width = l.Width
	}
	if opts.Height == 0 && l.Height > 0 {
		opts.Height = l.Height
	}
	return opts
}

// buildSVGOptions constructs SVG render options from pipeline options.
func buildSVGOptions(opts Options) ([]svg.Option, error) {
	style, err := svg.StyleFor(opts.Style)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidStyle, err, "style")
	}
	svgOpts := []svg.Option{svg.WithStyle(style)}
	if opts.Fit {
		svgOpts = append(svgOpts, svg.WithFit())
	}
	return svgOpts, nil
}
