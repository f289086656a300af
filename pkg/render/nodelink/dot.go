package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/obst/pkg/graph"
	"github.com/matzehuels/obst/pkg/obst"
	"github.com/matzehuels/obst/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the sorted index and subtree cost in node labels.
	// When false, labels show the key and frequency only.
	Detailed bool
	// Result supplies subtree costs for detailed labels. Optional.
	Result *obst.Result
}

// ToDOT converts a tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// A node with a single child gets an invisible sibling placeholder so
// Graphviz keeps left children on the left and right children on the right.
func ToDOT(root *obst.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=\"#4f46e5\", color=\"#818cf8\", fontcolor=white, fontsize=14, penwidth=2];\n")
	buf.WriteString("  edge [color=\"#6366f1\", penwidth=2, arrowhead=none];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	var nodes, edges bytes.Buffer
	var visit func(n *obst.Node, lo, hi int)
	visit = func(n *obst.Node, lo, hi int) {
		if n == nil {
			return
		}
		id := graph.NodeID(n.Index)
		fmt.Fprintf(&nodes, "  %q [label=%q];\n", id, fmtLabel(n, opts, lo, hi))

		for _, child := range []struct {
			node *obst.Node
			side string
		}{{n.Left, graph.SideLeft}, {n.Right, graph.SideRight}} {
			if child.node != nil {
				fmt.Fprintf(&edges, "  %q -> %q;\n", id, graph.NodeID(child.node.Index))
				continue
			}
			if n.IsLeaf() {
				continue
			}
			ph := id + "_" + child.side
			fmt.Fprintf(&nodes, "  %q [label=\"\", style=invis, width=0.1];\n", ph)
			fmt.Fprintf(&edges, "  %q -> %q [style=invis];\n", id, ph)
		}

		visit(n.Left, lo, n.Index-1)
		visit(n.Right, n.Index+1, hi)
	}
	if root != nil {
		visit(root, 0, root.Size()-1)
	}

	buf.Write(nodes.Bytes())
	buf.WriteString("\n")
	buf.Write(edges.Bytes())
	buf.WriteString("}\n")
	return buf.String()
}

// fmtLabel builds the node label. lo and hi bound the node's interval in the
// sorted key sequence.
func fmtLabel(n *obst.Node, opts Options, lo, hi int) string {
	label := n.Key + "\n(" + strconv.FormatFloat(n.Frequency, 'f', -1, 64) + ")"
	if !opts.Detailed {
		return label
	}
	label += fmt.Sprintf("\n#%d [%d..%d]", n.Index, lo, hi)
	if opts.Result != nil && opts.Result.Cost.Defined(lo, hi) {
		label += "\ncost " + strconv.FormatFloat(opts.Result.Cost.At(lo, hi), 'f', -1, 64)
	}
	return label
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel-sized one.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
