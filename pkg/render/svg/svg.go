package svg

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/obst/pkg/graph"
	"github.com/matzehuels/obst/pkg/layout"
	"github.com/matzehuels/obst/pkg/render"
)

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	style  Style
	radius float64
	fit    bool
}

// WithStyle sets the visual style (default [Classic]).
func WithStyle(s Style) Option { return func(r *renderer) { r.style = s } }

// WithRadius sets the node circle radius (default 30).
func WithRadius(radius float64) Option {
	return func(r *renderer) {
		if radius > 0 {
			r.radius = radius
		}
	}
}

// WithFit grows the viewBox to cover nodes that fall outside the frame.
func WithFit() Option { return func(r *renderer) { r.fit = true } }

// Render draws a tree layout as SVG. Edges are drawn before nodes so lines
// sit underneath the circles.
func Render(l graph.Layout, opts ...Option) []byte {
	r := renderer{style: Classic{}, radius: layout.NodeRadius}
	for _, opt := range opts {
		opt(&r)
	}

	minX, minY, w, h := r.viewBox(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s" preserveAspectRatio="xMidYMid meet">`+"\n",
		num(minX), num(minY), num(w), num(h), num(w), num(h))

	r.style.RenderDefs(&buf)
	for _, e := range buildEdges(l) {
		r.style.RenderEdge(&buf, e)
	}
	for _, n := range l.Nodes {
		r.style.RenderNode(&buf, Circle{
			ID:        n.ID,
			Key:       n.Label,
			Frequency: n.Frequency,
			CX:        n.X,
			CY:        n.Y,
			R:         r.radius,
		})
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderPNG renders the layout as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, l graph.Layout, scale float64, opts ...Option) ([]byte, error) {
	return render.ToPNG(ctx, Render(l, opts...), scale)
}

// RenderPDF renders the layout as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, l graph.Layout, opts ...Option) ([]byte, error) {
	return render.ToPDF(ctx, Render(l, opts...))
}

func (r renderer) viewBox(l graph.Layout) (minX, minY, w, h float64) {
	w, h = l.Width, l.Height
	if w <= 0 || h <= 0 {
		w, h = layout.DefaultWidth, layout.DefaultHeight
	}
	if !r.fit || len(l.Nodes) == 0 {
		return 0, 0, w, h
	}

	maxX, maxY := w, h
	for _, n := range l.Nodes {
		minX = min(minX, n.X-r.radius)
		minY = min(minY, n.Y-r.radius)
		maxX = max(maxX, n.X+r.radius)
		maxY = max(maxY, n.Y+r.radius)
	}
	return minX, minY, maxX - minX, maxY - minY
}

func buildEdges(l graph.Layout) []Edge {
	pos := make(map[string]graph.Node, len(l.Nodes))
	for _, n := range l.Nodes {
		pos[n.ID] = n
	}

	edges := make([]Edge, 0, len(l.Edges))
	for _, e := range l.Edges {
		src, okS := pos[e.From]
		dst, okD := pos[e.To]
		if !okS || !okD {
			continue
		}
		edges = append(edges, Edge{
			FromID: e.From, ToID: e.To, Side: e.Side,
			X1: src.X, Y1: src.Y,
			X2: dst.X, Y2: dst.Y,
		})
	}
	return edges
}
