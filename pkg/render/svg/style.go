package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/obst/pkg/graph"
)

// Style defines the visual appearance of a tree drawing.
type Style interface {
	// RenderDefs writes SVG <defs> or <style> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderEdge writes the line for one parent → child edge.
	RenderEdge(buf *bytes.Buffer, e Edge)
	// RenderNode writes the circle and labels for one node.
	RenderNode(buf *bytes.Buffer, n Circle)
}

// Circle contains all data needed to draw one node.
type Circle struct {
	ID        string
	Key       string
	Frequency float64
	CX, CY    float64
	R         float64
}

// Edge contains positioning data for one edge line.
type Edge struct {
	FromID, ToID   string
	Side           string
	X1, Y1, X2, Y2 float64
}

// StyleFor returns the style registered under name.
func StyleFor(name string) (Style, error) {
	switch name {
	case "", graph.StyleClassic:
		return Classic{}, nil
	case graph.StyleSimple:
		return Simple{}, nil
	default:
		return nil, fmt.Errorf("unknown style %q", name)
	}
}

// Classic is the indigo palette of the web frontend.
type Classic struct{}

func (Classic) RenderDefs(*bytes.Buffer) {}

func (Classic) RenderEdge(buf *bytes.Buffer, e Edge) {
	fmt.Fprintf(buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#6366f1" stroke-width="2" opacity="0.6"/>`+"\n",
		num(e.X1), num(e.Y1), num(e.X2), num(e.Y2))
}

func (Classic) RenderNode(buf *bytes.Buffer, n Circle) {
	fmt.Fprintf(buf, `  <g id="node-%s">`+"\n", EscapeXML(n.ID))
	fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s" fill="#4f46e5" stroke="#818cf8" stroke-width="2"/>`+"\n",
		num(n.CX), num(n.CY), num(n.R))
	fmt.Fprintf(buf, `    <text x="%s" y="%s" text-anchor="middle" fill="white" font-size="14" font-weight="bold">%s</text>`+"\n",
		num(n.CX), num(n.CY-5), EscapeXML(n.Key))
	fmt.Fprintf(buf, `    <text x="%s" y="%s" text-anchor="middle" fill="#c7d2fe" font-size="10">(%s)</text>`+"\n",
		num(n.CX), num(n.CY+10), num(n.Frequency))
	buf.WriteString("  </g>\n")
}

// Simple is a flat black-on-white style suited for print.
type Simple struct{}

func (Simple) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <style>
    .edge { stroke: #333333; stroke-width: 1.5; }
    .node { fill: white; stroke: #333333; stroke-width: 2; }
    .key { font-family: sans-serif; font-size: 14px; font-weight: bold; fill: #111111; }
    .freq { font-family: sans-serif; font-size: 10px; fill: #555555; }
  </style>
`)
}

func (Simple) RenderEdge(buf *bytes.Buffer, e Edge) {
	fmt.Fprintf(buf, `  <line class="edge" x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
		num(e.X1), num(e.Y1), num(e.X2), num(e.Y2))
}

func (Simple) RenderNode(buf *bytes.Buffer, n Circle) {
	fmt.Fprintf(buf, `  <g id="node-%s">`+"\n", EscapeXML(n.ID))
	fmt.Fprintf(buf, `    <circle class="node" cx="%s" cy="%s" r="%s"/>`+"\n", num(n.CX), num(n.CY), num(n.R))
	fmt.Fprintf(buf, `    <text class="key" x="%s" y="%s" text-anchor="middle">%s</text>`+"\n",
		num(n.CX), num(n.CY-5), EscapeXML(n.Key))
	fmt.Fprintf(buf, `    <text class="freq" x="%s" y="%s" text-anchor="middle">(%s)</text>`+"\n",
		num(n.CX), num(n.CY+10), num(n.Frequency))
	buf.WriteString("  </g>\n")
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// num formats a coordinate with the fewest digits that round-trip.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
