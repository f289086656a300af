package layout

import "github.com/matzehuels/obst/pkg/obst"

// Defaults for the positioning rule.
const (
	DefaultOriginX      = 500.0
	DefaultOriginY      = 50.0
	DefaultSpacing      = 200.0
	DefaultVerticalStep = 80.0
	DefaultShrink       = 0.6
	DefaultWidth        = 1000.0
	DefaultHeight       = 500.0

	// NodeRadius is the drawn radius of a node circle.
	NodeRadius = 30.0
)

// Node is a positioned copy of an [obst.Node].
type Node struct {
	Key       string
	Frequency float64
	Index     int
	// Depth is 0 for the root.
	Depth int
	X, Y  float64
	Left  *Node
	Right *Node
}

// Edge connects a parent to one of its children.
type Edge struct {
	Parent *Node
	Child  *Node
	// Left is true when Child is the parent's left child.
	Left bool
}

// Tree is a positioned tree together with its frame.
type Tree struct {
	Root   *Node
	Width  float64
	Height float64
}

// Option configures [Compute].
type Option func(*config)

type config struct {
	originX, originY float64
	spacing          float64
	verticalStep     float64
	shrink           float64
	width, height    float64
}

// WithOrigin sets the root position.
func WithOrigin(x, y float64) Option {
	return func(c *config) { c.originX, c.originY = x, y }
}

// WithSpacing sets the horizontal offset of the root's children.
func WithSpacing(s float64) Option {
	return func(c *config) {
		if s > 0 {
			c.spacing = s
		}
	}
}

// WithVerticalStep sets the distance between levels.
func WithVerticalStep(v float64) Option {
	return func(c *config) {
		if v > 0 {
			c.verticalStep = v
		}
	}
}

// WithShrink sets the per-level spacing factor. Values outside (0, 1] are
// ignored.
func WithShrink(f float64) Option {
	return func(c *config) {
		if f > 0 && f <= 1 {
			c.shrink = f
		}
	}
}

// WithFrame sets the frame size recorded on the tree.
func WithFrame(width, height float64) Option {
	return func(c *config) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}

// Compute positions every node of root. A nil root yields a tree with no
// nodes.
func Compute(root *obst.Node, opts ...Option) *Tree {
	c := config{
		originX:      DefaultOriginX,
		originY:      DefaultOriginY,
		spacing:      DefaultSpacing,
		verticalStep: DefaultVerticalStep,
		shrink:       DefaultShrink,
		width:        DefaultWidth,
		height:       DefaultHeight,
	}
	for _, opt := range opts {
		opt(&c)
	}

	return &Tree{
		Root:   c.place(root, c.originX, c.originY, c.spacing, 0),
		Width:  c.width,
		Height: c.height,
	}
}

func (c config) place(n *obst.Node, x, y, spacing float64, depth int) *Node {
	if n == nil {
		return nil
	}
	next := spacing * c.shrink
	return &Node{
		Key:       n.Key,
		Frequency: n.Frequency,
		Index:     n.Index,
		Depth:     depth,
		X:         x,
		Y:         y,
		Left:      c.place(n.Left, x-spacing, y+c.verticalStep, next, depth+1),
		Right:     c.place(n.Right, x+spacing, y+c.verticalStep, next, depth+1),
	}
}

// Nodes returns the positioned nodes in pre-order.
func (t *Tree) Nodes() []*Node {
	var out []*Node
	var visit func(*Node)
	visit = func(n *Node) {
		if n == nil {
			return
		}
		out = append(out, n)
		visit(n.Left)
		visit(n.Right)
	}
	visit(t.Root)
	return out
}

// Edges returns parent → child pairs: for each node, its left edge, the
// left subtree's edges, its right edge, then the right subtree's edges.
func (t *Tree) Edges() []Edge {
	var out []Edge
	var visit func(*Node)
	visit = func(n *Node) {
		if n == nil {
			return
		}
		if n.Left != nil {
			out = append(out, Edge{Parent: n, Child: n.Left, Left: true})
			visit(n.Left)
		}
		if n.Right != nil {
			out = append(out, Edge{Parent: n, Child: n.Right})
			visit(n.Right)
		}
	}
	visit(t.Root)
	return out
}

// Bounds is the axis-aligned box covering every node circle.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Bounds returns the box covering all node circles. An empty tree has zero
// bounds.
func (t *Tree) Bounds() Bounds {
	nodes := t.Nodes()
	if len(nodes) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: nodes[0].X - NodeRadius, MaxX: nodes[0].X + NodeRadius,
		MinY: nodes[0].Y - NodeRadius, MaxY: nodes[0].Y + NodeRadius,
	}
	for _, n := range nodes[1:] {
		b.MinX = min(b.MinX, n.X-NodeRadius)
		b.MaxX = max(b.MaxX, n.X+NodeRadius)
		b.MinY = min(b.MinY, n.Y-NodeRadius)
		b.MaxY = max(b.MaxY, n.Y+NodeRadius)
	}
	return b
}
