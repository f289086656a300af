package layout

import (
	"fmt"

	"github.com/matzehuels/obst/pkg/graph"
	"github.com/matzehuels/obst/pkg/obst"
)

// Export converts a positioned tree to the serialization format.
//
// Use this when you need to serialize the layout for:
//   - JSON file output (via graph.WriteLayoutFile)
//   - API responses
//   - Caching
//
// The result is optional; when given, its document is embedded so the
// layout can be rendered with tables or re-laid out later.
func (t *Tree) Export(style string, res *obst.Result) graph.Layout {
	out := graph.Layout{
		VizType: graph.VizTypeTree,
		Width:   t.Width,
		Height:  t.Height,
		Style:   style,
	}

	for _, n := range t.Nodes() {
		out.Nodes = append(out.Nodes, graph.Node{
			ID:        graph.NodeID(n.Index),
			Label:     n.Key,
			Frequency: n.Frequency,
			Index:     n.Index,
			Depth:     n.Depth,
			X:         n.X,
			Y:         n.Y,
		})
	}
	for _, e := range t.Edges() {
		side := graph.SideRight
		if e.Left {
			side = graph.SideLeft
		}
		out.Edges = append(out.Edges, graph.Edge{
			From: graph.NodeID(e.Parent.Index),
			To:   graph.NodeID(e.Child.Index),
			Side: side,
		})
	}

	if res != nil {
		doc := graph.FromResult(res)
		out.Result = &doc
	}
	return out
}

// Parse converts a serialized layout back to a positioned tree.
//
// Returns an error if the layout is not a tree type, if an edge names an
// unknown node, or if the edges do not form a single binary tree.
func Parse(l graph.Layout) (*Tree, error) {
	if l.VizType != "" && l.VizType != graph.VizTypeTree {
		return nil, fmt.Errorf("invalid viz_type for tree layout: %q", l.VizType)
	}

	t := &Tree{Width: l.Width, Height: l.Height}
	if len(l.Nodes) == 0 {
		return t, nil
	}

	nodes := make(map[string]*Node, len(l.Nodes))
	for _, n := range l.Nodes {
		if _, dup := nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		nodes[n.ID] = &Node{
			Key:       n.Label,
			Frequency: n.Frequency,
			Index:     n.Index,
			Depth:     n.Depth,
			X:         n.X,
			Y:         n.Y,
		}
	}

	hasParent := make(map[string]bool, len(l.Edges))
	for _, e := range l.Edges {
		parent, child := nodes[e.From], nodes[e.To]
		if parent == nil || child == nil {
			return nil, fmt.Errorf("edge %s→%s references an unknown node", e.From, e.To)
		}
		if hasParent[e.To] {
			return nil, fmt.Errorf("node %s has more than one parent", e.To)
		}
		hasParent[e.To] = true

		slot := &parent.Right
		if e.Side == graph.SideLeft {
			slot = &parent.Left
		}
		if *slot != nil {
			return nil, fmt.Errorf("node %s has two %s children", e.From, e.Side)
		}
		*slot = child
	}

	for _, n := range l.Nodes {
		if !hasParent[n.ID] {
			if t.Root != nil {
				return nil, fmt.Errorf("layout has more than one root")
			}
			t.Root = nodes[n.ID]
		}
	}
	if t.Root == nil {
		return nil, fmt.Errorf("layout has no root")
	}
	if got := len(t.Nodes()); got != len(l.Nodes) {
		return nil, fmt.Errorf("layout is not connected: reached %d of %d nodes", got, len(l.Nodes))
	}
	return t, nil
}
