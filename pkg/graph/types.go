package graph

import (
	"fmt"

	"github.com/matzehuels/obst/pkg/obst"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types.
const (
	VizTypeTree     = "tree"
	VizTypeNodelink = "nodelink"
)

// Visual styles for rendering.
const (
	StyleSimple  = "simple"
	StyleClassic = "classic"
)

// Child sides for edges.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// =============================================================================
// Document - Result Serialization
// =============================================================================

// Document is the canonical serialization format for an OBST result.
// Used for JSON files, API responses and cache keys.
//
// Table cells for empty intervals (i > j) are encoded as null so a reader
// never mistakes them for real costs.
type Document struct {
	Keys        []string     `json:"keys" bson:"keys"`
	Frequencies []float64    `json:"frequencies" bson:"frequencies"`
	Cost        [][]*float64 `json:"cost" bson:"cost"`
	Root        [][]*int     `json:"root" bson:"root"`
	Tree        *TreeNode    `json:"tree" bson:"tree"`
	TotalCost   float64      `json:"total_cost" bson:"total_cost"`
}

// TreeNode is the nested JSON form of an [obst.Node].
type TreeNode struct {
	Key       string    `json:"key" bson:"key"`
	Frequency float64   `json:"frequency" bson:"frequency"`
	Index     int       `json:"index" bson:"index"`
	Left      *TreeNode `json:"left,omitempty" bson:"left,omitempty"`
	Right     *TreeNode `json:"right,omitempty" bson:"right,omitempty"`
}

// Len returns the number of keys in the document.
func (d *Document) Len() int { return len(d.Keys) }

// =============================================================================
// Node, Edge - Positioned Elements
// =============================================================================

// Node is a positioned tree node in a [Layout].
type Node struct {
	ID        string  `json:"id" bson:"id"`
	Label     string  `json:"label" bson:"label"`
	Frequency float64 `json:"frequency" bson:"frequency"`
	Index     int     `json:"index" bson:"index"`
	Depth     int     `json:"depth" bson:"depth"`
	X         float64 `json:"x" bson:"x"`
	Y         float64 `json:"y" bson:"y"`
}

// Edge connects a parent node to one of its children.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
	Side string `json:"side" bson:"side"` // "left" or "right"
}

// NodeID returns the stable identifier used for the key at sorted index i.
// Keys may repeat, indices never do.
func NodeID(index int) string {
	return fmt.Sprintf("k%d", index)
}

// =============================================================================
// Result ↔ Document Conversion
// =============================================================================

// FromResult converts a builder result to its serialization format.
func FromResult(res *obst.Result) Document {
	n := res.Len()
	doc := Document{
		Keys:        append([]string{}, res.Keys...),
		Frequencies: append([]float64{}, res.Frequencies...),
		Cost:        make([][]*float64, n),
		Root:        make([][]*int, n),
		Tree:        treeFromNode(res.Tree),
		TotalCost:   res.TotalCost,
	}
	for i := 0; i < n; i++ {
		doc.Cost[i] = make([]*float64, n)
		doc.Root[i] = make([]*int, n)
		for j := i; j < n; j++ {
			c, r := res.Cost.At(i, j), res.Root.At(i, j)
			doc.Cost[i][j] = &c
			doc.Root[i][j] = &r
		}
	}
	return doc
}

// ToResult converts a document back to a builder result.
//
// The tree is rebuilt from the root table rather than trusted from the
// nested form, so a document whose tree disagrees with its tables is
// rejected.
func ToResult(doc Document) (*obst.Result, error) {
	n := doc.Len()
	if len(doc.Frequencies) != n {
		return nil, fmt.Errorf("document has %d keys but %d frequencies", n, len(doc.Frequencies))
	}
	if len(doc.Cost) != n || len(doc.Root) != n {
		return nil, fmt.Errorf("document tables must have %d rows", n)
	}

	costRows := make([][]float64, n)
	rootRows := make([][]int, n)
	for i := 0; i < n; i++ {
		if len(doc.Cost[i]) != n || len(doc.Root[i]) != n {
			return nil, fmt.Errorf("row %d must have %d cells", i, n)
		}
		costRows[i] = make([]float64, n)
		rootRows[i] = make([]int, n)
		for j := i; j < n; j++ {
			if doc.Cost[i][j] == nil || doc.Root[i][j] == nil {
				return nil, fmt.Errorf("cell (%d, %d) is missing", i, j)
			}
			r := *doc.Root[i][j]
			if r < i || r > j {
				return nil, fmt.Errorf("root (%d, %d) = %d is outside the interval", i, j, r)
			}
			costRows[i][j] = *doc.Cost[i][j]
			rootRows[i][j] = r
		}
	}

	cost, err := obst.MatrixFromRows(costRows)
	if err != nil {
		return nil, fmt.Errorf("cost table: %w", err)
	}
	root, err := obst.MatrixFromRows(rootRows)
	if err != nil {
		return nil, fmt.Errorf("root table: %w", err)
	}

	res := &obst.Result{
		Cost:        cost,
		Root:        root,
		Keys:        append([]string{}, doc.Keys...),
		Frequencies: append([]float64{}, doc.Frequencies...),
		TotalCost:   doc.TotalCost,
	}
	res.Tree = obst.Materialize(res.Keys, res.Frequencies, root)

	if doc.Tree != nil && !sameShape(doc.Tree, res.Tree) {
		return nil, fmt.Errorf("tree does not match root table")
	}
	return res, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

func treeFromNode(n *obst.Node) *TreeNode {
	if n == nil {
		return nil
	}
	return &TreeNode{
		Key:       n.Key,
		Frequency: n.Frequency,
		Index:     n.Index,
		Left:      treeFromNode(n.Left),
		Right:     treeFromNode(n.Right),
	}
}

func sameShape(t *TreeNode, n *obst.Node) bool {
	if t == nil || n == nil {
		return t == nil && n == nil
	}
	return t.Index == n.Index && t.Key == n.Key &&
		sameShape(t.Left, n.Left) && sameShape(t.Right, n.Right)
}
