package text

import (
	"strconv"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/matzehuels/obst/pkg/obst"
)

// Structure prints the tree one node per line as "key (frequency)" with box
// drawing connectors. The root is drawn as a last child; a left child is
// never drawn as last, even when it has no sibling. Returns "" for an empty
// tree.
func Structure(root *obst.Node) string {
	var b strings.Builder
	writeStructure(&b, root, "", true)
	return b.String()
}

func writeStructure(b *strings.Builder, n *obst.Node, prefix string, last bool) {
	if n == nil {
		return
	}
	b.WriteString(prefix)
	if last {
		b.WriteString("└── ")
	} else {
		b.WriteString("├── ")
	}
	b.WriteString(Label(n))
	b.WriteByte('\n')

	ext := "│   "
	if last {
		ext = "    "
	}
	switch {
	case n.Left != nil && n.Right != nil:
		writeStructure(b, n.Left, prefix+ext, false)
		writeStructure(b, n.Right, prefix+ext, true)
	case n.Left != nil:
		writeStructure(b, n.Left, prefix+ext, false)
	case n.Right != nil:
		writeStructure(b, n.Right, prefix+ext, true)
	}
}

// Outline prints the tree with explicit L/R markers on every child, which
// keeps a lone child's side visible.
func Outline(root *obst.Node) string {
	if root == nil {
		return ""
	}
	tree := treeprint.NewWithRoot(Label(root))
	addChildren(tree, root)
	return tree.String()
}

func addChildren(tree treeprint.Tree, n *obst.Node) {
	for _, c := range []struct {
		node *obst.Node
		side string
	}{{n.Left, "L"}, {n.Right, "R"}} {
		if c.node == nil {
			continue
		}
		label := c.side + ": " + Label(c.node)
		if c.node.IsLeaf() {
			tree.AddNode(label)
			continue
		}
		addChildren(tree.AddBranch(label), c.node)
	}
}

// Label formats a node as "key (frequency)".
func Label(n *obst.Node) string {
	return n.Key + " (" + FormatNumber(n.Frequency) + ")"
}

// FormatNumber prints f with the fewest digits that round-trip.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
