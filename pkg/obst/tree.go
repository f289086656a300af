package obst

// Node is one key of a materialized tree. A node exclusively owns its
// subtrees; trees are never mutated after [Build] returns them.
type Node struct {
	Key       string
	Frequency float64
	// Index is the position of Key in the sorted key sequence.
	Index int
	Left  *Node
	Right *Node
}

// Materialize rebuilds the tree described by a root table over the sorted
// keys and frequencies. It returns nil when there are no keys.
func Materialize(keys []string, freqs []float64, root *Matrix[int]) *Node {
	if len(keys) == 0 {
		return nil
	}
	return materialize(keys, freqs, root, 0, len(keys)-1)
}

func materialize(keys []string, freqs []float64, root *Matrix[int], i, j int) *Node {
	if i > j {
		return nil
	}
	r := root.At(i, j)
	return &Node{
		Key:       keys[r],
		Frequency: freqs[r],
		Index:     r,
		Left:      materialize(keys, freqs, root, i, r-1),
		Right:     materialize(keys, freqs, root, r+1, j),
	}
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Left == nil && n.Right == nil
}

// Size returns the number of nodes in the tree rooted at n.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	return 1 + n.Left.Size() + n.Right.Size()
}

// Height returns the number of levels; a single node has height 1.
func (n *Node) Height() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.Left.Height(), n.Right.Height())
}

// InOrder returns the keys in symmetric order.
func (n *Node) InOrder() []string {
	keys := make([]string, 0, n.Size())
	n.walkInOrder(func(node *Node) { keys = append(keys, node.Key) })
	return keys
}

func (n *Node) walkInOrder(fn func(*Node)) {
	if n == nil {
		return
	}
	n.Left.walkInOrder(fn)
	fn(n)
	n.Right.walkInOrder(fn)
}

// Walk visits every node in pre-order with its depth (root = 1). Returning
// false from fn skips the node's subtrees.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 1)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if n == nil || !fn(n, depth) {
		return
	}
	n.Left.walk(fn, depth+1)
	n.Right.walk(fn, depth+1)
}

// WeightedCost returns Σ frequency × depth over the tree. For a tree built by
// [Build] it equals the result's TotalCost up to float rounding.
func (n *Node) WeightedCost() float64 {
	var total float64
	n.Walk(func(node *Node, depth int) bool {
		total += node.Frequency * float64(depth)
		return true
	})
	return total
}
