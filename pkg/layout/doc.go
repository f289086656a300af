// Package layout assigns 2-D drawing coordinates to an optimal BST.
//
// # Overview
//
// [Compute] walks a tree produced by [obst.Build] and returns a positioned
// copy. Nothing is measured: positions follow a fixed geometric rule, so the
// same tree always yields the same coordinates.
//
//   - The root sits at the origin (default 500, 50).
//   - A child sits one vertical step below its parent (default 80).
//   - A left child is shifted left by the current spacing and a right child
//     right by the same amount.
//   - Spacing starts at 200 and shrinks by a factor of 0.6 per level.
//
// Deep trees shrink quickly; past six or seven levels neighbouring subtrees
// overlap. This is accepted: the layout targets the small key sets of a
// teaching tool.
//
// # Views
//
// [Tree.Nodes] flattens the positioned tree in pre-order. [Tree.Edges] lists
// parent → child connections in the order left edge, left subtree edges,
// right edge, right subtree edges. Renderers draw edges first so lines sit
// under the node circles.
//
// # Options
//
//   - [WithOrigin]: Root position (default 500, 50)
//   - [WithSpacing]: Initial horizontal offset of the root's children (default 200)
//   - [WithVerticalStep]: Distance between levels (default 80)
//   - [WithShrink]: Spacing factor applied per level (default 0.6)
//   - [WithFrame]: Frame size written to exported layouts (default 1000 x 500)
//
// # Integration
//
// The package sits between the builder and the renderers:
//
//	obst.Build → layout.Compute → Tree.Export → svg.Render
//
// [Parse] converts a serialized [graph.Layout] back into a Tree.
package layout
