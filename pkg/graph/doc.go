// Package graph provides serialization types for OBST results and layouts.
//
// This package defines the canonical wire format for obst data, used for
// JSON files, API responses, caching, and cross-tool interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Document], [Layout]: Serialization types (this package)
//   - pkg/obst.Result: Internal builder result (tables, tree)
//   - pkg/layout.Tree: Internal positioned tree
//
// Use [FromResult]/[ToResult] and the layout Export/Parse functions to
// convert between them.
//
// # Core Types
//
//   - [Document]: Keys, frequencies, cost/root tables and nested tree
//   - [Layout]: Unified format for visualization layouts (tree or nodelink)
//   - [Node], [Edge]: Positioned structural types
//
// # Constants
//
// This package is the single source of truth for visualization constants:
//
//	graph.VizTypeTree       // "tree"
//	graph.VizTypeNodelink   // "nodelink"
//	graph.StyleSimple       // "simple"
//	graph.StyleClassic      // "classic"
//
// # Document Serialization
//
// Tables are square; cells for empty intervals are null:
//
//	{
//	  "keys": ["A", "B"],
//	  "frequencies": [1, 2],
//	  "cost": [[1, 4], [null, 2]],
//	  "root": [[0, 1], [null, 1]],
//	  "tree": {"key": "B", "frequency": 2, "index": 1, "left": {...}},
//	  "total_cost": 4
//	}
//
// Common operations:
//
//	res, _ := graph.ReadDocumentFile("result.json")   // File → Result
//	graph.WriteDocumentFile(res, "result.json")       // Result → File
//	data, _ := graph.MarshalDocument(res)             // Result → []byte
//
// Reading a document validates the tables and rebuilds the tree from the
// root table.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
