// Package pkg provides the core libraries for obst, a builder and viewer
// for optimal binary search trees.
//
// # Overview
//
// Given keys with access frequencies, obst finds the binary search tree with
// the lowest expected search cost, keeps the dynamic-programming tables that
// prove it, and draws the result. The pkg directory is organized as:
//
//  1. [obst] - The builder: cost and root tables, tree, cell explanations
//  2. [dataset] - Reading, filtering and validating entries (TOML, JSON, CSV)
//  3. [layout] - 2-D positions for tree drawings
//  4. [render] - SVG, PNG/PDF, Graphviz and terminal text output
//  5. [graph] - Serialization types for results and layouts
//  6. [pipeline] - Orchestration (build → layout → render) with caching
//  7. [cache] - File, Redis and MongoDB stores for pipeline stages
//  8. [server] - The HTTP API
//  9. [config] - The TOML configuration file
//
// # Architecture
//
// The typical data flow through obst:
//
//	Dataset file / key=frequency arguments
//	         ↓
//	    [dataset] package (filter + validate)
//	         ↓
//	    [obst] package (cost/root tables + tree)
//	         ↓
//	    [layout] package (node positions)
//	         ↓
//	    [render] packages
//	         ↓
//	SVG/PNG/PDF/JSON/DOT/text output
//
// # Quick Start
//
//	res := obst.Build(dataset.Default())
//	fmt.Println(res.TotalCost) // 257
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Entries: dataset.Default(),
//	    Formats: []string{"svg", "txt"},
//	})
//
// [obst]: github.com/matzehuels/obst/pkg/obst
// [dataset]: github.com/matzehuels/obst/pkg/dataset
// [layout]: github.com/matzehuels/obst/pkg/layout
// [render]: github.com/matzehuels/obst/pkg/render
// [graph]: github.com/matzehuels/obst/pkg/graph
// [pipeline]: github.com/matzehuels/obst/pkg/pipeline
// [cache]: github.com/matzehuels/obst/pkg/cache
// [server]: github.com/matzehuels/obst/pkg/server
// [config]: github.com/matzehuels/obst/pkg/config
package pkg
