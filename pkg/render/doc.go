// Package render provides visualization rendering for optimal BSTs.
//
// # Overview
//
// This package contains the rendering pipeline that turns a built tree into
// visual or textual output. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Positioned tree drawings (in [svg] subpackage)
//   - Graphviz node-link diagrams (in [nodelink] subpackage)
//   - Terminal text views and DP tables (in [text] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both the tree and node-link
// renderers go through them.
//
//	data := svg.Render(layout)
//	pdf, err := render.ToPDF(ctx, data)
//	png, err := render.ToPNG(ctx, data, 2.0)  // 2x scale
//
// The context bounds the subprocess; cancelling it kills rsvg-convert.
//
// [svg]: github.com/matzehuels/obst/pkg/render/svg
// [nodelink]: github.com/matzehuels/obst/pkg/render/nodelink
// [text]: github.com/matzehuels/obst/pkg/render/text
package render
