// Package svg draws positioned trees as SVG.
//
// [Render] takes a serialized [graph.Layout] of viz type "tree" and writes
// one line per edge followed by one circle per node, labelled with the key
// and its frequency in parentheses. The default frame is 0 0 1000 500,
// matching the coordinates produced by pkg/layout.
//
// Two styles are available through [StyleFor]:
//
//   - classic: indigo circles on a transparent background
//   - simple: white circles with dark outlines, suited for print
//
// PNG and PDF output go through [render.ToPNG] and [render.ToPDF].
package svg
