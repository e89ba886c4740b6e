// Package sink emits computed layouts as SVG and JSON documents.
//
// [RenderSVG] produces a self-contained SVG drawing with pair bonds,
// backbone tracing, a 3' arrow, base markers and optional labels and
// legends. [RenderJSON] produces the stable coordinate manifest consumed
// by downstream tooling; its output is byte-identical for identical
// layouts. Both renderers are configured through functional options.
//
// PNG and PDF variants convert the SVG through the render package's
// rsvg-convert shell-out.
package sink
