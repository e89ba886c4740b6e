// Package render provides output rendering for computed layouts.
//
// # Overview
//
// This package contains the rendering pipeline that transforms layout
// geometry into deliverable documents. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Per-base fill resolution (in [style] subpackage)
//   - SVG and JSON emitters (in [sink] subpackage)
//   - Structure tree diagrams (in [treeviz] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These are used by both
// the drawing and tree renderers.
//
//	svg := sink.RenderSVG(l, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Emitters
//
// The [sink] subpackage renders drawings. SVG output layers pair bonds,
// backbone tracing, the 3' arrow, base circles, labels and legends; JSON
// output is the stable coordinate manifest with deterministic formatting.
//
// # Tree Diagrams
//
// The [treeviz] subpackage renders the stem/loop tree of a parsed
// structure as a directed graph using Graphviz, for debugging nesting.
//
//	dot := treeviz.ToDOT(parsed, treeviz.Options{})
//	svg, err := treeviz.RenderSVG(dot)
//
// [style]: github.com/strandlab/rnaplot/pkg/render/style
// [sink]: github.com/strandlab/rnaplot/pkg/render/sink
// [treeviz]: github.com/strandlab/rnaplot/pkg/render/treeviz
package render
