// Package pkg provides the core libraries for rnaplot secondary structure drawing.
//
// # Overview
//
// rnaplot turns dot-bracket strings into publication-ready 2D drawings of RNA
// secondary structure. The pkg directory is organized into four main areas:
//
//  1. [structure], [layout] - Domain logic (parsing, tree building, coordinates)
//  2. [cache], [store] - Infrastructure (artifact caching, persistence)
//  3. [render] - Output generation (SVG, PNG, PDF, JSON, structure trees)
//  4. [pipeline] - Orchestration (parse → layout → render)
//
// # Architecture
//
// The typical data flow through rnaplot:
//
//	Dot-bracket string
//	         ↓
//	    [structure] package (tokenize + pair matching + tree)
//	         ↓
//	    [layout] package (radial loop placement)
//	         ↓
//	    [render] package (SVG backbone, bases, annotations)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Parse a structure and render it to SVG:
//
//	import (
//	    "context"
//	    "github.com/strandlab/rnaplot/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Structure: "(((...)))",
//	    Sequence:  "GGGAAACCC",
//	    Formats:   []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// # Main Packages
//
// ## Domain Logic
//
// [structure] - Dot-bracket parsing and secondary structure trees. Handles
// '(', ')' and '.' notation, multi-strand inputs with nicks ('+'), and builds
// the stem/loop tree that drives layout.
//
// [layout] - Deterministic 2D coordinate assignment. Loops are placed on
// circles and stems extend radially; the same input always produces the same
// drawing. No pass moves overlapping branches apart after placement.
//
// ## Rendering
//
// [render/sink] - Output formats for layouts (SVG, PDF, PNG, JSON) with
// nucleotide and probability coloring, labels, legends, and outlines.
//
// [render/treeviz] - Structure tree diagrams rendered through Graphviz.
//
// [render/style] - Color palettes and probability gradients.
//
// [render] - Top-level utilities for format conversion (SVG to PDF/PNG).
//
// ## Infrastructure
//
// [pipeline] - Complete drawing pipeline (parse → layout → render) used by the
// CLI, the HTTP API, and the watch TUI. Ensures consistent behavior across all
// entry points and handles artifact caching.
//
// [cache] - Content-addressed artifact cache with file, Redis, and null
// backends. Keys are derived from the structure and every render option that
// affects output.
//
// [store] - Persistence for named drawings behind the HTTP API. MongoDB for
// deployments, an in-memory store for development and tests.
//
// [errors] - Structured error codes shared by the CLI and the HTTP API.
//
// [observability] - Hook registry for timing and cache metrics.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/structure/...    # Specific package
//
// [structure]: https://pkg.go.dev/github.com/strandlab/rnaplot/pkg/structure
// [layout]: https://pkg.go.dev/github.com/strandlab/rnaplot/pkg/layout
// [cache]: https://pkg.go.dev/github.com/strandlab/rnaplot/pkg/cache
// [store]: https://pkg.go.dev/github.com/strandlab/rnaplot/pkg/store
// [render]: https://pkg.go.dev/github.com/strandlab/rnaplot/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/strandlab/rnaplot/pkg/render/sink
// [render/treeviz]: https://pkg.go.dev/github.com/strandlab/rnaplot/pkg/render/treeviz
// [render/style]: https://pkg.go.dev/github.com/strandlab/rnaplot/pkg/render/style
// [pipeline]: https://pkg.go.dev/github.com/strandlab/rnaplot/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/strandlab/rnaplot/pkg/errors
// [observability]: https://pkg.go.dev/github.com/strandlab/rnaplot/pkg/observability
package pkg
