package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/strandlab/rnaplot/pkg/render"
	"github.com/strandlab/rnaplot/pkg/structure"
)

// Options configures tree diagram rendering.
type Options struct {
	// Detailed includes rung counts and nucleotide index ranges in node
	// labels. When false, only the node kind is shown.
	Detailed bool
}

// ToDOT converts a parsed structure's stem/loop tree to Graphviz DOT
// format. The resulting DOT string can be rendered using [RenderSVG],
// [RenderPDF], or [RenderPNG].
func ToDOT(p *structure.Parsed, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph structure {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for id := range p.Tree.Loops {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, style=filled, fillcolor=lightgrey];\n",
			loopID(id), loopLabel(id, &p.Tree.Loops[id], opts.Detailed))
	}
	for id := range p.Tree.Stems {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=box, style=\"rounded,filled\", fillcolor=white];\n",
			stemID(id), stemLabel(id, &p.Tree.Stems[id], opts.Detailed))
	}

	buf.WriteString("\n")
	for id, l := range p.Tree.Loops {
		for _, e := range l.Elements {
			if e.Kind == structure.ElemStem {
				fmt.Fprintf(&buf, "  %q -> %q;\n", loopID(id), stemID(e.Stem))
			}
		}
	}
	for id, s := range p.Tree.Stems {
		fmt.Fprintf(&buf, "  %q -> %q;\n", stemID(id), loopID(s.Loop))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func loopID(id int) string { return fmt.Sprintf("loop%d", id) }
func stemID(id int) string { return fmt.Sprintf("stem%d", id) }

func loopLabel(id int, l *structure.Loop, detailed bool) string {
	kind := "loop"
	switch {
	case id == 0:
		kind = "exterior"
	case l.IsHairpin():
		kind = "hairpin"
	case l.Children() > 1:
		kind = "multiloop"
	}
	if !detailed {
		return kind
	}
	return fmt.Sprintf("%s\nunpaired: %d\nstems: %d", kind, l.Unpaired(), l.Children())
}

func stemLabel(id int, s *structure.Stem, detailed bool) string {
	if !detailed {
		return fmt.Sprintf("stem %d", id)
	}
	i, j := s.Closing()
	return fmt.Sprintf("stem %d\nrungs: %d\npair: (%d, %d)", id, s.Len(), i, j)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
