package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/strandlab/rnaplot/pkg/layout"
	"github.com/strandlab/rnaplot/pkg/render/style"
)

// Legend selects the legend panel rendered beside the structure.
type Legend int

const (
	// LegendNone renders no legend.
	LegendNone Legend = iota
	// LegendNucleotide renders color swatches for A, C, G and U.
	LegendNucleotide
	// LegendProbability renders a probability gradient colorbar.
	LegendProbability
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale           float64
	padding         float64
	backboneWidth   float64
	backboneColor   string
	pairWidth       float64
	pairColor       string
	baseRadius      float64
	baseStrokeWidth float64
	baseFill        string
	fills           []string
	palette         style.Palette
	sequence        string
	fontSize        float64
	showLabels      bool
	showArrow       bool
	legend          Legend
}

// WithScale sets the pixels-per-geometry-unit factor.
func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithPadding sets the viewBox padding in pixels.
func WithPadding(p float64) SVGOption { return func(r *svgRenderer) { r.padding = p } }

// WithBackbone sets the backbone stroke width and color.
func WithBackbone(width float64, color string) SVGOption {
	return func(r *svgRenderer) { r.backboneWidth = width; r.backboneColor = color }
}

// WithPairBonds sets the pair bond stroke width and color.
func WithPairBonds(width float64, color string) SVGOption {
	return func(r *svgRenderer) { r.pairWidth = width; r.pairColor = color }
}

// WithBaseMarkers sets the base circle radius and stroke width.
func WithBaseMarkers(radius, strokeWidth float64) SVGOption {
	return func(r *svgRenderer) { r.baseRadius = radius; r.baseStrokeWidth = strokeWidth }
}

// WithBaseFill sets the uniform base fill used when no per-base fill
// resolves.
func WithBaseFill(color string) SVGOption { return func(r *svgRenderer) { r.baseFill = color } }

// WithFills supplies resolved per-base fill colors, typically from
// [style.Fills].
func WithFills(fills []string) SVGOption { return func(r *svgRenderer) { r.fills = fills } }

// WithPalette overrides the legend palette. The default is
// [style.DefaultPalette].
func WithPalette(p style.Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithLabels enables nucleotide labels from the given sequence.
func WithLabels(sequence string) SVGOption {
	return func(r *svgRenderer) { r.sequence = sequence; r.showLabels = true }
}

// WithFontSize sets the label font size in pixels.
func WithFontSize(size float64) SVGOption { return func(r *svgRenderer) { r.fontSize = size } }

// WithoutArrow disables the 3' direction arrow.
func WithoutArrow() SVGOption { return func(r *svgRenderer) { r.showArrow = false } }

// WithLegend selects a legend panel.
func WithLegend(l Legend) SVGOption { return func(r *svgRenderer) { r.legend = l } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		scale:           50,
		padding:         20,
		backboneWidth:   5,
		backboneColor:   "black",
		pairWidth:       2.5,
		pairColor:       "black",
		baseRadius:      7.5,
		baseStrokeWidth: 2.5,
		baseFill:        style.DefaultBaseFill,
		palette:         style.DefaultPalette,
		fontSize:        10,
		showArrow:       true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders the layout as a self-contained SVG document. Layers
// from back to front: pair bonds, backbone, 3' arrow, base circles,
// labels, legend.
func RenderSVG(l *layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	minX, minY, maxX, maxY := r.pixelBBox(l)
	vbX := minX - r.padding
	vbY := minY - r.padding
	structW := (maxX - minX) + 2*r.padding
	vbH := (maxY - minY) + 2*r.padding
	vbW := structW + r.legendWidth()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f">`,
		vbX, vbY, vbW, vbH)

	if r.showArrow {
		fmt.Fprintf(&buf, `<defs><marker markerWidth="3" markerHeight="3" refX="10" refY="10" viewBox="0 0 20 20" orient="auto" id="arrow" markerUnits="strokeWidth"><path d="M0 0 10 0 20 10 10 20 0 20 10 10Z" fill="%s"/></marker></defs>`,
			r.backboneColor)
	}

	r.renderPairBonds(&buf, l)
	r.renderBackbone(&buf, l)
	if r.showArrow {
		r.renderArrow(&buf, l)
	}
	r.renderBaseMarkers(&buf, l)
	if r.showLabels && r.sequence != "" {
		r.renderLabels(&buf, l)
	}
	if r.legend != LegendNone {
		r.renderLegend(&buf, vbX+structW, vbY, vbH)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// px converts a geometry point to pixel coordinates, flipping y so the
// drawing reads top-down.
func (r *svgRenderer) px(v layout.Vec2) (float64, float64) {
	return v.X * r.scale, -v.Y * r.scale
}

func (r *svgRenderer) legendWidth() float64 {
	switch r.legend {
	case LegendNucleotide:
		return 80
	case LegendProbability:
		return 100
	}
	return 0
}

// pixelBBox bounds the scaled base circles and loop arcs.
func (r *svgRenderer) pixelBBox(l *layout.Layout) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	extent := r.baseRadius + r.baseStrokeWidth/2
	for _, p := range l.Positions {
		x, y := r.px(p)
		minX = math.Min(minX, x-extent)
		minY = math.Min(minY, y-extent)
		maxX = math.Max(maxX, x+extent)
		maxY = math.Max(maxY, y+extent)
	}

	for _, seg := range l.Outline {
		if seg.Kind != layout.SegmentArc {
			continue
		}
		cx, cy := r.px(seg.Center)
		rad := seg.Radius * r.scale
		minX = math.Min(minX, cx-rad)
		minY = math.Min(minY, cy-rad)
		maxX = math.Max(maxX, cx+rad)
		maxY = math.Max(maxY, cy+rad)
	}

	return minX, minY, maxX, maxY
}

func (r *svgRenderer) renderPairBonds(buf *bytes.Buffer, l *layout.Layout) {
	for _, b := range l.PairBonds {
		x1, y1 := r.px(l.Positions[b[0]])
		x2, y2 := r.px(l.Positions[b[1]])
		fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-linecap="round" stroke-width="%g" stroke="%s" />`,
			x1, y1, x2, y2, r.pairWidth, r.pairColor)
	}
}

func (r *svgRenderer) renderBackbone(buf *bytes.Buffer, l *layout.Layout) {
	for _, seg := range l.Outline {
		switch seg.Kind {
		case layout.SegmentLine:
			x1, y1 := r.px(l.Positions[seg.From])
			x2, y2 := r.px(l.Positions[seg.To])
			if (x2-x1)*(x2-x1)+(y2-y1)*(y2-y1) < 0.01 {
				continue
			}
			fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-linecap="round" stroke-width="%g" stroke="%s" />`,
				x1, y1, x2, y2, r.backboneWidth, r.backboneColor)

		case layout.SegmentArc:
			r.renderArc(buf, l, seg)
		}
	}
}

// renderArc draws one clockwise loop arc between consecutive nucleotides.
func (r *svgRenderer) renderArc(buf *bytes.Buffer, l *layout.Layout, seg layout.OutlineSegment) {
	sx, sy := r.px(l.Positions[seg.From])
	ex, ey := r.px(l.Positions[seg.To])
	rad := seg.Radius * r.scale

	from := l.Positions[seg.From].Sub(seg.Center)
	to := l.Positions[seg.To].Sub(seg.Center)
	delta := normalizeAngle(math.Atan2(to.Y, to.X) - math.Atan2(from.Y, from.X))
	if math.Abs(delta) < 1e-12 {
		return
	}

	largeArc := 0
	if math.Abs(delta) > math.Pi {
		largeArc = 1
	}
	// Clockwise in the y-up frame maps to sweep=1 after the y flip.
	sweep := 1
	if delta > 0 {
		sweep = 0
	}

	fmt.Fprintf(buf, `<path d="M%.2f %.2f A%.2f %.2f 0 %d %d %.2f %.2f" fill="none" stroke-linejoin="round" stroke-linecap="round" stroke-width="%g" stroke="%s" />`,
		sx, sy, rad, rad, largeArc, sweep, ex, ey, r.backboneWidth, r.backboneColor)
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func (r *svgRenderer) renderArrow(buf *bytes.Buffer, l *layout.Layout) {
	if len(l.Positions) < 2 {
		return
	}
	x1, y1 := r.px(l.Arrow.Anchor)
	tip := l.Arrow.Anchor.Add(l.Arrow.Direction.Scale(layout.BackboneSpacing))
	x2, y2 := r.px(tip)
	fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-linecap="round" stroke-width="%g" stroke="%s" marker-end="url(#arrow)" />`,
		x1, y1, x2, y2, r.backboneWidth, r.backboneColor)
}

func (r *svgRenderer) renderBaseMarkers(buf *bytes.Buffer, l *layout.Layout) {
	for i, p := range l.Positions {
		cx, cy := r.px(p)
		fill := r.baseFill
		if i < len(r.fills) && r.fills[i] != "" {
			fill = r.fills[i]
		}
		fmt.Fprintf(buf, `<circle r="%g" cx="%.2f" cy="%.2f" fill="%s" stroke-width="%g" stroke="%s" />`,
			r.baseRadius, cx, cy, fill, r.baseStrokeWidth, fill)
	}
}

func (r *svgRenderer) renderLabels(buf *bytes.Buffer, l *layout.Layout) {
	for i, p := range l.Positions {
		if i >= len(r.sequence) {
			break
		}
		tx, ty := r.px(p)
		fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" font-size="%g" text-anchor="middle" dominant-baseline="central" class="nt">%c</text>`,
			tx, ty, r.fontSize, r.sequence[i])
	}
}

func (r *svgRenderer) renderLegend(buf *bytes.Buffer, x, vbY, vbH float64) {
	switch r.legend {
	case LegendNucleotide:
		r.renderNucleotideLegend(buf, x, vbY, vbH)
	case LegendProbability:
		r.renderProbabilityLegend(buf, x, vbY, vbH)
	}
}

func (r *svgRenderer) renderNucleotideLegend(buf *bytes.Buffer, x, vbY, vbH float64) {
	rows := []struct {
		label string
		color string
	}{
		{"A", r.palette.A},
		{"C", r.palette.C},
		{"G", r.palette.G},
		{"U", r.palette.U},
	}

	rad := r.baseRadius
	rowHeight := rad*2 + 8
	totalH := rowHeight * float64(len(rows))
	startY := vbY + (vbH-totalH)/2
	cx := x + 10 + rad

	for i, row := range rows {
		cy := startY + float64(i)*rowHeight + rad
		fmt.Fprintf(buf, `<circle r="%g" cx="%.2f" cy="%.2f" fill="%s" stroke-width="%g" stroke="%s" />`,
			rad, cx, cy, row.color, r.baseStrokeWidth, row.color)
		fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" font-family="sans-serif" font-size="14" dominant-baseline="central">%s</text>`,
			cx+rad+8, cy, row.label)
	}
}

func (r *svgRenderer) renderProbabilityLegend(buf *bytes.Buffer, x, vbY, vbH float64) {
	barW := 20.0
	barH := vbH * 0.6
	barX := x + 10
	barY := vbY + (vbH-barH)/2

	stops := style.GradientStops()
	buf.WriteString(`<defs><linearGradient id="prob-grad" x1="0" y1="0" x2="0" y2="1">`)
	for i := len(stops) - 1; i >= 0; i-- {
		offset := float64(len(stops)-1-i) / float64(len(stops)-1) * 100
		fmt.Fprintf(buf, `<stop offset="%.1f%%" stop-color="%s"/>`, offset, stops[i])
	}
	buf.WriteString(`</linearGradient></defs>`)

	fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%g" height="%.2f" fill="url(#prob-grad)" stroke="none"/>`,
		barX, barY, barW, barH)

	textX := barX + barW + 5
	for i := 0; i <= 10; i++ {
		val := float64(i) / 10
		ty := barY + barH*(1-val)
		fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" font-family="sans-serif" font-size="12" dominant-baseline="central">%.1f</text>`,
			textX, ty, val)
	}

	labelX := textX + 35
	labelY := barY + barH/2
	fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" font-family="sans-serif" font-size="12" text-anchor="middle" dominant-baseline="central" transform="rotate(90,%.2f,%.2f)">Pairing probability</text>`,
		labelX, labelY, labelX, labelY)
}
