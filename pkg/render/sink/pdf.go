package sink

import (
	"github.com/strandlab/rnaplot/pkg/layout"
	"github.com/strandlab/rnaplot/pkg/render"
)

// RenderPDF renders the layout to PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(l *layout.Layout, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(l, opts...))
}
