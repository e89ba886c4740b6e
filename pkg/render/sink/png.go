package sink

import (
	"github.com/strandlab/rnaplot/pkg/layout"
	"github.com/strandlab/rnaplot/pkg/render"
)

// DefaultPNGScale is the default raster scale factor for PNG export.
const DefaultPNGScale = 2.0

// RenderPNG renders the layout to PNG via SVG conversion. A scale of 2.0
// produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(l *layout.Layout, scale float64, opts ...SVGOption) ([]byte, error) {
	return render.ToPNG(RenderSVG(l, opts...), scale)
}
