package sink

import (
	"bytes"
	"strconv"

	"github.com/strandlab/rnaplot/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	outline bool
}

// WithOutline includes the backbone outline manifest (line and arc
// segments) in the JSON output for downstream path tracing.
func WithOutline() JSONOption { return func(r *jsonRenderer) { r.outline = true } }

// RenderJSON exports the layout as the stable coordinate manifest:
//
//	{
//	  "positions": [[x, y], ...],
//	  "pairs":     [[i, j], ...],
//	  "backbone":  [[i, j], ...],
//	  "arrow":     {"x": _, "y": _, "dx": _, "dy": _},
//	  "bounds":    {"min_x": _, "min_y": _, "max_x": _, "max_y": _}
//	}
//
// Numbers are serialized with six decimal digits. The document is built
// by hand rather than through encoding/json so that identical layouts
// produce byte-identical output.
func RenderJSON(l *layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	buf.WriteString(`{"positions":[`)
	for i, p := range l.Positions {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('[')
		writeFloat(&buf, p.X)
		buf.WriteByte(',')
		writeFloat(&buf, p.Y)
		buf.WriteByte(']')
	}

	buf.WriteString(`],"pairs":[`)
	writeIndexPairs(&buf, l.PairBonds)

	buf.WriteString(`],"backbone":[`)
	writeIndexPairs(&buf, l.BackboneSegments)

	buf.WriteString(`],"arrow":{"x":`)
	writeFloat(&buf, l.Arrow.Anchor.X)
	buf.WriteString(`,"y":`)
	writeFloat(&buf, l.Arrow.Anchor.Y)
	buf.WriteString(`,"dx":`)
	writeFloat(&buf, l.Arrow.Direction.X)
	buf.WriteString(`,"dy":`)
	writeFloat(&buf, l.Arrow.Direction.Y)

	buf.WriteString(`},"bounds":{"min_x":`)
	writeFloat(&buf, l.Bounds.MinX)
	buf.WriteString(`,"min_y":`)
	writeFloat(&buf, l.Bounds.MinY)
	buf.WriteString(`,"max_x":`)
	writeFloat(&buf, l.Bounds.MaxX)
	buf.WriteString(`,"max_y":`)
	writeFloat(&buf, l.Bounds.MaxY)
	buf.WriteByte('}')

	if r.outline {
		buf.WriteString(`,"outline":[`)
		for i, seg := range l.Outline {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeOutlineSegment(&buf, seg)
		}
		buf.WriteByte(']')
	}

	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func writeFloat(buf *bytes.Buffer, f float64) {
	buf.WriteString(strconv.FormatFloat(f, 'f', 6, 64))
}

func writeIndexPairs(buf *bytes.Buffer, pairs [][2]int) {
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('[')
		buf.WriteString(strconv.Itoa(p[0]))
		buf.WriteByte(',')
		buf.WriteString(strconv.Itoa(p[1]))
		buf.WriteByte(']')
	}
}

func writeOutlineSegment(buf *bytes.Buffer, seg layout.OutlineSegment) {
	buf.WriteString(`{"from":`)
	buf.WriteString(strconv.Itoa(seg.From))
	buf.WriteString(`,"to":`)
	buf.WriteString(strconv.Itoa(seg.To))
	if seg.Kind == layout.SegmentArc {
		buf.WriteString(`,"kind":"arc","cx":`)
		writeFloat(buf, seg.Center.X)
		buf.WriteString(`,"cy":`)
		writeFloat(buf, seg.Center.Y)
		buf.WriteString(`,"r":`)
		writeFloat(buf, seg.Radius)
	} else {
		buf.WriteString(`,"kind":"line"`)
	}
	buf.WriteByte('}')
}
