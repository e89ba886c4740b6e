package pipeline

import (
	"context"
	"time"

	"github.com/strandlab/rnaplot/pkg/errors"
	"github.com/strandlab/rnaplot/pkg/layout"
	"github.com/strandlab/rnaplot/pkg/observability"
	"github.com/strandlab/rnaplot/pkg/render/sink"
	"github.com/strandlab/rnaplot/pkg/render/style"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(l, opts)

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(l *layout.Layout, opts Options) (map[string][]byte, error) {
	fills, err := buildFills(len(l.Positions), opts)
	if err != nil {
		return nil, err
	}
	svgOpts := buildSVGOptions(fills, opts)

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, opts.PNGScale, svgOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(l, svgOpts...)
		case FormatJSON:
			var jsonOpts []sink.JSONOption
			if opts.Outline {
				jsonOpts = append(jsonOpts, sink.WithOutline())
			}
			data, err = sink.RenderJSON(l, jsonOpts...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildFills resolves per-base colors. A nil slice means every base uses
// the uniform default fill.
func buildFills(n int, opts Options) ([]string, error) {
	if len(opts.Probabilities) == 0 && len(opts.Colors) == 0 && !opts.Palette {
		return nil, nil
	}

	styleOpts := style.Options{
		PerBase:       opts.Colors,
		Probabilities: opts.Probabilities,
	}
	if opts.Palette {
		styleOpts.Sequence = opts.Sequence
		styleOpts.Palette = &style.DefaultPalette
	}
	return style.Fills(n, styleOpts)
}

// buildSVGOptions translates pipeline options into sink options.
func buildSVGOptions(fills []string, opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption

	if opts.Scale > 0 {
		svgOpts = append(svgOpts, sink.WithScale(opts.Scale))
	}
	if fills != nil {
		svgOpts = append(svgOpts, sink.WithFills(fills))
	}
	if opts.Labels && opts.Sequence != "" {
		svgOpts = append(svgOpts, sink.WithLabels(opts.Sequence))
	}
	if opts.NoArrows {
		svgOpts = append(svgOpts, sink.WithoutArrow())
	}

	switch opts.Legend {
	case LegendNucleotide:
		svgOpts = append(svgOpts, sink.WithLegend(sink.LegendNucleotide))
	case LegendProbability:
		svgOpts = append(svgOpts, sink.WithLegend(sink.LegendProbability))
	}

	return svgOpts
}
