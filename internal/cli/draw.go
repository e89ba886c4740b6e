package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strandlab/rnaplot/pkg/pipeline"
)

const defaultOutputBase = "rna"

// drawOpts holds the command-line flags for the draw command.
// These options control coloring, layout, and output formats.
type drawOpts struct {
	output    string // output file path (or base path for multiple formats)
	formats   []string
	sequence  string // nucleotide sequence aligned with the structure
	probsStr  string // comma-separated base-pair probabilities
	colorBy   string // base coloring: "nucleotide", "probability", "none"
	legend    string // legend panel: "nucleotide", "probability", ""
	labels    bool   // draw sequence letters on bases
	noArrows  bool   // hide the 3' end arrow
	noAlign   bool   // skip exterior alignment rotation
	outline   bool   // include outline segments in JSON output
	scale     float64
	pngScale  float64
	refresh   bool // bypass cached layouts and artifacts
	watch     bool // interactive live preview
}

// Base coloring modes for --color-by.
const (
	colorByNucleotide  = "nucleotide"
	colorByProbability = "probability"
	colorByNone        = "none"
)

// newDrawCmd creates the draw command for rendering structures.
// It accepts a dot-bracket string and writes SVG, PNG, PDF, or JSON
// artifacts.
//
// Default settings:
//   - format: svg
//   - output: rna.<format> (or "-" for stdout)
//   - color-by: none (uniform fill)
func newDrawCmd() *cobra.Command {
	var formatsStr string
	opts := drawOpts{
		colorBy: colorByNone,
	}

	cmd := &cobra.Command{
		Use:   "draw STRUCTURE",
		Short: "Draw a structure from dot-bracket notation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := settingsFromContext(cmd.Context()).config
			opts.formats = parseFormats(formatsStr, cfg)
			pipeOpts, err := buildPipelineOptions(args[0], &opts, cfg)
			if err != nil {
				return err
			}
			if opts.watch {
				return runWatch(cmd.Context(), pipeOpts, &opts)
			}
			return runDraw(cmd.Context(), pipeOpts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple), '-' for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&opts.sequence, "sequence", "s", "", "nucleotide sequence, same length as the structure")
	cmd.Flags().StringVarP(&opts.probsStr, "probabilities", "p", "", "per-base pairing probabilities in [0,1] (comma-separated)")
	cmd.Flags().StringVar(&opts.colorBy, "color-by", opts.colorBy, "base coloring: nucleotide, probability, none")
	cmd.Flags().StringVar(&opts.legend, "legend", "", "legend panel: nucleotide, probability")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw sequence letters on bases")
	cmd.Flags().BoolVar(&opts.noArrows, "no-arrows", false, "hide the 3' end arrow")
	cmd.Flags().BoolVar(&opts.noAlign, "no-align", false, "skip exterior strand alignment")
	cmd.Flags().BoolVar(&opts.outline, "outline", false, "include the backbone outline in JSON output")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "pixels per layout unit")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", 0, "raster scale factor for PNG output")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "interactive live preview, re-rendering on edits")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// An empty flag falls back to the config file, then to SVG.
func parseFormats(s string, cfg *Config) []string {
	if s == "" {
		if cfg.Render.Format != "" {
			return []string{cfg.Render.Format}
		}
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// parseProbabilities parses a comma-separated probability list.
func parseProbabilities(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	probs := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid probability %q", f)
		}
		probs[i] = v
	}
	return probs, nil
}

// buildPipelineOptions translates CLI flags into pipeline options,
// applying config file defaults for values left unset.
func buildPipelineOptions(structure string, o *drawOpts, cfg *Config) (pipeline.Options, error) {
	probs, err := parseProbabilities(o.probsStr)
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Structure:     structure,
		Sequence:      o.sequence,
		Probabilities: probs,
		NoAlign:       o.noAlign,
		Formats:       o.formats,
		Labels:        o.labels,
		Legend:        o.legend,
		NoArrows:      o.noArrows,
		Outline:       o.outline,
		Scale:         o.scale,
		PNGScale:      o.pngScale,
		Refresh:       o.refresh,
	}
	if opts.Legend == "" {
		opts.Legend = cfg.Render.Legend
	}
	if opts.Scale == 0 {
		opts.Scale = cfg.Render.Scale
	}

	switch o.colorBy {
	case colorByNucleotide:
		if o.sequence == "" {
			return pipeline.Options{}, fmt.Errorf("--color-by nucleotide requires --sequence")
		}
		opts.Palette = true
	case colorByProbability:
		if len(probs) == 0 {
			return pipeline.Options{}, fmt.Errorf("--color-by probability requires --probabilities")
		}
	case colorByNone, "":
		if len(probs) > 0 {
			printWarning("probabilities are ignored without --color-by probability")
		}
		opts.Probabilities = nil
		if o.legend == "" {
			opts.Legend = ""
		}
	default:
		return pipeline.Options{}, fmt.Errorf("unknown color mode: %s (must be 'nucleotide', 'probability', or 'none')", o.colorBy)
	}

	return opts, nil
}

// runDraw executes the pipeline once and writes the requested
// artifacts.
func runDraw(ctx context.Context, opts pipeline.Options, o *drawOpts) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	runner, err := newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(opts.Formats)))

	quiet := settingsFromContext(ctx).quiet
	if !quiet {
		printStats(result.Stats.Nucleotides, result.Stats.Pairs, result.Parsed.Strands(), result.CacheInfo.RenderHit)
	}

	if o.output == "-" {
		for _, format := range opts.Formats {
			if _, err := os.Stdout.Write(result.Artifacts[format]); err != nil {
				return err
			}
		}
		return nil
	}

	base := basePath(o.output)
	for _, format := range opts.Formats {
		path := o.output
		if path == "" || len(opts.Formats) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debugf("Generated %s: %d bytes", format, len(result.Artifacts[format]))
		if !quiet {
			printFile(path)
		}
	}
	return nil
}

// basePath derives the base output path from the --output flag.
// A known format extension (.svg, .png, ...) is stripped so that
// multiple formats land next to each other.
func basePath(output string) string {
	if output == "" {
		return defaultOutputBase
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
