// Package pipeline provides the core drawing pipeline for rnaplot.
//
// This package implements the complete parse → layout → render pipeline that
// can be used by CLI and server components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Tokenize the dot-bracket string and build the structure tree
//  2. Layout: Compute 2D coordinates for every nucleotide
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Structure: "(((...)))",
//	    Sequence:  "GGGAAACCC",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Parse only
//	p, err := runner.Parse(ctx, opts)
//
//	// Layout with an existing structure
//	l, err := runner.ComputeLayout(ctx, p, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/strandlab/rnaplot/pkg/cache"
	"github.com/strandlab/rnaplot/pkg/errors"
	"github.com/strandlab/rnaplot/pkg/layout"
	"github.com/strandlab/rnaplot/pkg/structure"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Legend constants for the SVG legend panel.
const (
	LegendNucleotide  = "nucleotide"
	LegendProbability = "probability"
)

// ValidLegends is the set of supported legend panels. The empty string
// disables the legend.
var ValidLegends = map[string]bool{
	"":                true,
	LegendNucleotide:  true,
	LegendProbability: true,
}

// DefaultPNGScale is the default raster scale factor for PNG output.
const DefaultPNGScale = 2.0

// Options contains all configuration for the drawing pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Structure     string    `json:"structure"`
	Sequence      string    `json:"sequence,omitempty"`
	Probabilities []float64 `json:"probabilities,omitempty"`
	Colors        []string  `json:"colors,omitempty"` // per-base fill overrides

	// Layout options
	NoAlign bool `json:"no_align,omitempty"` // skip exterior alignment rotation

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Palette  bool     `json:"palette,omitempty"` // color bases by nucleotide letter
	Labels   bool     `json:"labels,omitempty"`  // draw sequence letters on bases
	Legend   string   `json:"legend,omitempty"`
	NoArrows bool     `json:"no_arrows,omitempty"` // hide the 3' end arrow
	Outline  bool     `json:"outline,omitempty"` // include outline segments in JSON
	Scale    float64  `json:"scale,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Parsed is the structure tree built from the dot-bracket string.
	Parsed *structure.Parsed

	// Layout contains the computed coordinates.
	Layout *layout.Layout

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Nucleotides int
	Pairs       int
	ParseTime   time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage. Parsing is never
// cached; it is cheaper than a cache round trip.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLegend checks that a legend name is valid.
func ValidateLegend(legend string) error {
	if !ValidLegends[legend] {
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown legend %q (want nucleotide or probability)", legend)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Structure == "" {
		return errors.New(errors.ErrCodeEmptyStructure, "structure is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering. Format names are
// folded to lower case so "SVG" and "svg" share one artifact key.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(f)
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateLegend(o.Legend)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Align: !o.NoAlign,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Sequence: o.Sequence,
		Probs:    o.Probabilities,
		Colors:   o.Colors,
		Palette:  o.Palette,
		Labels:   o.Labels,
		Legend:   o.Legend,
		NoArrows: o.NoArrows,
		Outline:  o.Outline,
		Scale:    o.Scale,
		PNGScale: o.PNGScale,
	}
}
