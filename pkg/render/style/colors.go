package style

import (
	"fmt"

	"github.com/strandlab/rnaplot/pkg/errors"
)

// DefaultBaseFill is the uniform fill used when no other coloring source
// resolves.
const DefaultBaseFill = "#900c00"

// Palette maps nucleotide identities to fill colors. U covers both U and T.
type Palette struct {
	A string
	U string
	G string
	C string
}

// DefaultPalette is the standard nucleotide coloring.
var DefaultPalette = Palette{
	A: "#388E3C",
	U: "#D32F2F",
	G: "#212121",
	C: "#1976D2",
}

// Lookup returns the palette color for a nucleotide character, or fallback
// for anything outside AUTGC (case-insensitive).
func (p Palette) Lookup(base byte, fallback string) string {
	switch base {
	case 'A', 'a':
		return p.A
	case 'U', 'u', 'T', 't':
		return p.U
	case 'G', 'g':
		return p.G
	case 'C', 'c':
		return p.C
	}
	return fallback
}

// probColormap holds eleven RGB stops evenly spaced over [0, 1].
var probColormap = [11][3]float64{
	{0.19, 0.03, 0.33},
	{0.28, 0.14, 0.54},
	{0.28, 0.30, 0.69},
	{0.17, 0.49, 0.72},
	{0.12, 0.62, 0.64},
	{0.30, 0.73, 0.40},
	{0.56, 0.80, 0.22},
	{0.80, 0.80, 0.11},
	{0.96, 0.65, 0.11},
	{0.89, 0.40, 0.10},
	{0.55, 0.01, 0.01},
}

// ProbabilityColor maps a pairing probability to an #rrggbb color on the
// gradient. Values outside [0, 1] are clamped.
func ProbabilityColor(p float64) string {
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}

	t := p * 10
	i := int(t)
	if i > 9 {
		i = 9
	}
	frac := t - float64(i)

	lo, hi := probColormap[i], probColormap[i+1]
	r := uint8((lo[0] + (hi[0]-lo[0])*frac) * 255)
	g := uint8((lo[1] + (hi[1]-lo[1])*frac) * 255)
	b := uint8((lo[2] + (hi[2]-lo[2])*frac) * 255)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// GradientStops returns the colormap stops as #rrggbb strings in ascending
// probability order, for building legend gradients.
func GradientStops() []string {
	stops := make([]string, len(probColormap))
	for i, c := range probColormap {
		stops[i] = fmt.Sprintf("#%02x%02x%02x",
			uint8(c[0]*255), uint8(c[1]*255), uint8(c[2]*255))
	}
	return stops
}

// Options selects the coloring sources for [Fills].
type Options struct {
	// Sequence enables nucleotide identity coloring when Palette is set.
	// Must be empty or exactly n characters.
	Sequence string
	// Palette is the nucleotide color map; nil disables identity coloring.
	Palette *Palette
	// PerBase overrides the color of individual nucleotides. Entries
	// beyond its length fall through to the next source.
	PerBase []string
	// Probabilities colors every nucleotide on the gradient. Takes
	// priority over PerBase. Must be nil or exactly n values in [0, 1].
	Probabilities []float64
	// BaseFill replaces DefaultBaseFill as the uniform fallback.
	BaseFill string
}

// Fills resolves one fill color per nucleotide. Priority per index:
// probability gradient, per-base override, palette lookup, base fill.
func Fills(n int, opts Options) ([]string, error) {
	if err := errors.ValidateSequence(opts.Sequence, n); err != nil {
		return nil, err
	}
	if err := errors.ValidateProbabilities(opts.Probabilities, n); err != nil {
		return nil, err
	}

	baseFill := opts.BaseFill
	if baseFill == "" {
		baseFill = DefaultBaseFill
	}

	fills := make([]string, n)
	for i := range fills {
		switch {
		case opts.Probabilities != nil:
			fills[i] = ProbabilityColor(opts.Probabilities[i])
		case i < len(opts.PerBase) && opts.PerBase[i] != "":
			fills[i] = opts.PerBase[i]
		case opts.Palette != nil && opts.Sequence != "":
			fills[i] = opts.Palette.Lookup(opts.Sequence[i], baseFill)
		default:
			fills[i] = baseFill
		}
	}
	return fills, nil
}
