// Package style resolves per-nucleotide fill colors for rendering.
//
// Three coloring sources exist, in priority order: pairing-probability
// gradient colors, explicit per-base overrides, and nucleotide identity
// colors from a [Palette]. Anything unresolved falls back to the uniform
// base fill.
//
//	fills, err := style.Fills(n, style.Options{
//		Sequence: "GGGAAACCC",
//		Palette:  &style.DefaultPalette,
//	})
//
// The probability gradient is a fixed eleven-stop colormap from dark
// purple (p = 0) through blue, green, yellow and orange to dark red
// (p = 1), interpolated linearly between stops.
package style
