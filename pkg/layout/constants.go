package layout

// Geometry constants. These are part of the output contract: changing any
// of them changes every coordinate this package produces.
const (
	// BackboneSpacing is the distance between consecutive nucleotides
	// along the backbone and between stacked pairs in a stem.
	BackboneSpacing = 1.0

	// PairSpacing is the distance between the two members of a base pair,
	// the width of a stem.
	PairSpacing = 1.0

	// MinSeparation is the smallest pairwise distance a valid layout
	// keeps between distinct nucleotides.
	MinSeparation = 0.5 * BackboneSpacing

	// BoundsMargin pads the bounding box on every side.
	BoundsMargin = 2 * BackboneSpacing

	// bisectTol is the interval width at which the radius bisection stops.
	bisectTol = 1e-9

	// bisectMaxIter caps the bisection iteration count.
	bisectMaxIter = 100
)
