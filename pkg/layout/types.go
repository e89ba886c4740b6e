package layout

// Bounds is a tight axis-aligned bounding box expanded by BoundsMargin.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal span of the bounds.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical span of the bounds.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Arrow marks the 3' end of the molecule.
type Arrow struct {
	Anchor    Vec2 `json:"anchor"`
	Direction Vec2 `json:"direction"`
}

// SegmentKind distinguishes straight and circular outline pieces.
type SegmentKind uint8

const (
	// SegmentLine is a straight backbone piece.
	SegmentLine SegmentKind = iota
	// SegmentArc follows a loop circle.
	SegmentArc
)

// OutlineSegment is one backbone piece of the strand outline, connecting
// nucleotide From to From+1. Arc segments carry the loop circle they
// follow; the sweep is always clockwise in the y-up frame.
type OutlineSegment struct {
	From   int
	To     int
	Kind   SegmentKind
	Center Vec2
	Radius float64
}

// Layout is the computed embedding of a structure.
type Layout struct {
	// Positions holds one point per nucleotide index.
	Positions []Vec2
	// PairBonds holds one (i, j) segment per base pair, sorted by i.
	PairBonds [][2]int
	// BackboneSegments connects consecutive nucleotides, omitting pairs
	// separated by a strand break.
	BackboneSegments [][2]int
	// Outline traces the backbone as lines and loop arcs.
	Outline []OutlineSegment
	// Arrow marks the 3' end.
	Arrow Arrow
	// Bounds is the padded bounding box of all positions.
	Bounds Bounds
}
