package structure

// ElementKind classifies one perimeter element of a loop.
type ElementKind uint8

const (
	// ElemUnpaired is an unpaired nucleotide on the loop perimeter.
	ElemUnpaired ElementKind = iota
	// ElemStem is a child stem anchored on the loop by its closing pair.
	ElemStem
	// ElemBreak is a strand-break marker between two perimeter elements.
	// It is not a visual element; it removes the backbone edge between
	// its neighbors.
	ElemBreak
)

// Element is one entry in a loop's cyclic perimeter sequence, in 5'→3'
// order.
type Element struct {
	Kind ElementKind
	// Index is the nucleotide index for ElemUnpaired.
	Index int
	// Stem is the stem arena index for ElemStem.
	Stem int
}

// Stem is a run of consecutively stacked base pairs. Pairs are ordered
// outermost first: Pairs[0] is the closing pair anchored on the parent
// loop, Pairs[len-1] encloses the child loop.
type Stem struct {
	// Pairs holds (i, j) with i < j for each rung.
	Pairs [][2]int
	// Loop is the arena index of the loop this stem closes.
	Loop int
	// Parent is the arena index of the loop this stem hangs off.
	Parent int
}

// Loop is the region enclosed by a stem's innermost pair, or the whole
// molecule for the exterior loop.
type Loop struct {
	// Parent is the arena index of the closing stem, or -1 for the
	// exterior loop.
	Parent int
	// Elements is the perimeter sequence in 5'→3' order, excluding the
	// parent pair itself.
	Elements []Element
}

// Tree is an arena-allocated structure tree. Stems and loops live in two
// contiguous slices; all cross references are arena indices. Loops[0] is
// always the exterior loop.
type Tree struct {
	Stems []Stem
	Loops []Loop
}

// Exterior returns the exterior loop.
func (t *Tree) Exterior() *Loop {
	return &t.Loops[0]
}

// IsHairpin reports whether the loop has no child stems.
func (l *Loop) IsHairpin() bool {
	for _, e := range l.Elements {
		if e.Kind == ElemStem {
			return false
		}
	}
	return true
}

// Unpaired counts the unpaired nucleotides on the loop perimeter.
func (l *Loop) Unpaired() int {
	n := 0
	for _, e := range l.Elements {
		if e.Kind == ElemUnpaired {
			n++
		}
	}
	return n
}

// Children counts the child stems anchored on the loop.
func (l *Loop) Children() int {
	n := 0
	for _, e := range l.Elements {
		if e.Kind == ElemStem {
			n++
		}
	}
	return n
}

// Len returns the number of pair rungs in the stem.
func (s *Stem) Len() int {
	return len(s.Pairs)
}

// Closing returns the outermost pair of the stem, the one anchored on the
// parent loop.
func (s *Stem) Closing() (int, int) {
	return s.Pairs[0][0], s.Pairs[0][1]
}

// Inner returns the innermost pair of the stem, the one enclosing its
// child loop.
func (s *Stem) Inner() (int, int) {
	last := s.Pairs[len(s.Pairs)-1]
	return last[0], last[1]
}
