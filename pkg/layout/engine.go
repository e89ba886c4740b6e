package layout

import (
	"math"

	"github.com/strandlab/rnaplot/pkg/errors"
	"github.com/strandlab/rnaplot/pkg/structure"
)

// Option configures Build.
type Option func(*builder)

// WithAlignment toggles the final rigid rotation that puts the primary
// stem vertical. Enabled by default; disabling it leaves the drawing in
// the raw placement frame.
func WithAlignment(on bool) Option {
	return func(b *builder) { b.align = on }
}

// Build computes the 2D embedding of a parsed structure. It is pure and
// deterministic: the same input yields bit-identical coordinates.
func Build(p *structure.Parsed, opts ...Option) (*Layout, error) {
	b := &builder{p: p, align: true}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.checkInvariants(); err != nil {
		return nil, err
	}

	b.pos = make([]Vec2, p.N)
	b.frames = make([]Frame, len(p.Tree.Stems))
	b.arcs = make(map[int]OutlineSegment)

	// Depth-first placement with an explicit work stack.
	stack, err := b.placeExterior()
	if err != nil {
		return nil, err
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		children, err := b.placeStem(it.stem, it.frame)
		if err != nil {
			return nil, err
		}
		stack = append(stack, children...)
	}

	if err := b.verifyStraightRuns(); err != nil {
		return nil, err
	}

	l := &Layout{Positions: b.pos}
	if b.align {
		b.rotateToPrimary()
	}
	l.PairBonds = b.pairBonds()
	l.BackboneSegments = b.backboneSegments()
	l.Outline = b.outline()
	l.Arrow = b.arrow()
	l.Bounds = boundsOf(b.pos)
	return l, nil
}

// workItem is one pending stem placement.
type workItem struct {
	stem  int
	frame Frame
}

type builder struct {
	p      *structure.Parsed
	pos    []Vec2
	frames []Frame
	arcs   map[int]OutlineSegment
	align  bool
}

// checkInvariants asserts the structural preconditions of the engine:
// positive N, a symmetric pair map, and proper nesting.
func (b *builder) checkInvariants() error {
	p := b.p
	if p.N <= 0 || len(p.Pairs) != p.N {
		return errors.New(errors.ErrCodeInternal, "pair map has length %d for %d nucleotides", len(p.Pairs), p.N)
	}

	for i, j := range p.Pairs {
		if j < 0 {
			continue
		}
		if j >= p.N || j == i || p.Pairs[j] != i {
			return errors.New(errors.ErrCodeInternal, "pair map is not symmetric at index %d", i)
		}
	}

	var open []int
	for i, j := range p.Pairs {
		switch {
		case j > i:
			open = append(open, j)
		case j >= 0 && j < i:
			if len(open) == 0 || open[len(open)-1] != i {
				return errors.New(errors.ErrCodeInternal, "pair map is not properly nested at index %d", i)
			}
			open = open[:len(open)-1]
		}
	}
	return nil
}

// placeStem places the rigid rectangle of a stem from its base frame and
// then lays out the loop it closes. It returns the child stems discovered
// on that loop.
func (b *builder) placeStem(stemID int, frame Frame) ([]workItem, error) {
	s := &b.p.Tree.Stems[stemID]
	b.frames[stemID] = frame

	half := frame.Right.Scale(PairSpacing / 2)
	for m, pr := range s.Pairs {
		base := frame.Origin.Add(frame.Forward.Scale(float64(m) * BackboneSpacing))
		b.pos[pr[0]] = base.Sub(half)
		b.pos[pr[1]] = base.Add(half)
	}

	tip := frameAt(frame.Origin.Add(frame.Forward.Scale(float64(s.Len()-1)*BackboneSpacing)), frame.Forward)
	return b.placeLoop(s.Loop, tip)
}

// anchor is one perimeter point of a loop: an unpaired nucleotide or one
// end of a stem's closing pair.
type anchor struct {
	index int
	stem  int // stem arena index, or -1 for unpaired
	first bool
}

// loopAnchors flattens a loop's elements into perimeter anchors, skipping
// strand-break markers (breaks change connectivity, not geometry).
func loopAnchors(t *structure.Tree, l *structure.Loop) []anchor {
	var anchors []anchor
	for _, e := range l.Elements {
		switch e.Kind {
		case structure.ElemUnpaired:
			anchors = append(anchors, anchor{index: e.Index, stem: -1})
		case structure.ElemStem:
			i, j := t.Stems[e.Stem].Closing()
			anchors = append(anchors, anchor{index: i, stem: e.Stem, first: true})
			anchors = append(anchors, anchor{index: j, stem: e.Stem})
		}
	}
	return anchors
}

// cyclicEdges computes the chord length between each pair of consecutive
// anchors: PairSpacing across a stem's closing pair, BackboneSpacing
// otherwise.
func cyclicEdges(anchors []anchor) []float64 {
	edges := make([]float64, len(anchors))
	for t := range anchors {
		a, next := anchors[t], anchors[(t+1)%len(anchors)]
		if a.stem >= 0 && a.stem == next.stem {
			edges[t] = PairSpacing
		} else {
			edges[t] = BackboneSpacing
		}
	}
	return edges
}

// placeLoop lays out the loop closed by a stem whose tip frame is given.
// The parent pair's endpoints are already placed; the circle center sits
// on the stem axis so they land on the circle exactly.
func (b *builder) placeLoop(loopID int, tip Frame) ([]workItem, error) {
	l := &b.p.Tree.Loops[loopID]
	parent := &b.p.Tree.Stems[l.Parent]
	pi, pj := parent.Inner()

	inner := loopAnchors(b.p.Tree, l)
	if len(inner) == 0 {
		// Zero-loop hairpin: nothing to place beyond the stem tip.
		return nil, nil
	}

	anchors := make([]anchor, 0, len(inner)+2)
	anchors = append(anchors, anchor{index: pi, stem: l.Parent, first: true})
	anchors = append(anchors, inner...)
	anchors = append(anchors, anchor{index: pj, stem: l.Parent})

	edges := cyclicEdges(anchors)
	r, err := circleRadius(edges)
	if err != nil {
		return nil, err
	}

	d := math.Sqrt(r*r - (PairSpacing/2)*(PairSpacing/2))
	center := tip.Origin.Add(tip.Forward.Scale(d))

	start := b.pos[pi].Sub(center)
	angles := sweepAngles(math.Atan2(start.Y, start.X), edges, r)

	children := b.placeAnchors(anchors, angles, center, r, 1, len(anchors)-1)
	b.recordArcs(anchors, center, r)
	return children, nil
}

// placeExterior lays out the exterior loop: a horizontal line when it has
// at most two child stems, a circle otherwise.
func (b *builder) placeExterior() ([]workItem, error) {
	ext := b.p.Tree.Exterior()
	if ext.Children() <= 2 {
		return b.placeExteriorLine(ext), nil
	}
	return b.placeExteriorCircle(ext)
}

// placeExteriorLine unrolls the exterior loop along the x axis. Child
// stems point straight up.
func (b *builder) placeExteriorLine(ext *structure.Loop) []workItem {
	var children []workItem
	x := 0.0
	first := true
	for _, e := range ext.Elements {
		if e.Kind == structure.ElemBreak {
			continue
		}
		if !first {
			x += BackboneSpacing
		}
		switch e.Kind {
		case structure.ElemUnpaired:
			b.pos[e.Index] = Vec2{x, 0}
		case structure.ElemStem:
			origin := Vec2{x + PairSpacing/2, 0}
			children = append(children, workItem{stem: e.Stem, frame: frameAt(origin, Vec2{0, 1})})
			x += PairSpacing
		}
		first = false
	}
	return children
}

// placeExteriorCircle arranges the exterior loop on a circle centered at
// the origin. There is no parent edge; the first anchor starts at the top
// of the circle.
func (b *builder) placeExteriorCircle(ext *structure.Loop) ([]workItem, error) {
	anchors := loopAnchors(b.p.Tree, ext)
	edges := cyclicEdges(anchors)
	r, err := circleRadius(edges)
	if err != nil {
		return nil, err
	}

	center := Vec2{0, 0}
	angles := sweepAngles(math.Pi/2, edges, r)

	children := b.placeAnchors(anchors, angles, center, r, 0, len(anchors))
	b.recordArcs(anchors, center, r)
	return children, nil
}

// sweepAngles assigns a circle angle to every anchor, starting at the
// given angle and advancing clockwise by each edge's chord angle.
func sweepAngles(start float64, edges []float64, r float64) []float64 {
	angles := make([]float64, len(edges))
	angles[0] = start
	for t := 1; t < len(edges); t++ {
		angles[t] = angles[t-1] - chordAngle(edges[t-1], r)
	}
	return angles
}

// placeAnchors positions the anchors in [lo, hi) on the circle. Unpaired
// anchors receive their position directly; a stem's first anchor yields a
// work item with the child's base frame (origin at the chord midpoint,
// forward axis radially outward). Stem positions themselves are written
// by placeStem so the rectangle stays exact.
func (b *builder) placeAnchors(anchors []anchor, angles []float64, center Vec2, r float64, lo, hi int) []workItem {
	var children []workItem
	for t := lo; t < hi; t++ {
		a := anchors[t]
		switch {
		case a.stem < 0:
			b.pos[a.index] = pointOn(center, r, angles[t])
		case a.first:
			pa := pointOn(center, r, angles[t])
			pb := pointOn(center, r, angles[(t+1)%len(anchors)])
			mid := pa.Add(pb).Scale(0.5)
			children = append(children, workItem{stem: a.stem, frame: frameAt(mid, mid.Sub(center))})
		}
	}
	return children
}

// recordArcs marks backbone segments between index-consecutive perimeter
// anchors as arcs on the loop circle.
func (b *builder) recordArcs(anchors []anchor, center Vec2, r float64) {
	for t := range anchors {
		a, next := anchors[t], anchors[(t+1)%len(anchors)]
		if next.index == a.index+1 {
			b.arcs[a.index] = OutlineSegment{From: a.index, To: a.index + 1, Kind: SegmentArc, Center: center, Radius: r}
		}
	}
}

// verifyStraightRuns asserts that a stem separated from a single child
// stem by a loop with no unpaired bases is collinear with it.
func (b *builder) verifyStraightRuns() error {
	t := b.p.Tree
	for sid := range t.Stems {
		l := &t.Loops[t.Stems[sid].Loop]
		if l.Unpaired() != 0 || l.Children() != 1 {
			continue
		}
		var child int
		for _, e := range l.Elements {
			if e.Kind == structure.ElemStem {
				child = e.Stem
			}
		}
		if cross := b.frames[sid].Forward.Cross(b.frames[child].Forward); math.Abs(cross) > 1e-6 {
			return errors.New(errors.ErrCodeInternal, "stems %d and %d are not collinear across an empty loop", sid, child)
		}
	}
	return nil
}

// rotateToPrimary rigidly rotates the whole drawing so the primary stem
// runs vertical: the axis through its first two rung midpoints points up,
// or for a single-rung stem the pair bond lies horizontal.
func (b *builder) rotateToPrimary() {
	stems := b.p.Tree.Stems
	if len(stems) == 0 {
		return
	}

	s := &stems[0]
	var theta float64
	if s.Len() >= 2 {
		m0 := b.pos[s.Pairs[0][0]].Add(b.pos[s.Pairs[0][1]]).Scale(0.5)
		m1 := b.pos[s.Pairs[1][0]].Add(b.pos[s.Pairs[1][1]]).Scale(0.5)
		dir := m1.Sub(m0)
		theta = math.Pi/2 - math.Atan2(dir.Y, dir.X)
	} else {
		bond := b.pos[s.Pairs[0][1]].Sub(b.pos[s.Pairs[0][0]])
		theta = -math.Atan2(bond.Y, bond.X)
	}
	if theta == 0 {
		return
	}

	for i := range b.pos {
		b.pos[i] = b.pos[i].Rotate(theta)
	}
	for k, arc := range b.arcs {
		arc.Center = arc.Center.Rotate(theta)
		b.arcs[k] = arc
	}
}

// pairBonds lists every base pair (i, j) with i < j, sorted by i.
func (b *builder) pairBonds() [][2]int {
	var bonds [][2]int
	for i, j := range b.p.Pairs {
		if j > i {
			bonds = append(bonds, [2]int{i, j})
		}
	}
	return bonds
}

// backboneSegments connects consecutive nucleotides, skipping strand
// breaks.
func (b *builder) backboneSegments() [][2]int {
	var segs [][2]int
	for i := 0; i < b.p.N-1; i++ {
		if !b.p.BreakAfter(i) {
			segs = append(segs, [2]int{i, i + 1})
		}
	}
	return segs
}

// outline traces the backbone as lines and loop arcs, in index order.
func (b *builder) outline() []OutlineSegment {
	var segs []OutlineSegment
	for i := 0; i < b.p.N-1; i++ {
		if b.p.BreakAfter(i) {
			continue
		}
		if arc, ok := b.arcs[i]; ok {
			segs = append(segs, arc)
			continue
		}
		segs = append(segs, OutlineSegment{From: i, To: i + 1, Kind: SegmentLine})
	}
	return segs
}

// arrow computes the 3' end marker from the final two positions.
func (b *builder) arrow() Arrow {
	n := b.p.N
	if n < 2 {
		return Arrow{Anchor: b.pos[n-1], Direction: Vec2{1, 0}}
	}
	return Arrow{
		Anchor:    b.pos[n-1],
		Direction: b.pos[n-1].Sub(b.pos[n-2]).Normalize(),
	}
}

// boundsOf computes the padded axis-aligned bounding box of the points.
func boundsOf(points []Vec2) Bounds {
	bb := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range points {
		bb.MinX = math.Min(bb.MinX, p.X)
		bb.MinY = math.Min(bb.MinY, p.Y)
		bb.MaxX = math.Max(bb.MaxX, p.X)
		bb.MaxY = math.Max(bb.MaxY, p.Y)
	}
	bb.MinX -= BoundsMargin
	bb.MinY -= BoundsMargin
	bb.MaxX += BoundsMargin
	bb.MaxY += BoundsMargin
	return bb
}
