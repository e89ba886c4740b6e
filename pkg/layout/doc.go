// Package layout computes deterministic 2D embeddings of RNA secondary
// structures.
//
// The engine walks the structure tree depth-first with an explicit work
// stack and places every nucleotide:
//
//   - Stems are rigid rectangles: consecutive rungs sit BackboneSpacing
//     apart along the stem axis, the two strands PairSpacing apart.
//   - Loops are circles sized so that consecutive perimeter anchors are
//     exactly one edge length apart as chords. The radius solves
//     Σ 2·arcsin(ℓ/(2R)) = 2π by bisection, with a closed form when all
//     edge lengths are equal.
//   - The exterior loop is drawn as a horizontal line when it has at most
//     two child stems, as a circle otherwise.
//
// Build is pure: the same input yields bit-identical coordinates. It does
// no I/O and allocates O(N) memory.
package layout
