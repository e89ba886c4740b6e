// Package structure parses dot-bracket notation into a pair map and an
// ordered structure tree of stems and loops.
//
// The grammar accepts '.', '(', ')' and '+' (strand break). Brackets must
// balance globally across strands; strand breaks separate strands without
// consuming a nucleotide index, so a pair may span a break.
//
// Parsing is a single left-to-right pass with a stack of open-bracket
// indices. Tree construction groups stacked pairs into stems and walks
// each pair interior to collect loop elements. The tree uses an arena
// representation: stems and loops live in two contiguous slices and refer
// to each other by index.
//
//	parsed, err := structure.Parse("(((...)))")
//	if err != nil {
//	    // UNBALANCED_BRACKET, INVALID_CHARACTER, EMPTY_STRUCTURE, EMPTY_STRAND
//	}
//	ext := parsed.Tree.Exterior()
package structure
