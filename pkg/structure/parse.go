package structure

import (
	"github.com/strandlab/rnaplot/pkg/errors"
)

// Parsed is the result of parsing a dot-bracket string.
type Parsed struct {
	// N is the number of nucleotides across all strands.
	N int
	// Pairs maps each nucleotide index to its partner, or -1 when
	// unpaired. The mapping is symmetric and properly nested.
	Pairs []int
	// Nicks lists the first nucleotide index of each strand. The first
	// entry is always 0.
	Nicks []int
	// Tree is the structure tree rooted at the exterior loop.
	Tree *Tree

	breakAfter []bool
}

// Strands returns the number of strands.
func (p *Parsed) Strands() int {
	return len(p.Nicks)
}

// BreakAfter reports whether a strand break separates nucleotides i and
// i+1. The backbone segment between them is omitted from rendering.
func (p *Parsed) BreakAfter(i int) bool {
	if i < 0 || i >= len(p.breakAfter) {
		return false
	}
	return p.breakAfter[i]
}

// Parse tokenizes a dot-bracket string, matches brackets into a pair map,
// and builds the structure tree.
func Parse(raw string) (*Parsed, error) {
	tokens, err := Tokenize(raw)
	if err != nil {
		return nil, err
	}

	n := 0
	for _, tok := range tokens {
		if tok.Kind != TokenStrandBreak {
			n++
		}
	}

	p := &Parsed{
		N:          n,
		Pairs:      make([]int, n),
		Nicks:      []int{0},
		breakAfter: make([]bool, n),
	}
	for i := range p.Pairs {
		p.Pairs[i] = -1
	}

	// Stack of open-bracket nucleotide indices, with source positions for
	// error reporting.
	type open struct{ index, pos int }
	var stack []open
	last := -1

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenOpenPair:
			stack = append(stack, open{tok.Index, tok.Pos})
			last = tok.Index
		case TokenClosePair:
			if len(stack) == 0 {
				return nil, errors.NewAt(errors.ErrCodeUnbalancedBracket, tok.Pos, "unmatched ')'")
			}
			o := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			p.Pairs[o.index] = tok.Index
			p.Pairs[tok.Index] = o.index
			last = tok.Index
		case TokenUnpaired:
			last = tok.Index
		case TokenStrandBreak:
			// Tokenize guarantees a nucleotide precedes and follows.
			p.breakAfter[last] = true
			p.Nicks = append(p.Nicks, last+1)
		}
	}

	if len(stack) > 0 {
		return nil, errors.NewAt(errors.ErrCodeUnbalancedBracket, stack[0].pos, "unmatched '('")
	}

	p.Tree = buildTree(p)
	return p, nil
}

// treeBuilder accumulates arena nodes during tree construction.
type treeBuilder struct {
	p *Parsed
	t *Tree
}

// buildTree constructs the structure tree from the pair map. Loops[0] is
// the exterior loop.
func buildTree(p *Parsed) *Tree {
	b := &treeBuilder{p: p, t: &Tree{}}
	b.t.Loops = append(b.t.Loops, Loop{Parent: -1})
	b.t.Loops[0].Elements = b.walkRange(0, p.N-1, 0)
	return b.t
}

// walkRange collects the loop elements covering nucleotide indices
// [lo, hi], creating child stems as they are encountered.
func (b *treeBuilder) walkRange(lo, hi, loopID int) []Element {
	var elems []Element
	k := lo
	for k <= hi {
		j := b.p.Pairs[k]
		var end int
		if j < 0 {
			elems = append(elems, Element{Kind: ElemUnpaired, Index: k})
			end = k
			k++
		} else {
			stemID := b.buildStem(k, j, loopID)
			elems = append(elems, Element{Kind: ElemStem, Stem: stemID})
			end = j
			k = j + 1
		}
		if k <= hi && b.p.breakAfter[end] {
			elems = append(elems, Element{Kind: ElemBreak})
		}
	}
	return elems
}

// buildStem groups stacked pairs starting at (i, j) into one stem and
// builds the loop it closes.
func (b *treeBuilder) buildStem(i, j, parentLoop int) int {
	pairs := [][2]int{{i, j}}
	for i+1 < j-1 && b.p.Pairs[i+1] == j-1 {
		i, j = i+1, j-1
		pairs = append(pairs, [2]int{i, j})
	}

	stemID := len(b.t.Stems)
	b.t.Stems = append(b.t.Stems, Stem{Pairs: pairs, Parent: parentLoop})

	loopID := len(b.t.Loops)
	b.t.Loops = append(b.t.Loops, Loop{Parent: stemID})
	b.t.Stems[stemID].Loop = loopID

	elems := b.walkRange(i+1, j-1, loopID)
	b.t.Loops[loopID].Elements = elems
	return stemID
}
