package structure

import (
	"github.com/strandlab/rnaplot/pkg/errors"
)

// TokenKind classifies a single character of a dot-bracket string.
type TokenKind uint8

const (
	// TokenUnpaired is an unpaired nucleotide ('.').
	TokenUnpaired TokenKind = iota
	// TokenOpenPair opens a base pair ('(').
	TokenOpenPair
	// TokenClosePair closes a base pair (')').
	TokenClosePair
	// TokenStrandBreak separates two strands ('+'). It consumes no
	// nucleotide index.
	TokenStrandBreak
)

// Token is one element of a tokenized dot-bracket string.
type Token struct {
	// Index is the nucleotide index, or -1 for strand breaks.
	Index int
	// Pos is the byte offset in the source string.
	Pos int
	Kind TokenKind
}

// Tokenize splits a raw dot-bracket string into tokens, validating the
// character set and strand shape. Nucleotide indices are contiguous;
// strand breaks do not advance them.
func Tokenize(raw string) ([]Token, error) {
	if raw == "" {
		return nil, errors.New(errors.ErrCodeEmptyStructure, "structure string is empty")
	}

	tokens := make([]Token, 0, len(raw))
	idx := 0
	strandLen := 0

	for pos, c := range raw {
		switch c {
		case '.':
			tokens = append(tokens, Token{Index: idx, Pos: pos, Kind: TokenUnpaired})
			idx++
			strandLen++
		case '(':
			tokens = append(tokens, Token{Index: idx, Pos: pos, Kind: TokenOpenPair})
			idx++
			strandLen++
		case ')':
			tokens = append(tokens, Token{Index: idx, Pos: pos, Kind: TokenClosePair})
			idx++
			strandLen++
		case '+':
			if strandLen == 0 {
				return nil, errors.NewAt(errors.ErrCodeEmptyStrand, pos, "strand break without preceding strand")
			}
			tokens = append(tokens, Token{Index: -1, Pos: pos, Kind: TokenStrandBreak})
			strandLen = 0
		default:
			return nil, errors.NewAt(errors.ErrCodeInvalidCharacter, pos, "invalid character %q in structure", c)
		}
	}

	if strandLen == 0 {
		// Trailing '+': the final strand is empty.
		return nil, errors.NewAt(errors.ErrCodeEmptyStrand, len(raw)-1, "trailing strand break leaves an empty strand")
	}

	return tokens, nil
}
