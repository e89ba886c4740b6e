package pipeline

import (
	"context"
	"time"

	"github.com/strandlab/rnaplot/pkg/errors"
	"github.com/strandlab/rnaplot/pkg/observability"
	"github.com/strandlab/rnaplot/pkg/structure"
)

// Parse tokenizes the dot-bracket string, builds the structure tree and
// checks annotation inputs against the nucleotide count.
func Parse(ctx context.Context, opts Options) (*structure.Parsed, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}

	observability.Pipeline().OnParseStart(ctx, opts.Structure)
	start := time.Now()

	p, err := structure.Parse(opts.Structure)
	if err == nil {
		err = validateAnnotations(p, opts)
	}

	observability.Pipeline().OnParseComplete(ctx, opts.Structure, nucleotideCount(p), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// validateAnnotations checks sequence, probability and color inputs
// against the parsed nucleotide count.
func validateAnnotations(p *structure.Parsed, opts Options) error {
	if err := errors.ValidateSequence(opts.Sequence, p.N); err != nil {
		return err
	}
	if err := errors.ValidateProbabilities(opts.Probabilities, p.N); err != nil {
		return err
	}
	if len(opts.Colors) != 0 && len(opts.Colors) != p.N {
		return errors.New(errors.ErrCodeInvalidInput,
			"colors length %d does not match structure length %d", len(opts.Colors), p.N)
	}
	return nil
}

func nucleotideCount(p *structure.Parsed) int {
	if p == nil {
		return 0
	}
	return p.N
}

// pairCount counts base pairs in a parsed structure.
func pairCount(p *structure.Parsed) int {
	n := 0
	for i, j := range p.Pairs {
		if j > i {
			n++
		}
	}
	return n
}
