package pipeline

import (
	"context"
	"time"

	"github.com/strandlab/rnaplot/pkg/layout"
	"github.com/strandlab/rnaplot/pkg/observability"
	"github.com/strandlab/rnaplot/pkg/structure"
)

// ComputeLayout embeds a parsed structure in the plane. The exterior
// alignment rotation is applied unless opts.NoAlign is set.
func ComputeLayout(ctx context.Context, p *structure.Parsed, opts Options) (*layout.Layout, error) {
	observability.Pipeline().OnLayoutStart(ctx, p.N)
	start := time.Now()

	l, err := layout.Build(p, layout.WithAlignment(!opts.NoAlign))

	observability.Pipeline().OnLayoutComplete(ctx, p.N, time.Since(start), err)
	return l, err
}
