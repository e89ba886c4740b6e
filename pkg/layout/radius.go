package layout

import (
	"math"

	"github.com/strandlab/rnaplot/pkg/errors"
)

// chordAngle returns the central angle subtended by a chord of the given
// length on a circle of radius r.
func chordAngle(length, r float64) float64 {
	return 2 * math.Asin(length/(2*r))
}

// circleRadius solves Σ 2·arcsin(ℓ/(2R)) = 2π for R given the cyclic edge
// lengths of a loop perimeter. When all edges are equal the closed form
// R = ℓ/(2·sin(π/P)) applies; otherwise the sum is monotone decreasing in
// R and bisection converges on [max(ℓ)/2, Σℓ].
func circleRadius(edges []float64) (float64, error) {
	if len(edges) < 3 {
		return 0, errors.New(errors.ErrCodeInternal, "loop perimeter has %d edges, need at least 3", len(edges))
	}

	equal := true
	maxEdge, sum := edges[0], 0.0
	for _, l := range edges {
		if l != edges[0] {
			equal = false
		}
		if l > maxEdge {
			maxEdge = l
		}
		sum += l
	}

	if equal {
		return edges[0] / (2 * math.Sin(math.Pi/float64(len(edges)))), nil
	}

	angleSum := func(r float64) float64 {
		s := 0.0
		for _, l := range edges {
			s += chordAngle(l, r)
		}
		return s
	}

	// A longest edge that is exactly a diameter closes the circle at the
	// lower end of the bracket.
	if math.Abs(angleSum(maxEdge/2)-2*math.Pi) <= bisectTol {
		return maxEdge / 2, nil
	}

	lo := maxEdge/2 + 1e-12
	hi := sum
	if angleSum(lo) < 2*math.Pi {
		// The longest edge dominates the rest: no circle closes the
		// perimeter.
		return 0, errors.New(errors.ErrCodeInternal, "loop perimeter cannot close on a circle")
	}

	for i := 0; i < bisectMaxIter && hi-lo > bisectTol; i++ {
		mid := (lo + hi) / 2
		if angleSum(mid) > 2*math.Pi {
			lo = mid
		} else {
			hi = mid
		}
	}

	return (lo + hi) / 2, nil
}
