package layout

import (
	"math"
	"testing"

	"github.com/strandlab/rnaplot/pkg/errors"
)

func angleSum(edges []float64, r float64) float64 {
	s := 0.0
	for _, l := range edges {
		s += chordAngle(l, r)
	}
	return s
}

func TestCircleRadiusClosedForm(t *testing.T) {
	tests := []struct {
		name  string
		count int
		edge  float64
	}{
		{name: "triangle", count: 3, edge: 1.0},
		{name: "square", count: 4, edge: 1.0},
		{name: "pentagon", count: 5, edge: 1.0},
		{name: "large loop", count: 60, edge: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges := make([]float64, tt.count)
			for i := range edges {
				edges[i] = tt.edge
			}
			r, err := circleRadius(edges)
			if err != nil {
				t.Fatalf("circleRadius() error = %v", err)
			}
			want := tt.edge / (2 * math.Sin(math.Pi/float64(tt.count)))
			if math.Abs(r-want) > 1e-12 {
				t.Errorf("r = %v, want %v", r, want)
			}
			if got := angleSum(edges, r); math.Abs(got-2*math.Pi) > 1e-9 {
				t.Errorf("angle sum = %v, want 2π", got)
			}
		})
	}
}

func TestCircleRadiusBisection(t *testing.T) {
	tests := []struct {
		name  string
		edges []float64
	}{
		{name: "mixed lengths", edges: []float64{1, 1, 1, 2}},
		{name: "one long edge", edges: []float64{0.5, 0.5, 0.5, 0.5, 1.2}},
		{name: "many mixed", edges: []float64{1, 2, 1, 2, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := circleRadius(tt.edges)
			if err != nil {
				t.Fatalf("circleRadius() error = %v", err)
			}
			if got := angleSum(tt.edges, r); math.Abs(got-2*math.Pi) > 1e-6 {
				t.Errorf("angle sum = %v, want 2π", got)
			}
			var maxEdge float64
			for _, l := range tt.edges {
				maxEdge = math.Max(maxEdge, l)
			}
			if r < maxEdge/2 {
				t.Errorf("r = %v below chord bound %v", r, maxEdge/2)
			}
		})
	}
}

func TestCircleRadiusUnclosable(t *testing.T) {
	// Longest edge exceeds the sum of the rest: no circle exists.
	_, err := circleRadius([]float64{10, 1, 1})
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Fatalf("circleRadius() error = %v, want INTERNAL_ERROR", err)
	}
}

func TestCircleRadiusTooFewEdges(t *testing.T) {
	_, err := circleRadius([]float64{1, 1})
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Fatalf("circleRadius() error = %v, want INTERNAL_ERROR", err)
	}
}
