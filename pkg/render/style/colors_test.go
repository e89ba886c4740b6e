package style

import (
	"testing"

	"github.com/strandlab/rnaplot/pkg/errors"
)

func TestProbabilityColorEndpoints(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		want string
	}{
		{name: "zero", p: 0.0, want: "#300754"},
		{name: "one", p: 1.0, want: "#8c0202"},
		{name: "clamped below", p: -0.5, want: "#300754"},
		{name: "clamped above", p: 1.5, want: "#8c0202"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProbabilityColor(tt.p); got != tt.want {
				t.Errorf("ProbabilityColor(%v) = %q, want %q", tt.p, got, tt.want)
			}
		})
	}
}

func TestProbabilityColorMidStop(t *testing.T) {
	// p=0.5 lands exactly on the sixth stop, no interpolation.
	want := "#4cba66"
	if got := ProbabilityColor(0.5); got != want {
		t.Errorf("ProbabilityColor(0.5) = %q, want %q", got, want)
	}
}

func TestPaletteLookup(t *testing.T) {
	tests := []struct {
		base byte
		want string
	}{
		{base: 'A', want: DefaultPalette.A},
		{base: 'a', want: DefaultPalette.A},
		{base: 'U', want: DefaultPalette.U},
		{base: 'T', want: DefaultPalette.U},
		{base: 't', want: DefaultPalette.U},
		{base: 'G', want: DefaultPalette.G},
		{base: 'C', want: DefaultPalette.C},
		{base: 'N', want: DefaultBaseFill},
		{base: 'x', want: DefaultBaseFill},
	}

	for _, tt := range tests {
		t.Run(string(tt.base), func(t *testing.T) {
			if got := DefaultPalette.Lookup(tt.base, DefaultBaseFill); got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestFillsPriority(t *testing.T) {
	fills, err := Fills(3, Options{
		Sequence: "AUG",
		Palette:  &DefaultPalette,
		PerBase:  []string{"", "#123456"},
	})
	if err != nil {
		t.Fatalf("Fills() error = %v", err)
	}

	want := []string{DefaultPalette.A, "#123456", DefaultPalette.G}
	for i := range want {
		if fills[i] != want[i] {
			t.Errorf("fills[%d] = %q, want %q", i, fills[i], want[i])
		}
	}
}

func TestFillsProbabilitiesWin(t *testing.T) {
	fills, err := Fills(2, Options{
		Sequence:      "AU",
		Palette:       &DefaultPalette,
		PerBase:       []string{"#000000", "#000000"},
		Probabilities: []float64{0, 1},
	})
	if err != nil {
		t.Fatalf("Fills() error = %v", err)
	}
	if fills[0] != "#300754" || fills[1] != "#8c0202" {
		t.Errorf("fills = %v, want gradient endpoints", fills)
	}
}

func TestFillsDefaults(t *testing.T) {
	fills, err := Fills(2, Options{})
	if err != nil {
		t.Fatalf("Fills() error = %v", err)
	}
	for i, f := range fills {
		if f != DefaultBaseFill {
			t.Errorf("fills[%d] = %q, want %q", i, f, DefaultBaseFill)
		}
	}
}

func TestFillsValidation(t *testing.T) {
	tests := []struct {
		name string
		n    int
		opts Options
		code errors.Code
	}{
		{
			name: "sequence length mismatch",
			n:    3,
			opts: Options{Sequence: "AU"},
			code: errors.ErrCodeSequenceMismatch,
		},
		{
			name: "probability out of range",
			n:    2,
			opts: Options{Probabilities: []float64{0.5, 1.5}},
			code: errors.ErrCodeProbabilityRange,
		},
		{
			name: "probability length mismatch",
			n:    2,
			opts: Options{Probabilities: []float64{0.5}},
			code: errors.ErrCodeProbabilityRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fills(tt.n, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Fills() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestGradientStops(t *testing.T) {
	stops := GradientStops()
	if len(stops) != 11 {
		t.Fatalf("len(stops) = %d, want 11", len(stops))
	}
	if stops[0] != "#300754" {
		t.Errorf("stops[0] = %q, want #300754", stops[0])
	}
	if stops[10] != "#8c0202" {
		t.Errorf("stops[10] = %q, want #8c0202", stops[10])
	}
}
