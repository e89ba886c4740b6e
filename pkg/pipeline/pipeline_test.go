package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/strandlab/rnaplot/pkg/cache"
	"github.com/strandlab/rnaplot/pkg/errors"
)

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	// Format names are case-insensitive
	if err := ValidateFormats([]string{"SVG"}); err != nil {
		t.Errorf("Upper-case format should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "gif"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateLegend(t *testing.T) {
	tests := []struct {
		legend  string
		wantErr bool
	}{
		{"", false},
		{"nucleotide", false},
		{"probability", false},
		{"rainbow", true},
	}

	for _, tt := range tests {
		err := ValidateLegend(tt.legend)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLegend(%q) error = %v, wantErr %v", tt.legend, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateForParse(t *testing.T) {
	opts := Options{}
	err := opts.ValidateForParse()
	if err == nil {
		t.Fatal("Missing structure should fail")
	}
	if !errors.Is(err, errors.ErrCodeEmptyStructure) {
		t.Errorf("Error code = %v, want EMPTY_STRUCTURE", errors.GetCode(err))
	}

	opts = Options{Structure: "(((...)))"}
	if err := opts.ValidateForParse(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger default should be set")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("PNGScale should be %v, got %v", DefaultPNGScale, opts.PNGScale)
	}

	// Format names are folded to lower case
	opts = Options{Formats: []string{"SVG", "Json"}}
	opts.SetRenderDefaults()
	if opts.Formats[0] != "svg" || opts.Formats[1] != "json" {
		t.Errorf("Formats should be lower-cased, got %v", opts.Formats)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Structure: "(((...)))"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalFormats := len(opts.Formats)
	originalPNGScale := opts.PNGScale

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
	if opts.PNGScale != originalPNGScale {
		t.Error("PNGScale changed on second call")
	}
}

func TestOptionsArtifactKeyOpts(t *testing.T) {
	opts := Options{
		Sequence: "GGGAAACCC",
		Labels:   true,
		Legend:   LegendNucleotide,
	}

	a := opts.ArtifactKeyOpts("svg")
	b := opts.ArtifactKeyOpts("json")
	if a.Format == b.Format {
		t.Error("ArtifactKeyOpts should carry the format")
	}
	if a.Sequence != opts.Sequence || !a.Labels || a.Legend != LegendNucleotide {
		t.Errorf("ArtifactKeyOpts should carry render options: %+v", a)
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(ctx, Options{
		Structure: "(((...)))",
		Formats:   []string{"svg", "json"},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Parsed == nil || result.Parsed.N != 9 {
		t.Fatalf("Parsed should have 9 nucleotides: %+v", result.Parsed)
	}
	if result.Layout == nil || len(result.Layout.Positions) != 9 {
		t.Fatal("Layout should have 9 positions")
	}
	if result.LayoutHash == "" {
		t.Error("LayoutHash should be set")
	}
	if len(result.Artifacts["svg"]) == 0 {
		t.Error("SVG artifact missing")
	}
	if len(result.Artifacts["json"]) == 0 {
		t.Error("JSON artifact missing")
	}

	if result.Stats.Nucleotides != 9 {
		t.Errorf("Stats.Nucleotides = %d, want 9", result.Stats.Nucleotides)
	}
	if result.Stats.Pairs != 3 {
		t.Errorf("Stats.Pairs = %d, want 3", result.Stats.Pairs)
	}

	// NullCache never hits
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("NullCache should not produce hits: %+v", result.CacheInfo)
	}
}

func TestRunnerExecuteCacheHit(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	opts := Options{Structure: "((..((...))..))", Formats: []string{"svg", "json"}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("First Execute error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("First run should miss: %+v", first.CacheInfo)
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Second Execute error: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("Second run should hit the layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("Second run should hit the artifact cache")
	}

	for _, format := range opts.Formats {
		if !bytes.Equal(first.Artifacts[format], second.Artifacts[format]) {
			t.Errorf("Cached %s artifact differs from rendered one", format)
		}
	}
}

func TestRunnerExecuteRefresh(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(c, nil, nil)
	defer runner.Close()

	if _, err := runner.Execute(ctx, Options{Structure: "(((...)))"}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	result, err := runner.Execute(ctx, Options{Structure: "(((...)))", Refresh: true})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("Refresh should bypass the cache: %+v", result.CacheInfo)
	}
}

func TestRunnerExecuteDeterminism(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	opts := Options{Structure: "((.(...).(...).))", Formats: []string{"json"}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !bytes.Equal(first.Artifacts["json"], second.Artifacts["json"]) {
		t.Error("Uncached runs should produce identical JSON")
	}
	if first.LayoutHash != second.LayoutHash {
		t.Error("LayoutHash should be deterministic")
	}
}

func TestRunnerExecuteAnnotations(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	probs := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}
	result, err := runner.Execute(ctx, Options{
		Structure:     "(((...)))",
		Sequence:      "GGGAAACCC",
		Probabilities: probs,
		Labels:        true,
		Legend:        LegendProbability,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	svg := result.Artifacts["svg"]
	if !bytes.Contains(svg, []byte("prob-grad")) {
		t.Error("SVG should contain the probability legend gradient")
	}
	if !bytes.Contains(svg, []byte(`class="nt"`)) {
		t.Error("SVG should contain nucleotide labels")
	}
}

func TestRunnerExecuteSequenceMismatch(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(ctx, Options{
		Structure: "(((...)))",
		Sequence:  "AAA",
	})
	if err == nil {
		t.Fatal("Sequence mismatch should fail")
	}
	if !errors.Is(err, errors.ErrCodeSequenceMismatch) {
		t.Errorf("Error code = %v, want SEQUENCE_MISMATCH", errors.GetCode(err))
	}
}

func TestRunnerExecuteInvalidFormat(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(ctx, Options{
		Structure: "(((...)))",
		Formats:   []string{"gif"},
	})
	if err == nil {
		t.Fatal("Invalid format should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Error code = %v, want INVALID_FORMAT", errors.GetCode(err))
	}
}
