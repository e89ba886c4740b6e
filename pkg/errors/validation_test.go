package errors

import "testing"

func TestValidateSequence(t *testing.T) {
	tests := []struct {
		name     string
		seq      string
		n        int
		wantCode Code
	}{
		{name: "empty sequence allowed", seq: "", n: 5, wantCode: ""},
		{name: "matching length", seq: "GGAAC", n: 5, wantCode: ""},
		{name: "too short", seq: "GGA", n: 5, wantCode: ErrCodeSequenceMismatch},
		{name: "too long", seq: "GGAACC", n: 5, wantCode: ErrCodeSequenceMismatch},
		{name: "whitespace", seq: "GG AC", n: 5, wantCode: ErrCodeSequenceMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSequence(tt.seq, tt.n)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ValidateSequence() = %v, want nil", err)
				}
				return
			}
			if GetCode(err) != tt.wantCode {
				t.Errorf("GetCode() = %v, want %v", GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestValidateProbabilities(t *testing.T) {
	nan := 0.0
	nan /= nan

	tests := []struct {
		name     string
		probs    []float64
		n        int
		wantCode Code
	}{
		{name: "nil allowed", probs: nil, n: 3, wantCode: ""},
		{name: "valid", probs: []float64{0, 0.5, 1}, n: 3, wantCode: ""},
		{name: "wrong length", probs: []float64{0.5}, n: 3, wantCode: ErrCodeProbabilityRange},
		{name: "negative", probs: []float64{0, -0.1, 1}, n: 3, wantCode: ErrCodeProbabilityRange},
		{name: "above one", probs: []float64{0, 1.1, 1}, n: 3, wantCode: ErrCodeProbabilityRange},
		{name: "nan", probs: []float64{0, nan, 1}, n: 3, wantCode: ErrCodeProbabilityRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProbabilities(tt.probs, tt.n)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ValidateProbabilities() = %v, want nil", err)
				}
				return
			}
			if GetCode(err) != tt.wantCode {
				t.Errorf("GetCode() = %v, want %v", GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	for _, ok := range []string{"svg", "json", "png", "pdf", "SVG"} {
		if err := ValidateFormat(ok); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", ok, err)
		}
	}
	if err := ValidateFormat("gif"); GetCode(err) != ErrCodeInvalidFormat {
		t.Errorf("ValidateFormat(gif) code = %v, want %v", GetCode(err), ErrCodeInvalidFormat)
	}
}

func TestValidateOutputPath(t *testing.T) {
	if err := ValidateOutputPath("out/structure.svg"); err != nil {
		t.Errorf("ValidateOutputPath() = %v, want nil", err)
	}
	if err := ValidateOutputPath(""); GetCode(err) != ErrCodeInvalidInput {
		t.Errorf("empty path code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
	}
	if err := ValidateOutputPath("bad\x00path"); GetCode(err) != ErrCodeInvalidInput {
		t.Errorf("null byte code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
	}
}
