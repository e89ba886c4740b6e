package treeviz

import (
	"strings"
	"testing"

	"github.com/strandlab/rnaplot/pkg/structure"
)

func TestToDOTHairpin(t *testing.T) {
	p, err := structure.Parse("(((...)))")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	dot := ToDOT(p, Options{})

	if !strings.HasPrefix(dot, "digraph structure {") {
		t.Errorf("missing digraph header")
	}
	if !strings.Contains(dot, `"loop0" [label="exterior"`) {
		t.Errorf("missing exterior loop node:\n%s", dot)
	}
	if !strings.Contains(dot, `"loop1" [label="hairpin"`) {
		t.Errorf("missing hairpin loop node:\n%s", dot)
	}
	if !strings.Contains(dot, `"loop0" -> "stem0"`) {
		t.Errorf("missing exterior to stem edge:\n%s", dot)
	}
	if !strings.Contains(dot, `"stem0" -> "loop1"`) {
		t.Errorf("missing stem to hairpin edge:\n%s", dot)
	}
}

func TestToDOTMultiloop(t *testing.T) {
	p, err := structure.Parse("((.(...).(...).))")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	dot := ToDOT(p, Options{})

	if !strings.Contains(dot, `label="multiloop"`) {
		t.Errorf("missing multiloop node:\n%s", dot)
	}
	if got := strings.Count(dot, "shape=box"); got != 3 {
		t.Errorf("stem node count = %d, want 3", got)
	}
}

func TestToDOTDetailed(t *testing.T) {
	p, err := structure.Parse("(((...)))")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	dot := ToDOT(p, Options{Detailed: true})

	if !strings.Contains(dot, "rungs: 3") {
		t.Errorf("missing rung count:\n%s", dot)
	}
	if !strings.Contains(dot, "pair: (0, 8)") {
		t.Errorf("missing closing pair:\n%s", dot)
	}
	if !strings.Contains(dot, "unpaired: 3") {
		t.Errorf("missing unpaired count:\n%s", dot)
	}
}
