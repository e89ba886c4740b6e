package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/strandlab/rnaplot/pkg/layout"
	"github.com/strandlab/rnaplot/pkg/render/style"
	"github.com/strandlab/rnaplot/pkg/structure"
)

func buildLayout(t *testing.T, s string) *layout.Layout {
	t.Helper()
	p, err := structure.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", s, err)
	}
	l, err := layout.Build(p)
	if err != nil {
		t.Fatalf("Build(%q) error = %v", s, err)
	}
	return l
}

func TestRenderSVGDocument(t *testing.T) {
	l := buildLayout(t, "(((...)))")
	svg := RenderSVG(l)

	if !bytes.HasPrefix(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg"`)) {
		t.Errorf("missing svg root element")
	}
	if !bytes.HasSuffix(bytes.TrimSpace(svg), []byte("</svg>")) {
		t.Errorf("missing closing tag")
	}

	doc := string(svg)
	if got := strings.Count(doc, "<circle"); got != 9 {
		t.Errorf("circle count = %d, want 9", got)
	}
	// Three stacked pairs.
	if got := strings.Count(doc, `stroke-width="2.5" stroke="black"`); got != 3 {
		t.Errorf("pair bond count = %d, want 3", got)
	}
	if !strings.Contains(doc, `marker-end="url(#arrow)"`) {
		t.Errorf("missing 3' arrow")
	}
	if !strings.Contains(doc, "<path d=") {
		t.Errorf("missing loop arc path")
	}
}

func TestRenderSVGLayerOrder(t *testing.T) {
	l := buildLayout(t, "(((...)))")
	doc := string(RenderSVG(l))

	bond := strings.Index(doc, "<line")
	arrow := strings.Index(doc, "marker-end")
	circle := strings.Index(doc, "<circle")
	if !(bond < arrow && arrow < circle) {
		t.Errorf("layer order bond=%d arrow=%d circle=%d, want bonds before arrow before circles",
			bond, arrow, circle)
	}
}

func TestRenderSVGLabels(t *testing.T) {
	l := buildLayout(t, "(((...)))")
	doc := string(RenderSVG(l, WithLabels("GGGAAACCC")))

	if got := strings.Count(doc, `class="nt"`); got != 9 {
		t.Errorf("label count = %d, want 9", got)
	}
	if !strings.Contains(doc, ">A</text>") || !strings.Contains(doc, ">G</text>") {
		t.Errorf("labels missing sequence characters")
	}
}

func TestRenderSVGFills(t *testing.T) {
	l := buildLayout(t, "(.)")
	fills, err := style.Fills(3, style.Options{Sequence: "AUG", Palette: &style.DefaultPalette})
	if err != nil {
		t.Fatalf("Fills() error = %v", err)
	}
	doc := string(RenderSVG(l, WithFills(fills)))

	for _, c := range []string{style.DefaultPalette.A, style.DefaultPalette.U, style.DefaultPalette.G} {
		if !strings.Contains(doc, `fill="`+c+`"`) {
			t.Errorf("missing fill %s", c)
		}
	}
}

func TestRenderSVGWithoutArrow(t *testing.T) {
	l := buildLayout(t, "(((...)))")
	doc := string(RenderSVG(l, WithoutArrow()))

	if strings.Contains(doc, "marker-end") || strings.Contains(doc, "<defs><marker") {
		t.Errorf("arrow rendered despite WithoutArrow")
	}
}

func TestRenderSVGLegends(t *testing.T) {
	l := buildLayout(t, "(((...)))")

	nuc := string(RenderSVG(l, WithLegend(LegendNucleotide)))
	for _, label := range []string{">A</text>", ">C</text>", ">G</text>", ">U</text>"} {
		if !strings.Contains(nuc, label) {
			t.Errorf("nucleotide legend missing %s", label)
		}
	}

	prob := string(RenderSVG(l, WithLegend(LegendProbability)))
	if !strings.Contains(prob, `id="prob-grad"`) {
		t.Errorf("probability legend missing gradient")
	}
	if got := strings.Count(prob, "<stop "); got != 11 {
		t.Errorf("gradient stop count = %d, want 11", got)
	}
}

func TestRenderSVGDeterminism(t *testing.T) {
	l := buildLayout(t, "((..((...))..((...))..))")
	a := RenderSVG(l, WithLegend(LegendProbability))
	b := RenderSVG(l, WithLegend(LegendProbability))
	if !bytes.Equal(a, b) {
		t.Errorf("repeated renders differ")
	}
}
