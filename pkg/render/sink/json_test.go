package sink

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type manifest struct {
	Positions [][2]float64 `json:"positions"`
	Pairs     [][2]int     `json:"pairs"`
	Backbone  [][2]int     `json:"backbone"`
	Arrow     struct {
		X  float64 `json:"x"`
		Y  float64 `json:"y"`
		DX float64 `json:"dx"`
		DY float64 `json:"dy"`
	} `json:"arrow"`
	Bounds struct {
		MinX float64 `json:"min_x"`
		MinY float64 `json:"min_y"`
		MaxX float64 `json:"max_x"`
		MaxY float64 `json:"max_y"`
	} `json:"bounds"`
	Outline []struct {
		From int    `json:"from"`
		To   int    `json:"to"`
		Kind string `json:"kind"`
	} `json:"outline"`
}

func TestRenderJSONSchema(t *testing.T) {
	l := buildLayout(t, "(((...)))")
	out, err := RenderJSON(l)
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var m manifest
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(m.Positions) != 9 {
		t.Errorf("positions length = %d, want 9", len(m.Positions))
	}
	wantPairs := [][2]int{{0, 8}, {1, 7}, {2, 6}}
	if len(m.Pairs) != len(wantPairs) {
		t.Fatalf("pairs = %v, want %v", m.Pairs, wantPairs)
	}
	for i, p := range wantPairs {
		if m.Pairs[i] != p {
			t.Errorf("pairs[%d] = %v, want %v", i, m.Pairs[i], p)
		}
	}
	if len(m.Backbone) != 8 {
		t.Errorf("backbone length = %d, want 8", len(m.Backbone))
	}
	if m.Arrow.DX == 0 && m.Arrow.DY == 0 {
		t.Errorf("arrow direction is zero")
	}
	if m.Bounds.MaxX <= m.Bounds.MinX || m.Bounds.MaxY <= m.Bounds.MinY {
		t.Errorf("degenerate bounds %+v", m.Bounds)
	}
	if m.Outline != nil {
		t.Errorf("outline present without WithOutline")
	}
}

func TestRenderJSONPrecision(t *testing.T) {
	l := buildLayout(t, "(.)")
	out, err := RenderJSON(l)
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	// Every float carries exactly six decimal digits.
	doc := string(out)
	if !strings.Contains(doc, "0.000000") {
		t.Errorf("missing six-digit formatting in %s", doc)
	}
	if strings.Contains(doc, "NaN") || strings.Contains(doc, "Inf") {
		t.Errorf("non-finite values in %s", doc)
	}
}

func TestRenderJSONDeterminism(t *testing.T) {
	l1 := buildLayout(t, "((..((...))..((...))..))")
	l2 := buildLayout(t, "((..((...))..((...))..))")

	a, err := RenderJSON(l1, WithOutline())
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}
	b, err := RenderJSON(l2, WithOutline())
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("identical layouts produced different bytes")
	}
}

func TestRenderJSONOutline(t *testing.T) {
	l := buildLayout(t, "(((...)))")
	out, err := RenderJSON(l, WithOutline())
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var m manifest
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(m.Outline) != 8 {
		t.Fatalf("outline length = %d, want 8", len(m.Outline))
	}

	arcs := 0
	for _, seg := range m.Outline {
		switch seg.Kind {
		case "arc":
			arcs++
		case "line":
		default:
			t.Errorf("unknown segment kind %q", seg.Kind)
		}
	}
	if arcs != 4 {
		t.Errorf("arc count = %d, want 4", arcs)
	}
}

func TestRenderJSONStrandBreak(t *testing.T) {
	l := buildLayout(t, "((.+.))")
	out, err := RenderJSON(l)
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var m manifest
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	for _, seg := range m.Backbone {
		if seg[0] == 2 && seg[1] == 3 {
			t.Errorf("backbone crosses the strand break: %v", m.Backbone)
		}
	}
}
