package barchart

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"resume-insights/internal/render"
)

func testSpec() render.ChartSpec {
	return render.ChartSpec{
		Title: "Factor Scores",
		Max:   100,
		Bars:  []render.Bar{{Label: "Soft Skills", Percent: 50}, {Label: "Formatting", Percent: 100}},
	}
}

func TestRenderSVG(t *testing.T) {
	out, err := Bytes(testSpec(), SVG, Options{})
	if err != nil {
		t.Fatalf("render svg: %v", err)
	}
	svg := string(out)
	if !strings.Contains(svg, "<svg") {
		t.Fatalf("expected svg document, got %.80s", svg)
	}
	if !strings.Contains(svg, "Soft Skills") || !strings.Contains(svg, "Formatting") {
		t.Fatalf("expected bar labels in svg")
	}
}

func TestRenderPNG(t *testing.T) {
	out, err := Bytes(testSpec(), PNG, Options{Width: 320, Height: 200})
	if err != nil {
		t.Fatalf("render png: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("\x89PNG")) {
		t.Fatalf("expected png signature")
	}
}

func TestRenderNoBars(t *testing.T) {
	_, err := Bytes(render.ChartSpec{Title: "empty"}, SVG, Options{})
	if !errors.Is(err, ErrNoBars) {
		t.Fatalf("expected ErrNoBars, got %v", err)
	}
}

func TestTierColor(t *testing.T) {
	if tierColor(render.TierHigh) != colorHigh || tierColor(render.TierMedium) != colorMedium || tierColor(render.TierLow) != colorLow {
		t.Fatalf("unexpected tier colors")
	}
}

func TestRenderWidensForManyBars(t *testing.T) {
	spec := render.ChartSpec{Title: "many", Max: 100}
	for i := 0; i < 12; i++ {
		spec.Bars = append(spec.Bars, render.Bar{Label: "F", Percent: i * 8})
	}
	out, err := Bytes(spec, SVG, Options{Width: 200})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "1080") {
		t.Fatalf("expected widened svg, got %.120s", out)
	}
}
