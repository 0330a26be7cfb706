package textview

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-insights/internal/analysis"
	"resume-insights/internal/render"
)

func sampleResult() analysis.Result {
	return analysis.Result{
		Score: 72,
		Metrics: analysis.Metrics{
			WordCount:       350,
			ActionVerbCount: 9,
			WeakPhraseCount: 2,
			SectionsFound:   []string{"experience", "education"},
		},
		Recommendations: []analysis.Recommendation{
			{Category: "content", Priority: analysis.PriorityHigh, Recommendation: "Quantify achievements"},
		},
		FactorScores: analysis.FactorScores{
			{Name: "soft_skills", Score: 0.5},
			{Name: "formatting", Score: 1},
		},
	}
}

func TestResultsReport(t *testing.T) {
	var buf bytes.Buffer
	v := New(&buf, Options{BarWidth: 10})
	if _, err := render.NewRenderer().Render(sampleResult(), v); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("regions should be buffered until results, got %q", buf.String())
	}
	v.ShowStage(render.StageResults)

	out := buf.String()
	for _, want := range []string{
		"72% (medium)",
		"Words: 350  Action verbs: 9  Weak phrases: 2",
		"Experience",
		"Education",
		render.MsgNoIssues,
		"HIGH",
		"Content: Quantify achievements",
		render.MsgNoKeywords,
		"Soft Skills █████░░░░░  50%",
		"Formatting  ██████████ 100%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestLoadingAndError(t *testing.T) {
	var buf bytes.Buffer
	v := New(&buf, Options{})
	v.ShowStage(render.StageLoading)
	v.ShowError("There was an error analyzing your resume. Please try again.")
	v.ShowStage(render.StageUpload)

	want := "Analyzing resume...\nError: There was an error analyzing your resume. Please try again.\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestDisposedChartIsNotPrinted(t *testing.T) {
	var buf bytes.Buffer
	v := New(&buf, Options{})
	chart, err := render.NewRenderer().Render(sampleResult(), v)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	chart.Dispose()
	v.ShowStage(render.StageResults)
	if strings.Contains(buf.String(), "Factor scores") {
		t.Fatal("disposed chart should not be printed")
	}
}

func TestChartPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factors.png")
	var buf bytes.Buffer
	v := New(&buf, Options{ChartPNG: path})
	if _, err := render.NewRenderer().Render(sampleResult(), v); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatal("expected a PNG file")
	}
}

func TestChartPNGFailureLeavesViewUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "factors.png")
	var buf bytes.Buffer
	v := New(&buf, Options{ChartPNG: path})
	if _, err := render.NewRenderer().Render(sampleResult(), v); err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
	v.ShowStage(render.StageResults)
	if strings.Contains(buf.String(), "72%") {
		t.Fatal("score written despite chart failure")
	}
}
