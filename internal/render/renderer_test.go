package render_test

import (
	"errors"
	"reflect"
	"testing"

	"resume-insights/internal/analysis"
	"resume-insights/internal/render"
	"resume-insights/internal/render/rendertest"
)

func sampleResult() analysis.Result {
	return analysis.Result{
		Score: 72,
		Metrics: analysis.Metrics{
			WordCount:        480,
			ActionVerbCount:  11,
			WeakPhraseCount:  3,
			SectionsFound:    []string{"experience", "skills"},
			FormattingIssues: []string{"Inconsistent date formats"},
		},
		Recommendations: []analysis.Recommendation{
			{Category: "content", Priority: analysis.PriorityHigh, Recommendation: "Quantify impact"},
		},
		KeywordAnalysis: &analysis.KeywordAnalysis{
			IndustryKeywords: analysis.IndustryKeywords{
				{Industry: "tech", Keywords: []string{"go", "docker"}},
				{Industry: "finance", Keywords: []string{"audit"}},
			},
		},
		FactorScores: analysis.FactorScores{
			{Name: "soft_skills", Score: 0.5},
			{Name: "formatting", Score: 1.0},
		},
	}
}

func TestRenderPopulatesEveryRegion(t *testing.T) {
	surface := rendertest.New()
	chart, err := render.NewRenderer().Render(sampleResult(), surface)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	defer chart.Dispose()

	if surface.Score == nil || *surface.Score != 72 || surface.Tier != render.TierMedium {
		t.Fatalf("unexpected score %v tier %s", surface.Score, surface.Tier)
	}
	if *surface.WordCount != 480 || *surface.ActionVerb != 11 || *surface.WeakPhrase != 3 {
		t.Fatalf("unexpected counts")
	}
	if !reflect.DeepEqual(surface.Sections, []string{"Experience", "Skills"}) {
		t.Fatalf("unexpected sections %v", surface.Sections)
	}
	if len(surface.Issues) != 1 || surface.IssuesMsg != "" {
		t.Fatalf("unexpected issues %v %q", surface.Issues, surface.IssuesMsg)
	}
	if len(surface.Recommendations) != 1 || surface.Recommendations[0].Priority != analysis.PriorityHigh {
		t.Fatalf("unexpected recommendations %+v", surface.Recommendations)
	}
	if len(surface.KeywordGroups) != 2 || surface.KeywordGroups[0].Industry != "tech" || surface.KeywordGroups[1].Industry != "finance" {
		t.Fatalf("unexpected keyword groups %+v", surface.KeywordGroups)
	}
}

func TestRenderFactorBars(t *testing.T) {
	surface := rendertest.New()
	chart, err := render.NewRenderer().Render(sampleResult(), surface)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	defer chart.Dispose()

	specs := surface.RecordingCanvas().Specs
	if len(specs) != 1 {
		t.Fatalf("expected one chart drawn, got %d", len(specs))
	}
	want := []render.Bar{{Label: "Soft Skills", Percent: 50}, {Label: "Formatting", Percent: 100}}
	if !reflect.DeepEqual(specs[0].Bars, want) {
		t.Fatalf("unexpected bars %+v", specs[0].Bars)
	}
	if !reflect.DeepEqual(chart.Spec().Bars, want) {
		t.Fatalf("handle spec mismatch %+v", chart.Spec().Bars)
	}
}

func TestRenderEmptyCollectionsShowPlaceholders(t *testing.T) {
	surface := rendertest.New()
	chart, err := render.NewRenderer().Render(analysis.Result{Score: 95}, surface)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if chart != nil {
		t.Fatalf("expected no chart without factor scores")
	}
	if surface.SectionsMsg != render.MsgNoSections || len(surface.Sections) != 0 {
		t.Fatalf("expected sections placeholder, got %v %q", surface.Sections, surface.SectionsMsg)
	}
	if surface.IssuesMsg != render.MsgNoIssues {
		t.Fatalf("expected no-issues message, got %q", surface.IssuesMsg)
	}
	if surface.RecsMsg != render.MsgNoRecommendations {
		t.Fatalf("expected recommendations placeholder, got %q", surface.RecsMsg)
	}
	if surface.KeywordsMsg != render.MsgNoKeywords || surface.KeywordGroups != nil {
		t.Fatalf("expected no-keywords message, got %+v %q", surface.KeywordGroups, surface.KeywordsMsg)
	}
	if surface.Tier != render.TierHigh {
		t.Fatalf("expected high tier, got %s", surface.Tier)
	}
	if len(surface.RecordingCanvas().Log()) != 0 {
		t.Fatalf("expected canvas untouched, got %v", surface.RecordingCanvas().Log())
	}
}

func TestRenderEmptyKeywordMappingShowsMessage(t *testing.T) {
	res := analysis.Result{KeywordAnalysis: &analysis.KeywordAnalysis{IndustryKeywords: analysis.IndustryKeywords{}}}
	surface := rendertest.New()
	if _, err := render.NewRenderer().Render(res, surface); err != nil {
		t.Fatalf("render: %v", err)
	}
	if surface.KeywordsMsg != render.MsgNoKeywords {
		t.Fatalf("expected no-keywords message, got %q", surface.KeywordsMsg)
	}
}

func TestRenderTwiceDisposesFirstChartOnce(t *testing.T) {
	surface := rendertest.New()
	r := render.NewRenderer()

	first, err := r.Render(sampleResult(), surface)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	first.Dispose()
	first.Dispose()
	second, err := r.Render(sampleResult(), surface)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}

	want := []string{"draw#1", "destroy#1", "draw#2"}
	if got := surface.RecordingCanvas().Log(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected canvas log %v, want %v", got, want)
	}
	second.Dispose()
	if live := surface.RecordingCanvas().Live(); live != 0 {
		t.Fatalf("expected no live charts, got %d", live)
	}
}

func TestRenderCanvasFailureLeavesSurfaceUntouched(t *testing.T) {
	surface := rendertest.New()
	surface.RecordingCanvas().Fail = true

	_, err := render.NewRenderer().Render(sampleResult(), surface)
	if !errors.Is(err, rendertest.ErrCanvas) {
		t.Fatalf("expected canvas error, got %v", err)
	}
	if surface.ResultWrites() != 0 {
		t.Fatalf("expected no region writes, got %d", surface.ResultWrites())
	}
}

func TestNilChartDisposeIsSafe(t *testing.T) {
	var c *render.Chart
	c.Dispose()
	if len(c.Spec().Bars) != 0 {
		t.Fatalf("expected empty spec")
	}
}
