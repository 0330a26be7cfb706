package render

import (
	"testing"

	"resume-insights/internal/analysis"
)

func TestScoreTierBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{score: 0, want: TierLow},
		{score: 59, want: TierLow},
		{score: 60, want: TierMedium},
		{score: 79, want: TierMedium},
		{score: 80, want: TierHigh},
		{score: 100, want: TierHigh},
	}
	for _, tt := range tests {
		if got := ScoreTier(tt.score); got != tt.want {
			t.Fatalf("ScoreTier(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestScoreTierCoversFullRange(t *testing.T) {
	for score := 0; score <= 100; score++ {
		got := ScoreTier(score)
		switch {
		case score < 60 && got != TierLow,
			score >= 60 && score < 80 && got != TierMedium,
			score >= 80 && got != TierHigh:
			t.Fatalf("ScoreTier(%d) = %s", score, got)
		}
	}
}

func TestFactorLabel(t *testing.T) {
	tests := map[string]string{
		"soft_skills":      "Soft Skills",
		"formatting":       "Formatting",
		"keyword_density":  "Keyword Density",
		"__action__verbs_": "Action Verbs",
		"ATS_match":        "ATS Match",
		"ATS_score":        "ATS Score",
		"gpa_GPA":          "Gpa GPA",
		"":                 "",
	}
	for in, want := range tests {
		if got := FactorLabel(in); got != want {
			t.Fatalf("FactorLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFactorPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{in: 0, want: 0},
		{in: 0.5, want: 50},
		{in: 1.0, want: 100},
		{in: 0.555, want: 56},
		{in: 0.004, want: 0},
		{in: 1.2, want: 100},
		{in: -0.1, want: 0},
	}
	for _, tt := range tests {
		if got := FactorPercent(tt.in); got != tt.want {
			t.Fatalf("FactorPercent(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"experience":   "Experience",
		" education":   "Education",
		"éducation":    "Éducation",
		"Skills":       "Skills",
		"work history": "Work history",
		"":             "",
	}
	for in, want := range tests {
		if got := Capitalize(in); got != want {
			t.Fatalf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewViewNormalizesEmptyCollections(t *testing.T) {
	v := NewView(analysis.Result{Score: 42})
	if v.Sections == nil || v.Issues == nil || v.Recommendations == nil || v.Factors == nil {
		t.Fatalf("expected non-nil collections, got %+v", v)
	}
	if v.KeywordGroups != nil {
		t.Fatalf("expected nil keyword groups without keyword analysis")
	}
	if v.Tier != TierLow || v.ScorePercent != 42 {
		t.Fatalf("unexpected score %d tier %s", v.ScorePercent, v.Tier)
	}
}

func TestNewViewDefaultsPriority(t *testing.T) {
	v := NewView(analysis.Result{Recommendations: []analysis.Recommendation{{Category: "content", Recommendation: "x"}}})
	if v.Recommendations[0].Priority != analysis.PriorityMedium {
		t.Fatalf("expected medium priority, got %q", v.Recommendations[0].Priority)
	}
}
