package render

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"resume-insights/internal/analysis"
)

// Fixed messages shown when a region has nothing to list.
const (
	MsgNoSections        = "No sections detected"
	MsgNoIssues          = "No formatting issues detected"
	MsgNoRecommendations = "No recommendations at this time"
	MsgNoKeywords        = "No industry keywords found"
)

const chartTitle = "Factor Scores"

// Tier is the color band of the overall score.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Card is one rendered recommendation.
type Card struct {
	Category string            `json:"category"`
	Priority analysis.Priority `json:"priority"`
	Text     string            `json:"text"`
}

// KeywordGroup is the pills shown for one industry.
type KeywordGroup struct {
	Industry string   `json:"industry"`
	Keywords []string `json:"keywords"`
}

// Bar is one factor in the chart.
type Bar struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

// View is the normalized form of an analysis result, ready for a surface.
type View struct {
	ScorePercent    int            `json:"scorePercent"`
	Tier            Tier           `json:"tier"`
	WordCount       int            `json:"wordCount"`
	ActionVerbCount int            `json:"actionVerbCount"`
	WeakPhraseCount int            `json:"weakPhraseCount"`
	Sections        []string       `json:"sections"`
	Issues          []string       `json:"issues"`
	Recommendations []Card         `json:"recommendations"`
	KeywordGroups   []KeywordGroup `json:"keywordGroups"`
	Factors         []Bar          `json:"factors"`
}

// NewView normalizes res. Collections in the view are never nil, except
// KeywordGroups which is nil when the result carries no keyword mapping.
func NewView(res analysis.Result) View {
	v := View{
		ScorePercent:    clampPercent(res.Score),
		Tier:            ScoreTier(res.Score),
		WordCount:       res.Metrics.WordCount,
		ActionVerbCount: res.Metrics.ActionVerbCount,
		WeakPhraseCount: res.Metrics.WeakPhraseCount,
		Sections:        make([]string, 0, len(res.Metrics.SectionsFound)),
		Issues:          make([]string, 0, len(res.Metrics.FormattingIssues)),
		Recommendations: make([]Card, 0, len(res.Recommendations)),
		Factors:         make([]Bar, 0, len(res.FactorScores)),
	}
	for _, s := range res.Metrics.SectionsFound {
		v.Sections = append(v.Sections, Capitalize(s))
	}
	v.Issues = append(v.Issues, res.Metrics.FormattingIssues...)
	for _, r := range res.Recommendations {
		p := r.Priority
		if p == "" {
			p = analysis.PriorityMedium
		}
		v.Recommendations = append(v.Recommendations, Card{Category: r.Category, Priority: p, Text: r.Recommendation})
	}
	if res.KeywordAnalysis != nil && res.KeywordAnalysis.IndustryKeywords != nil {
		v.KeywordGroups = make([]KeywordGroup, 0, len(res.KeywordAnalysis.IndustryKeywords))
		for _, ik := range res.KeywordAnalysis.IndustryKeywords {
			words := make([]string, len(ik.Keywords))
			copy(words, ik.Keywords)
			v.KeywordGroups = append(v.KeywordGroups, KeywordGroup{Industry: ik.Industry, Keywords: words})
		}
	}
	for _, fs := range res.FactorScores {
		v.Factors = append(v.Factors, Bar{Label: FactorLabel(fs.Name), Percent: FactorPercent(fs.Score)})
	}
	return v
}

// ChartSpec returns the chart for the view's factors.
func (v View) ChartSpec() ChartSpec {
	bars := make([]Bar, len(v.Factors))
	copy(bars, v.Factors)
	return ChartSpec{Title: chartTitle, Bars: bars, Max: 100}
}

// ScoreTier maps a 0-100 score to its color band: <60 low, 60-79 medium, >=80 high.
func ScoreTier(score int) Tier {
	switch {
	case score >= 80:
		return TierHigh
	case score >= 60:
		return TierMedium
	default:
		return TierLow
	}
}

// FactorPercent converts a [0,1] factor score to a whole percentage.
func FactorPercent(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	return clampPercent(int(math.Round(score * 100)))
}

// FactorLabel turns "soft_skills" into "Soft Skills". Only the first letter of
// each word changes, so "ATS_score" becomes "ATS Score".
func FactorLabel(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || unicode.IsSpace(r) })
	for i, p := range parts {
		parts[i] = Capitalize(p)
	}
	return strings.Join(parts, " ")
}

// Capitalize upper-cases the first letter and leaves the rest untouched.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
