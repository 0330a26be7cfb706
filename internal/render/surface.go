package render

// Stage is the screen the user currently sees.
type Stage string

const (
	StageUpload  Stage = "upload"
	StageLoading Stage = "loading"
	StageResults Stage = "results"
)

// DisplaySurface is the set of output regions a result is rendered into.
// Each list region either receives items or a fixed message, never both.
type DisplaySurface interface {
	SetScore(percent int, tier Tier)
	SetWordCount(n int)
	SetActionVerbCount(n int)
	SetWeakPhraseCount(n int)
	SetSections(labels []string)
	SetSectionsMessage(msg string)
	SetIssues(issues []string)
	SetIssuesMessage(msg string)
	SetRecommendations(cards []Card)
	SetRecommendationsMessage(msg string)
	SetKeywordGroups(groups []KeywordGroup)
	SetKeywordsMessage(msg string)
	Canvas() Canvas
}

// Canvas draws the factor chart.
type Canvas interface {
	Draw(spec ChartSpec) (ChartInstance, error)
}

// ChartInstance is whatever a Canvas allocates for one drawn chart.
type ChartInstance interface {
	Destroy()
}

// ChartSpec describes the factor chart independent of the drawing backend.
type ChartSpec struct {
	Title string `json:"title"`
	Bars  []Bar  `json:"bars"`
	Max   int    `json:"max"`
}
