package analysis

// Priority tags a recommendation card.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Result is the payload returned by the scoring service for one resume.
type Result struct {
	Score           int              `json:"score"`
	Metrics         Metrics          `json:"metrics"`
	Recommendations []Recommendation `json:"recommendations"`
	KeywordAnalysis *KeywordAnalysis `json:"keywordAnalysis,omitempty"`
	FactorScores    FactorScores     `json:"factorScores"`
}

// Metrics holds the counters and lists computed from the resume text.
type Metrics struct {
	WordCount        int      `json:"wordCount"`
	ActionVerbCount  int      `json:"actionVerbCount"`
	WeakPhraseCount  int      `json:"weakPhraseCount"`
	SectionsFound    []string `json:"sectionsFound"`
	FormattingIssues []string `json:"formattingIssues"`
}

// Recommendation is a single suggestion from the scoring service.
type Recommendation struct {
	Category       string   `json:"category"`
	Priority       Priority `json:"priority"`
	Recommendation string   `json:"recommendation"`
}

// KeywordAnalysis is present only when the service matched industry terms.
// A nil IndustryKeywords means the service sent no mapping at all.
type KeywordAnalysis struct {
	IndustryKeywords IndustryKeywords `json:"industryKeywords"`
}

// IndustryKeyword is one industry and the keywords found for it.
type IndustryKeyword struct {
	Industry string
	Keywords []string
}

// IndustryKeywords keeps industries in payload order.
type IndustryKeywords []IndustryKeyword

// FactorScore is one named sub-score in [0, 1].
type FactorScore struct {
	Name  string
	Score float64
}

// FactorScores keeps factors in payload order.
type FactorScores []FactorScore

// Get returns the score for name.
func (f FactorScores) Get(name string) (float64, bool) {
	for _, fs := range f {
		if fs.Name == name {
			return fs.Score, true
		}
	}
	return 0, false
}
