// Package htmlpage renders analysis results into a server-side HTML page.
package htmlpage

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"sync"

	"resume-insights/internal/analysis"
	"resume-insights/internal/render"
	"resume-insights/internal/render/barchart"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("page.html.tmpl").Funcs(template.FuncMap{
		"tierClass":     tierClass,
		"priorityClass": priorityClass,
		"title":         render.Capitalize,
	}).ParseFS(templateFS, "templates/page.html.tmpl"),
)

// Options configures the upload form shown on the page.
type Options struct {
	FormAction     string
	MaxUploadBytes int64
	ChartWidth     int
	ChartHeight    int
}

// Page is a display surface backed by an HTML template. The zero stage is
// the upload form.
type Page struct {
	mu   sync.Mutex
	opts Options

	stage          render.Stage
	errorMessage   string
	jobDescription string
	industry       string

	score           *int
	tier            render.Tier
	wordCount       *int
	actionVerbCount *int
	weakPhraseCount *int

	sections        []string
	sectionsMsg     string
	issues          []string
	issuesMsg       string
	recommendations []render.Card
	recsMsg         string
	keywordGroups   []render.KeywordGroup
	keywordsMsg     string

	canvas *svgCanvas
}

// New returns a page showing the upload form.
func New(opts Options) *Page {
	if opts.FormAction == "" {
		opts.FormAction = "/analyze"
	}
	p := &Page{opts: opts, stage: render.StageUpload}
	p.canvas = &svgCanvas{page: p}
	return p
}

// SetFormValues echoes the submitted text fields back into the form.
func (p *Page) SetFormValues(jobDescription, industry string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobDescription = jobDescription
	p.industry = industry
}

func (p *Page) ShowStage(stage render.Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stage = stage
	if stage != render.StageUpload {
		p.errorMessage = ""
	}
}

func (p *Page) ShowError(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errorMessage = msg
}

// Stage returns the stage the page will render.
func (p *Page) Stage() render.Stage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stage
}

func (p *Page) SetScore(percent int, tier render.Tier) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.score, p.tier = &percent, tier
}

func (p *Page) SetWordCount(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wordCount = &n
}

func (p *Page) SetActionVerbCount(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actionVerbCount = &n
}

func (p *Page) SetWeakPhraseCount(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.weakPhraseCount = &n
}

func (p *Page) SetSections(labels []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sections, p.sectionsMsg = labels, ""
}

func (p *Page) SetSectionsMessage(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sections, p.sectionsMsg = nil, msg
}

func (p *Page) SetIssues(issues []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.issues, p.issuesMsg = issues, ""
}

func (p *Page) SetIssuesMessage(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.issues, p.issuesMsg = nil, msg
}

func (p *Page) SetRecommendations(cards []render.Card) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recommendations, p.recsMsg = cards, ""
}

func (p *Page) SetRecommendationsMessage(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recommendations, p.recsMsg = nil, msg
}

func (p *Page) SetKeywordGroups(groups []render.KeywordGroup) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keywordGroups, p.keywordsMsg = groups, ""
}

func (p *Page) SetKeywordsMessage(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keywordGroups, p.keywordsMsg = nil, msg
}

func (p *Page) Canvas() render.Canvas {
	return p.canvas
}

type pageData struct {
	Stage          string
	Error          string
	FormAction     string
	MaxUploadMB    string
	JobDescription string
	Industry       string

	Score           *int
	Tier            render.Tier
	WordCount       *int
	ActionVerbCount *int
	WeakPhraseCount *int

	Sections        []string
	SectionsMsg     string
	Issues          []string
	IssuesMsg       string
	Recommendations []render.Card
	RecsMsg         string
	KeywordGroups   []render.KeywordGroup
	KeywordsMsg     string

	ChartURI template.URL
}

// Write executes the page template into w.
func (p *Page) Write(w io.Writer) error {
	data := p.snapshot()
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func (p *Page) snapshot() pageData {
	chartURI := p.canvas.current()

	p.mu.Lock()
	defer p.mu.Unlock()
	stage := p.stage
	if stage == "" {
		stage = render.StageUpload
	}
	return pageData{
		Stage:           string(stage),
		Error:           p.errorMessage,
		FormAction:      p.opts.FormAction,
		MaxUploadMB:     formatMB(p.opts.MaxUploadBytes),
		JobDescription:  p.jobDescription,
		Industry:        p.industry,
		Score:           p.score,
		Tier:            p.tier,
		WordCount:       p.wordCount,
		ActionVerbCount: p.actionVerbCount,
		WeakPhraseCount: p.weakPhraseCount,
		Sections:        p.sections,
		SectionsMsg:     p.sectionsMsg,
		Issues:          p.issues,
		IssuesMsg:       p.issuesMsg,
		Recommendations: p.recommendations,
		RecsMsg:         p.recsMsg,
		KeywordGroups:   p.keywordGroups,
		KeywordsMsg:     p.keywordsMsg,
		ChartURI:        chartURI,
	}
}

// svgCanvas holds at most one chart image. Destroying an instance clears the
// image only if it is still the one on the canvas.
type svgCanvas struct {
	mu   sync.Mutex
	page *Page
	gen  int
	uri  template.URL
}

func (c *svgCanvas) Draw(spec render.ChartSpec) (render.ChartInstance, error) {
	svg, err := barchart.Bytes(spec, barchart.SVG, barchart.Options{
		Width:  c.page.opts.ChartWidth,
		Height: c.page.opts.ChartHeight,
	})
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.uri = template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg))
	return &svgChart{canvas: c, gen: c.gen}, nil
}

func (c *svgCanvas) current() template.URL {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uri
}

type svgChart struct {
	canvas *svgCanvas
	gen    int
}

func (s *svgChart) Destroy() {
	s.canvas.mu.Lock()
	defer s.canvas.mu.Unlock()
	if s.canvas.gen == s.gen {
		s.canvas.uri = ""
	}
}

func tierClass(t render.Tier) string {
	switch t {
	case render.TierHigh:
		return "success"
	case render.TierMedium:
		return "warning"
	default:
		return "danger"
	}
}

func priorityClass(p analysis.Priority) string {
	switch p {
	case analysis.PriorityHigh:
		return "danger"
	case analysis.PriorityLow:
		return "info"
	default:
		return "warning"
	}
}

func formatMB(n int64) string {
	if n <= 0 {
		return ""
	}
	mb := float64(n) / (1 << 20)
	if mb == float64(int64(mb)) {
		return fmt.Sprintf("%d", int64(mb))
	}
	return fmt.Sprintf("%.1f", mb)
}
