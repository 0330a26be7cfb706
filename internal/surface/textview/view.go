// Package textview renders analysis results to a terminal.
package textview

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"resume-insights/internal/render"
	"resume-insights/internal/render/barchart"
)

const defaultBarWidth = 30

// Options configures a View.
type Options struct {
	// BarWidth is the number of cells in a full factor bar.
	BarWidth int
	// ChartPNG, when set, also writes the factor chart to this path.
	ChartPNG string
}

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	errText lipgloss.Style
	badge   lipgloss.Style
	tiers   map[render.Tier]lipgloss.Style
	empty   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FAFAFA"}),
		heading: r.NewStyle().Bold(true).Underline(true),
		muted:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#9CA3AF"}),
		errText: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#DC3545")),
		badge:   r.NewStyle().Padding(0, 1).Background(lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#3D3D3D"}),
		tiers: map[render.Tier]lipgloss.Style{
			render.TierHigh:   r.NewStyle().Foreground(lipgloss.Color("#198754")),
			render.TierMedium: r.NewStyle().Foreground(lipgloss.Color("#FFC107")),
			render.TierLow:    r.NewStyle().Foreground(lipgloss.Color("#DC3545")),
		},
		empty: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#CED4DA", Dark: "#3D3D3D"}),
	}
}

// View is a display surface that prints to a writer. Result regions are
// buffered and printed together when the results stage is shown.
type View struct {
	mu     sync.Mutex
	out    io.Writer
	opts   Options
	styles styles

	score           string
	counts          [3]string
	sections        []string
	sectionsMsg     string
	issues          []string
	issuesMsg       string
	recommendations []render.Card
	recsMsg         string
	keywordGroups   []render.KeywordGroup
	keywordsMsg     string

	canvas *textCanvas
}

// New returns a View writing to out. Colors follow the capabilities of out.
func New(out io.Writer, opts Options) *View {
	if opts.BarWidth <= 0 {
		opts.BarWidth = defaultBarWidth
	}
	v := &View{
		out:    out,
		opts:   opts,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
	v.canvas = &textCanvas{view: v}
	return v
}

func (v *View) ShowStage(stage render.Stage) {
	switch stage {
	case render.StageLoading:
		v.println(v.styles.muted.Render("Analyzing resume..."))
	case render.StageResults:
		v.println(v.report())
	}
}

func (v *View) ShowError(msg string) {
	v.println(v.styles.errText.Render("Error: ") + msg)
}

func (v *View) SetScore(percent int, tier render.Tier) {
	v.set(func() {
		v.score = v.styles.tiers[tier].Bold(true).Render(fmt.Sprintf("%d%%", percent)) + " " + v.styles.muted.Render("("+string(tier)+")")
	})
}

func (v *View) SetWordCount(n int)       { v.set(func() { v.counts[0] = fmt.Sprint(n) }) }
func (v *View) SetActionVerbCount(n int) { v.set(func() { v.counts[1] = fmt.Sprint(n) }) }
func (v *View) SetWeakPhraseCount(n int) { v.set(func() { v.counts[2] = fmt.Sprint(n) }) }

func (v *View) SetSections(labels []string) {
	v.set(func() { v.sections, v.sectionsMsg = labels, "" })
}

func (v *View) SetSectionsMessage(msg string) {
	v.set(func() { v.sections, v.sectionsMsg = nil, msg })
}

func (v *View) SetIssues(issues []string) {
	v.set(func() { v.issues, v.issuesMsg = issues, "" })
}

func (v *View) SetIssuesMessage(msg string) {
	v.set(func() { v.issues, v.issuesMsg = nil, msg })
}

func (v *View) SetRecommendations(cards []render.Card) {
	v.set(func() { v.recommendations, v.recsMsg = cards, "" })
}

func (v *View) SetRecommendationsMessage(msg string) {
	v.set(func() { v.recommendations, v.recsMsg = nil, msg })
}

func (v *View) SetKeywordGroups(groups []render.KeywordGroup) {
	v.set(func() { v.keywordGroups, v.keywordsMsg = groups, "" })
}

func (v *View) SetKeywordsMessage(msg string) {
	v.set(func() { v.keywordGroups, v.keywordsMsg = nil, msg })
}

func (v *View) Canvas() render.Canvas {
	return v.canvas
}

func (v *View) set(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn()
}

func (v *View) println(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, s)
}

func (v *View) report() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.styles

	var b strings.Builder
	b.WriteString(s.title.Render("Resume Insights") + "\n\n")
	b.WriteString("ATS score: " + v.score + "\n")
	b.WriteString(fmt.Sprintf("Words: %s  Action verbs: %s  Weak phrases: %s\n", v.counts[0], v.counts[1], v.counts[2]))

	b.WriteString("\n" + s.heading.Render("Sections found") + "\n")
	if v.sectionsMsg != "" {
		b.WriteString(s.muted.Render(v.sectionsMsg) + "\n")
	} else {
		badges := make([]string, len(v.sections))
		for i, sec := range v.sections {
			badges[i] = s.badge.Render(sec)
		}
		b.WriteString(strings.Join(badges, " ") + "\n")
	}

	b.WriteString("\n" + s.heading.Render("Formatting issues") + "\n")
	if v.issuesMsg != "" {
		b.WriteString(s.tiers[render.TierHigh].Render(v.issuesMsg) + "\n")
	}
	for _, issue := range v.issues {
		b.WriteString(s.tiers[render.TierMedium].Render("! ") + issue + "\n")
	}

	b.WriteString("\n" + s.heading.Render("Recommendations") + "\n")
	if v.recsMsg != "" {
		b.WriteString(s.muted.Render(v.recsMsg) + "\n")
	}
	for _, card := range v.recommendations {
		line := s.badge.Render(strings.ToUpper(string(card.Priority))) + " "
		if card.Category != "" {
			line += render.Capitalize(card.Category) + ": "
		}
		b.WriteString(line + card.Text + "\n")
	}

	b.WriteString("\n" + s.heading.Render("Industry keywords") + "\n")
	if v.keywordsMsg != "" {
		b.WriteString(s.muted.Render(v.keywordsMsg) + "\n")
	}
	for _, g := range v.keywordGroups {
		b.WriteString(render.Capitalize(g.Industry) + ": " + strings.Join(g.Keywords, ", ") + "\n")
	}

	if chart := v.canvas.lines(); len(chart) > 0 {
		b.WriteString("\n" + s.heading.Render("Factor scores") + "\n")
		b.WriteString(strings.Join(chart, "\n") + "\n")
	}
	return b.String()
}

// textCanvas draws factor bars as block characters and optionally a PNG.
type textCanvas struct {
	mu   sync.Mutex
	view *View
	gen  int
	bars []string
}

func (c *textCanvas) Draw(spec render.ChartSpec) (render.ChartInstance, error) {
	if path := c.view.opts.ChartPNG; path != "" {
		if err := writePNG(path, spec); err != nil {
			return nil, err
		}
	}

	width := c.view.opts.BarWidth
	s := c.view.styles
	labelWidth := 0
	for _, bar := range spec.Bars {
		if w := lipgloss.Width(bar.Label); w > labelWidth {
			labelWidth = w
		}
	}
	lines := make([]string, 0, len(spec.Bars))
	for _, bar := range spec.Bars {
		filled := bar.Percent * width / 100
		if filled > width {
			filled = width
		}
		if filled < 0 {
			filled = 0
		}
		label := bar.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(bar.Label))
		lines = append(lines, fmt.Sprintf("%s %s%s %3d%%",
			label,
			s.tiers[render.ScoreTier(bar.Percent)].Render(strings.Repeat("█", filled)),
			s.empty.Render(strings.Repeat("░", width-filled)),
			bar.Percent,
		))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.bars = lines
	return &textChart{canvas: c, gen: c.gen}, nil
}

func (c *textCanvas) lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.bars...)
}

type textChart struct {
	canvas *textCanvas
	gen    int
}

func (t *textChart) Destroy() {
	t.canvas.mu.Lock()
	defer t.canvas.mu.Unlock()
	if t.canvas.gen == t.gen {
		t.canvas.bars = nil
	}
}

func writePNG(path string, spec render.ChartSpec) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := barchart.Render(spec, barchart.PNG, barchart.Options{}, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
