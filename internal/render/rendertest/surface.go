// Package rendertest provides an in-memory display surface for tests.
package rendertest

import (
	"errors"
	"fmt"
	"sync"

	"resume-insights/internal/render"
)

// Surface records everything written into it. It also implements the
// stage/error methods of a screen so presenter tests can reuse it.
type Surface struct {
	mu sync.Mutex

	Score      *int
	Tier       render.Tier
	WordCount  *int
	ActionVerb *int
	WeakPhrase *int

	Sections        []string
	SectionsMsg     string
	Issues          []string
	IssuesMsg       string
	Recommendations []render.Card
	RecsMsg         string
	KeywordGroups   []render.KeywordGroup
	KeywordsMsg     string

	Stages []render.Stage
	Errors []string

	// Writes counts every result-region mutation.
	Writes int

	canvas *Canvas
}

// New returns an empty Surface with a recording canvas.
func New() *Surface {
	return &Surface{canvas: &Canvas{}}
}

func (s *Surface) write(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes++
	fn()
}

func (s *Surface) SetScore(percent int, tier render.Tier) {
	s.write(func() { s.Score = &percent; s.Tier = tier })
}

func (s *Surface) SetWordCount(n int)       { s.write(func() { s.WordCount = &n }) }
func (s *Surface) SetActionVerbCount(n int) { s.write(func() { s.ActionVerb = &n }) }
func (s *Surface) SetWeakPhraseCount(n int) { s.write(func() { s.WeakPhrase = &n }) }

func (s *Surface) SetSections(labels []string) {
	s.write(func() { s.Sections = labels; s.SectionsMsg = "" })
}

func (s *Surface) SetSectionsMessage(msg string) {
	s.write(func() { s.Sections = nil; s.SectionsMsg = msg })
}

func (s *Surface) SetIssues(issues []string) {
	s.write(func() { s.Issues = issues; s.IssuesMsg = "" })
}

func (s *Surface) SetIssuesMessage(msg string) {
	s.write(func() { s.Issues = nil; s.IssuesMsg = msg })
}

func (s *Surface) SetRecommendations(cards []render.Card) {
	s.write(func() { s.Recommendations = cards; s.RecsMsg = "" })
}

func (s *Surface) SetRecommendationsMessage(msg string) {
	s.write(func() { s.Recommendations = nil; s.RecsMsg = msg })
}

func (s *Surface) SetKeywordGroups(groups []render.KeywordGroup) {
	s.write(func() { s.KeywordGroups = groups; s.KeywordsMsg = "" })
}

func (s *Surface) SetKeywordsMessage(msg string) {
	s.write(func() { s.KeywordGroups = nil; s.KeywordsMsg = msg })
}

func (s *Surface) Canvas() render.Canvas { return s.canvas }

// RecordingCanvas exposes the canvas for assertions.
func (s *Surface) RecordingCanvas() *Canvas { return s.canvas }

func (s *Surface) ShowStage(stage render.Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stages = append(s.Stages, stage)
}

func (s *Surface) ShowError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors = append(s.Errors, msg)
}

// Stage returns the last stage shown, or "" if none.
func (s *Surface) Stage() render.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Stages) == 0 {
		return ""
	}
	return s.Stages[len(s.Stages)-1]
}

// ResultWrites returns the number of result-region mutations so far.
func (s *Surface) ResultWrites() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Writes
}

// ErrCanvas is returned by a canvas configured to fail.
var ErrCanvas = errors.New("canvas unavailable")

// Canvas logs draw and destroy events in order, e.g. "draw#1", "destroy#1".
type Canvas struct {
	mu     sync.Mutex
	next   int
	Events []string
	Specs  []render.ChartSpec
	Fail   bool
}

func (c *Canvas) Draw(spec render.ChartSpec) (render.ChartInstance, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Fail {
		return nil, ErrCanvas
	}
	c.next++
	id := c.next
	c.Events = append(c.Events, fmt.Sprintf("draw#%d", id))
	c.Specs = append(c.Specs, spec)
	return &instance{canvas: c, id: id}, nil
}

// Log returns a copy of the event log.
func (c *Canvas) Log() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.Events...)
}

// Live returns the number of drawn charts not yet destroyed.
func (c *Canvas) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	live := 0
	for _, e := range c.Events {
		if len(e) > 4 && e[:4] == "draw" {
			live++
		} else {
			live--
		}
	}
	return live
}

type instance struct {
	canvas *Canvas
	id     int
}

func (i *instance) Destroy() {
	i.canvas.mu.Lock()
	defer i.canvas.mu.Unlock()
	i.canvas.Events = append(i.canvas.Events, fmt.Sprintf("destroy#%d", i.id))
}
