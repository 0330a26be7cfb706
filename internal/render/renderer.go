package render

import (
	"errors"
	"fmt"
	"sync"

	"resume-insights/internal/analysis"
)

// ErrDraw wraps every failure reported by a Canvas.
var ErrDraw = errors.New("draw factor chart")

// Chart is the handle to a chart drawn by Render. The caller owns it and must
// Dispose it before rendering into the same canvas again.
type Chart struct {
	once sync.Once
	inst ChartInstance
	spec ChartSpec
}

// Spec returns the chart that was drawn.
func (c *Chart) Spec() ChartSpec {
	if c == nil {
		return ChartSpec{}
	}
	return c.spec
}

// Dispose releases the underlying chart instance. It is safe to call on a nil
// handle and more than once; the instance is destroyed exactly once.
func (c *Chart) Dispose() {
	if c == nil {
		return
	}
	c.once.Do(func() {
		if c.inst != nil {
			c.inst.Destroy()
		}
	})
}

// Renderer writes analysis results into display surfaces.
type Renderer struct{}

// NewRenderer constructs a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render normalizes res and writes it into surface.
func (r *Renderer) Render(res analysis.Result, surface DisplaySurface) (*Chart, error) {
	return r.RenderView(NewView(res), surface)
}

// RenderView writes an already normalized view into surface. The chart is
// drawn first so a canvas failure leaves every region untouched. A view with
// no factors draws nothing and returns a nil handle.
func (r *Renderer) RenderView(v View, surface DisplaySurface) (*Chart, error) {
	var chart *Chart
	if len(v.Factors) > 0 {
		spec := v.ChartSpec()
		inst, err := surface.Canvas().Draw(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDraw, err)
		}
		chart = &Chart{inst: inst, spec: spec}
	}

	surface.SetScore(v.ScorePercent, v.Tier)
	surface.SetWordCount(v.WordCount)
	surface.SetActionVerbCount(v.ActionVerbCount)
	surface.SetWeakPhraseCount(v.WeakPhraseCount)

	if len(v.Sections) == 0 {
		surface.SetSectionsMessage(MsgNoSections)
	} else {
		surface.SetSections(v.Sections)
	}

	if len(v.Issues) == 0 {
		surface.SetIssuesMessage(MsgNoIssues)
	} else {
		surface.SetIssues(v.Issues)
	}

	if len(v.Recommendations) == 0 {
		surface.SetRecommendationsMessage(MsgNoRecommendations)
	} else {
		surface.SetRecommendations(v.Recommendations)
	}

	if len(v.KeywordGroups) == 0 {
		surface.SetKeywordsMessage(MsgNoKeywords)
	} else {
		surface.SetKeywordGroups(v.KeywordGroups)
	}

	return chart, nil
}
