// Package barchart draws factor charts with go-chart.
package barchart

import (
	"bytes"
	"errors"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"resume-insights/internal/render"
)

// Format selects the output encoding.
type Format int

const (
	SVG Format = iota
	PNG
)

const (
	defaultWidth  = 640
	defaultHeight = 360
	barWidth      = 56
	barSpacing    = 24
	sidePadding   = 120
)

var (
	colorLow    = drawing.ColorFromHex("dc3545")
	colorMedium = drawing.ColorFromHex("ffc107")
	colorHigh   = drawing.ColorFromHex("198754")
)

// ErrNoBars is returned for a spec without bars.
var ErrNoBars = errors.New("chart has no bars")

// Options sizes the chart. Zero values fall back to defaults.
type Options struct {
	Width  int
	Height int
}

// Render writes spec to w. Bars are colored by the same tiers as the score.
func Render(spec render.ChartSpec, format Format, opts Options, w io.Writer) error {
	if len(spec.Bars) == 0 {
		return ErrNoBars
	}
	max := float64(spec.Max)
	if max <= 0 {
		max = 100
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = defaultWidth
	}
	if need := len(spec.Bars)*(barWidth+barSpacing) + sidePadding; width < need {
		width = need
	}
	if height <= 0 {
		height = defaultHeight
	}

	bars := make([]chart.Value, 0, len(spec.Bars))
	for _, b := range spec.Bars {
		col := tierColor(render.ScoreTier(b.Percent))
		bars = append(bars, chart.Value{
			Label: b.Label,
			Value: float64(b.Percent),
			Style: chart.Style{
				FillColor:   col,
				StrokeColor: col,
				StrokeWidth: 1,
			},
		})
	}

	graph := chart.BarChart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: max},
		},
		Bars: bars,
	}

	renderer := chart.SVG
	if format == PNG {
		renderer = chart.PNG
	}
	return graph.Render(renderer, w)
}

// Bytes renders spec into memory.
func Bytes(spec render.ChartSpec, format Format, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(spec, format, opts, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func tierColor(t render.Tier) drawing.Color {
	switch t {
	case render.TierHigh:
		return colorHigh
	case render.TierMedium:
		return colorMedium
	default:
		return colorLow
	}
}
