// Package insights submits resumes for scoring and presents the results.
package insights

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"resume-insights/internal/analysis"
	"resume-insights/internal/render"
	"resume-insights/internal/scoring"
	"resume-insights/internal/shared/metrics"
	"resume-insights/internal/shared/telemetry"
	"resume-insights/internal/shared/util"
	"resume-insights/internal/upload"
)

// ErrBusy is returned when a submission is already in flight.
var ErrBusy = errors.New("analysis already in progress")

const (
	msgBusy         = "An analysis is already in progress. Please wait."
	msgFailed       = "There was an error analyzing your resume. Please try again."
	msgFailedPrefix = "There was an error analyzing your resume: "
)

// Analyzer scores a resume submission.
type Analyzer interface {
	Analyze(ctx context.Context, sub scoring.Submission) (analysis.Result, error)
}

// Screen is a display surface that can also switch stages and show an error.
type Screen interface {
	render.DisplaySurface
	ShowStage(stage render.Stage)
	ShowError(msg string)
}

// Presenter drives one screen through upload, loading and results.
type Presenter struct {
	analyzer Analyzer
	renderer *render.Renderer
	screen   Screen
	now      func() time.Time

	inFlight atomic.Bool

	mu    sync.Mutex
	chart *render.Chart
}

// NewPresenter constructs a presenter showing the upload stage.
func NewPresenter(analyzer Analyzer, screen Screen) *Presenter {
	p := &Presenter{
		analyzer: analyzer,
		renderer: render.NewRenderer(),
		screen:   screen,
		now:      time.Now,
	}
	screen.ShowStage(render.StageUpload)
	return p
}

// Submit sends file for scoring and renders the result. On failure the
// screen returns to the upload stage with one message and no result region
// is written.
func (p *Presenter) Submit(ctx context.Context, file upload.File, jobDescription, industry string) error {
	if !p.inFlight.CompareAndSwap(false, true) {
		metrics.IncSubmissionFailed(metrics.ReasonBusy)
		return ErrBusy
	}
	defer p.inFlight.Store(false)

	fields := submissionFields(ctx, file)
	p.screen.ShowStage(render.StageLoading)
	res, err := analyze(ctx, p.analyzer, p.now, scoring.Submission{
		File:           file,
		JobDescription: jobDescription,
		Industry:       industry,
	})
	if err != nil {
		p.fail(err, fields)
		return err
	}

	if err := p.show(res); err != nil {
		p.fail(err, fields)
		return err
	}
	recordSuccess(res, fields)
	return nil
}

// Reject reports an upload that never reached the scorer.
func (p *Presenter) Reject(err error) {
	if err == nil {
		return
	}
	p.fail(err, map[string]any{})
}

// Reset returns the screen to the upload stage.
func (p *Presenter) Reset() {
	p.screen.ShowStage(render.StageUpload)
}

// Close releases the chart owned by the presenter.
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.releaseLocked()
}

func (p *Presenter) show(res analysis.Result) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.releaseLocked()
	chart, err := p.renderer.Render(res, p.screen)
	if err != nil {
		return err
	}
	p.chart = chart
	p.screen.ShowStage(render.StageResults)
	return nil
}

func (p *Presenter) releaseLocked() {
	if p.chart == nil {
		return
	}
	p.chart.Dispose()
	p.chart = nil
	metrics.IncChartDisposed()
}

func (p *Presenter) fail(err error, fields map[string]any) {
	recordFailure(err, fields)
	p.screen.ShowStage(render.StageUpload)
	p.screen.ShowError(UserMessage(err))
}

// analyze runs one scoring round trip and records its duration.
func analyze(ctx context.Context, a Analyzer, now func() time.Time, sub scoring.Submission) (analysis.Result, error) {
	metrics.IncSubmissionStarted()
	start := now()
	res, err := a.Analyze(ctx, sub)
	metrics.ObserveSubmissionDurationMs(float64(now().Sub(start).Milliseconds()))
	return res, err
}

func submissionFields(ctx context.Context, file upload.File) map[string]any {
	return map[string]any{
		"request_id":  scoring.RequestIDFromContext(ctx),
		"upload_hash": util.Fingerprint(file.Data),
		"bytes":       len(file.Data),
	}
}

func recordSuccess(res analysis.Result, fields map[string]any) {
	metrics.IncSubmissionCompleted()
	fields["score"] = res.Score
	fields["factors"] = len(res.FactorScores)
	telemetry.Info("submission.completed", fields)
}

func recordFailure(err error, fields map[string]any) {
	reason := FailureReason(err)
	metrics.IncSubmissionFailed(reason)
	fields["failure_reason"] = reason
	fields["error"] = err
	telemetry.Error("submission.failed", fields)
}

// FailureReason classifies err into a metrics reason label.
func FailureReason(err error) string {
	var (
		transportErr *scoring.TransportError
		statusErr    *scoring.StatusError
		serviceErr   *analysis.ServiceError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBusy):
		return metrics.ReasonBusy
	case errors.Is(err, upload.ErrInvalidUpload):
		return metrics.ReasonInvalidUpload
	case errors.As(err, &transportErr):
		return metrics.ReasonTransport
	case errors.As(err, &statusErr):
		return metrics.ReasonStatus
	case errors.As(err, &serviceErr):
		return metrics.ReasonService
	case errors.Is(err, analysis.ErrMalformedPayload):
		return metrics.ReasonMalformed
	case errors.Is(err, render.ErrDraw):
		return metrics.ReasonRender
	default:
		return metrics.ReasonOther
	}
}

// UserMessage returns the single human readable message shown for err.
func UserMessage(err error) string {
	var (
		statusErr  *scoring.StatusError
		serviceErr *analysis.ServiceError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBusy):
		return msgBusy
	case errors.Is(err, upload.ErrInvalidUpload):
		msg := strings.TrimPrefix(err.Error(), upload.ErrInvalidUpload.Error()+": ")
		return render.Capitalize(msg)
	case errors.As(err, &serviceErr) && strings.TrimSpace(serviceErr.Message) != "":
		return msgFailedPrefix + serviceErr.Message
	case errors.As(err, &statusErr) && strings.TrimSpace(statusErr.Message) != "":
		return msgFailedPrefix + statusErr.Message
	default:
		return msgFailed
	}
}
