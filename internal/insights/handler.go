package insights

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-insights/internal/render"
	"resume-insights/internal/scoring"
	"resume-insights/internal/shared/server/middleware"
	"resume-insights/internal/shared/server/respond"
	"resume-insights/internal/shared/util"
	"resume-insights/internal/surface/htmlpage"
	"resume-insights/internal/upload"
)

// Form field names shared with the scoring service.
const (
	fieldResume         = "resume"
	fieldJobDescription = "job_description"
	fieldIndustry       = "industry"
)

// formOverhead leaves room for the text fields and multipart framing on top
// of the file size cap.
const formOverhead = 1 << 20

// Handler serves the upload page and the analyze endpoints.
type Handler struct {
	Analyzer  Analyzer
	Validator upload.Validator
}

// NewHandler constructs a Handler.
func NewHandler(analyzer Analyzer, validator upload.Validator) *Handler {
	return &Handler{Analyzer: analyzer, Validator: validator}
}

// RegisterRoutes attaches the page routes to r and the JSON endpoint to api.
func (h *Handler) RegisterRoutes(r gin.IRoutes, api gin.IRoutes) {
	r.GET("/", h.index)
	r.POST("/analyze", h.analyzePage)
	api.POST("/analyze", h.analyzeJSON)
}

func (h *Handler) newPage() *htmlpage.Page {
	return htmlpage.New(htmlpage.Options{
		FormAction:     "/analyze",
		MaxUploadBytes: h.Validator.Limit(),
	})
}

func (h *Handler) index(c *gin.Context) {
	page := h.newPage()
	c.Set(middleware.StageKey, string(page.Stage()))
	writePage(c, http.StatusOK, page)
}

func (h *Handler) analyzePage(c *gin.Context) {
	page := h.newPage()
	presenter := NewPresenter(h.Analyzer, page)
	defer presenter.Close()

	file, jobDescription, industry, err := h.readForm(c)
	page.SetFormValues(jobDescription, industry)
	if err != nil {
		presenter.Reject(err)
		h.pageFailure(c, page, err)
		return
	}
	setUploadKeys(c, file)

	if err := presenter.Submit(requestContext(c), file, jobDescription, industry); err != nil {
		h.pageFailure(c, page, err)
		return
	}
	c.Set(middleware.StageKey, string(page.Stage()))
	writePage(c, http.StatusOK, page)
}

func (h *Handler) pageFailure(c *gin.Context, page *htmlpage.Page, err error) {
	status, code := classify(err)
	c.Set(middleware.StageKey, string(page.Stage()))
	c.Set(middleware.FailureKey, FailureReason(err))
	respond.HTMLError(c, status, code, UserMessage(err))
	writePage(c, status, page)
}

func (h *Handler) analyzeJSON(c *gin.Context) {
	file, jobDescription, industry, err := h.readForm(c)
	if err != nil {
		h.jsonFailure(c, err, map[string]any{})
		return
	}
	setUploadKeys(c, file)

	ctx := requestContext(c)
	fields := submissionFields(ctx, file)
	res, err := analyze(ctx, h.Analyzer, time.Now, scoring.Submission{
		File:           file,
		JobDescription: jobDescription,
		Industry:       industry,
	})
	if err != nil {
		h.jsonFailure(c, err, fields)
		return
	}
	recordSuccess(res, fields)
	c.Set(middleware.StageKey, string(render.StageResults))
	respond.OK(c, render.NewView(res))
}

func (h *Handler) jsonFailure(c *gin.Context, err error, fields map[string]any) {
	recordFailure(err, fields)
	status, code := classify(err)
	c.Set(middleware.StageKey, string(render.StageUpload))
	c.Set(middleware.FailureKey, FailureReason(err))
	respond.Error(c, status, code, UserMessage(err), nil)
}

// readForm reads the multipart form. The body is capped a little above the
// file limit so oversized uploads fail before they are buffered.
func (h *Handler) readForm(c *gin.Context) (upload.File, string, string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Validator.Limit()+formOverhead)

	fileHeader, err := c.FormFile(fieldResume)
	jobDescription := c.PostForm(fieldJobDescription)
	industry := c.PostForm(fieldIndustry)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return upload.File{}, jobDescription, industry, fmt.Errorf("%w: file exceeds %d bytes", upload.ErrInvalidUpload, h.Validator.Limit())
		}
		return upload.File{}, jobDescription, industry, fmt.Errorf("%w: no selected file", upload.ErrInvalidUpload)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return upload.File{}, jobDescription, industry, fmt.Errorf("%w: unable to read file", upload.ErrInvalidUpload)
	}
	defer src.Close()

	file, err := h.Validator.ReadAndValidate(fileHeader.Filename, src)
	return file, jobDescription, industry, err
}

func setUploadKeys(c *gin.Context, file upload.File) {
	c.Set(middleware.UploadHashKey, util.Fingerprint(file.Data))
	c.Set(middleware.UploadBytesKey, len(file.Data))
}

func requestContext(c *gin.Context) context.Context {
	return scoring.ContextWithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
}

// classify maps a submission failure to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, upload.ErrInvalidUpload):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, ErrBusy):
		return http.StatusTooManyRequests, "busy"
	case errors.Is(err, render.ErrDraw):
		return http.StatusInternalServerError, "render_error"
	default:
		return http.StatusBadGateway, "upstream_error"
	}
}

func writePage(c *gin.Context, status int, page *htmlpage.Page) {
	var buf bytes.Buffer
	if err := page.Write(&buf); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render page", nil)
		return
	}
	respond.HTML(c, status, buf.Bytes())
}
