package scoring

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"resume-insights/internal/analysis"
	"resume-insights/internal/upload"
)

const (
	analyzePath     = "/analyze"
	maxResponseSize = 4 << 20

	fieldResume         = "resume"
	fieldJobDescription = "job_description"
	fieldIndustry       = "industry"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Submission is one resume sent for scoring.
type Submission struct {
	File           upload.File
	JobDescription string
	Industry       string
}

// Client submits resumes to the remote scoring service.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient constructs a client for endpoint, which is either the service base
// URL or the absolute analyze URL. A zero timeout means none.
func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	resolved, err := ResolveEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint:   resolved,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Endpoint returns the resolved analyze URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ResolveEndpoint appends /analyze to a bare host URL. Any other path is a
// configured absolute endpoint and is used as given.
func ResolveEndpoint(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("scoring endpoint is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("scoring endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("scoring endpoint must be http or https, got %q", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("scoring endpoint has no host: %q", raw)
	}
	switch trimmed := strings.TrimRight(u.Path, "/"); {
	case trimmed == "":
		u.Path = analyzePath
		u.RawPath = ""
	case strings.HasSuffix(trimmed, analyzePath):
		u.Path = trimmed
		u.RawPath = ""
	}
	return u.String(), nil
}

// Analyze performs one round trip. Failures are *TransportError,
// *StatusError, *analysis.ServiceError or wrap analysis.ErrMalformedPayload.
func (c *Client) Analyze(ctx context.Context, sub Submission) (analysis.Result, error) {
	body, contentType, err := encodeSubmission(sub)
	if err != nil {
		return analysis.Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return analysis.Result{}, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if id := RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return analysis.Result{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return analysis.Result{}, &TransportError{Err: err}
	}
	if len(raw) > maxResponseSize {
		return analysis.Result{}, fmt.Errorf("%w: response exceeds %d bytes", analysis.ErrMalformedPayload, maxResponseSize)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := analysis.ErrorMessage(raw)
		return analysis.Result{}, &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}
	return analysis.Decode(raw)
}

func encodeSubmission(sub Submission) (io.Reader, string, error) {
	if len(sub.File.Data) == 0 {
		return nil, "", fmt.Errorf("%w: no file part", upload.ErrInvalidUpload)
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldResume, quoteEscaper.Replace(sub.File.Name)))
	contentType := sub.File.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(sub.File.Data); err != nil {
		return nil, "", err
	}

	if jd := strings.TrimSpace(sub.JobDescription); jd != "" {
		if err := w.WriteField(fieldJobDescription, jd); err != nil {
			return nil, "", err
		}
	}
	if industry := strings.TrimSpace(sub.Industry); industry != "" {
		if err := w.WriteField(fieldIndustry, industry); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
