package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"resume-insights/internal/shared/util"
)

// DefaultMaxBytes matches the scoring service's request cap.
const DefaultMaxBytes = 16 << 20

const mimePDF = "application/pdf"

var allowedExtensions = map[string]struct{}{
	".pdf": {},
}

// ErrInvalidUpload wraps every rejection made before contacting the scorer.
var ErrInvalidUpload = errors.New("invalid upload")

// File is an upload that passed preflight.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	Pages       int
}

// Reader returns a fresh reader over the file contents.
func (f File) Reader() io.Reader {
	return bytes.NewReader(f.Data)
}

// Validator checks an upload before it is sent upstream.
type Validator struct {
	MaxBytes  int64
	VerifyPDF bool
}

// NewValidator returns a Validator with the default size cap and PDF parsing on.
func NewValidator() Validator {
	return Validator{MaxBytes: DefaultMaxBytes, VerifyPDF: true}
}

// ReadAndValidate reads at most MaxBytes+1 bytes from r and validates them.
func (v Validator) ReadAndValidate(name string, r io.Reader) (File, error) {
	if r == nil {
		return File{}, fmt.Errorf("%w: no file part", ErrInvalidUpload)
	}
	limit := v.Limit()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return File{}, fmt.Errorf("%w: read file: %v", ErrInvalidUpload, err)
	}
	return v.Validate(name, data)
}

// Validate applies the upload rules: a named .pdf file, not empty, within the
// size cap and, when VerifyPDF is set, readable as a PDF with at least one page.
func (v Validator) Validate(name string, data []byte) (File, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return File{}, fmt.Errorf("%w: no selected file", ErrInvalidUpload)
	}
	clean, err := util.SanitizeFileName(filepath.Base(name))
	if err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrInvalidUpload, err)
	}
	if _, ok := allowedExtensions[strings.ToLower(filepath.Ext(clean))]; !ok {
		return File{}, fmt.Errorf("%w: file type not allowed, please upload a PDF", ErrInvalidUpload)
	}
	if len(data) == 0 {
		return File{}, fmt.Errorf("%w: file is empty", ErrInvalidUpload)
	}
	if int64(len(data)) > v.Limit() {
		return File{}, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidUpload, v.Limit())
	}

	f := File{Name: clean, ContentType: mimePDF, Data: data}
	if v.VerifyPDF {
		pages, err := countPages(data)
		if err != nil {
			return File{}, fmt.Errorf("%w: unreadable PDF: %v", ErrInvalidUpload, err)
		}
		if pages == 0 {
			return File{}, fmt.Errorf("%w: PDF has no pages", ErrInvalidUpload)
		}
		f.Pages = pages
	}
	return f, nil
}

// Limit returns the effective size cap.
func (v Validator) Limit() int64 {
	if v.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return v.MaxBytes
}

// countPages opens data with the PDF reader. The library panics on some
// corrupt inputs, so panics are reported as errors.
func countPages(data []byte) (pages int, err error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF-")) {
		return 0, errors.New("missing %PDF header")
	}
	defer func() {
		if rec := recover(); rec != nil {
			pages, err = 0, fmt.Errorf("parse pdf: %v", rec)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}
