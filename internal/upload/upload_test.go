package upload

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestValidateRejects(t *testing.T) {
	v := Validator{MaxBytes: 16, VerifyPDF: false}
	tests := []struct {
		name     string
		fileName string
		data     []byte
		wantMsg  string
	}{
		{name: "no name", fileName: "  ", data: []byte("x"), wantMsg: "no selected file"},
		{name: "docx", fileName: "resume.docx", data: []byte("x"), wantMsg: "please upload a PDF"},
		{name: "no extension", fileName: "resume", data: []byte("x"), wantMsg: "please upload a PDF"},
		{name: "traversal", fileName: "uploads/..", data: []byte("x"), wantMsg: "invalid file name"},
		{name: "empty", fileName: "resume.pdf", data: nil, wantMsg: "file is empty"},
		{name: "too large", fileName: "resume.pdf", data: bytes.Repeat([]byte("a"), 17), wantMsg: "exceeds 16 bytes"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(tt.fileName, tt.data)
			if !errors.Is(err, ErrInvalidUpload) {
				t.Fatalf("expected ErrInvalidUpload, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("expected %q in %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestValidateAcceptsPDFWithoutParsing(t *testing.T) {
	v := Validator{MaxBytes: 1024}
	f, err := v.Validate("C:/Users/me/My Resume.PDF", []byte("%PDF-1.4 stub"))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if f.Name != "My Resume.PDF" {
		t.Fatalf("unexpected sanitized name %q", f.Name)
	}
	if f.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type %q", f.ContentType)
	}
}

func TestValidateAcceptsDotsInsideName(t *testing.T) {
	v := Validator{MaxBytes: 1024}
	f, err := v.Validate("cv..final.pdf", []byte("%PDF-1.4 stub"))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if f.Name != "cv..final.pdf" {
		t.Fatalf("unexpected sanitized name %q", f.Name)
	}
}

func TestValidateVerifyPDFRejectsGarbage(t *testing.T) {
	v := Validator{MaxBytes: 1024, VerifyPDF: true}
	for _, data := range [][]byte{
		[]byte("this is plain text"),
		[]byte("%PDF-1.4\nnot really a pdf"),
	} {
		_, err := v.Validate("resume.pdf", data)
		if !errors.Is(err, ErrInvalidUpload) {
			t.Fatalf("expected ErrInvalidUpload for %q, got %v", data, err)
		}
		if !strings.Contains(err.Error(), "unreadable PDF") {
			t.Fatalf("unexpected error %v", err)
		}
	}
}

func TestReadAndValidateStopsAtLimit(t *testing.T) {
	v := Validator{MaxBytes: 8}
	_, err := v.ReadAndValidate("resume.pdf", strings.NewReader(strings.Repeat("a", 1<<20)))
	if !errors.Is(err, ErrInvalidUpload) || !strings.Contains(err.Error(), "exceeds 8 bytes") {
		t.Fatalf("expected size error, got %v", err)
	}
	if _, err := v.ReadAndValidate("resume.pdf", nil); !errors.Is(err, ErrInvalidUpload) {
		t.Fatalf("expected error for nil reader, got %v", err)
	}
}

func TestFileReaderIsRepeatable(t *testing.T) {
	f := File{Data: []byte("abc")}
	for i := 0; i < 2; i++ {
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(f.Reader()); err != nil {
			t.Fatalf("read: %v", err)
		}
		if buf.String() != "abc" {
			t.Fatalf("unexpected contents %q", buf.String())
		}
	}
}
