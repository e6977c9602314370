package qa

import (
	"fmt"
	"mime/multipart"
	"strings"

	"askpdf-backend/internal/extract"
)

// Request limits. Excerpts are cut per document so payload size stays bounded
// no matter how large the uploads are.
const (
	MaxQuestionChars = 500
	MaxPDFBytes      = 50 << 20
	MaxPDFCount      = 10
	ExcerptBudget    = 4000
	MaxResources     = 5
)

// Resource is one suggested external reading: a paper, blog post, or similar.
// A Resource with an empty Link renders as plain text rather than a hyperlink.
type Resource struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// QAResult is the canonical pipeline output. Every field is always present
// and of its declared shape; slices are never nil.
type QAResult struct {
	Answer    string     `json:"answer"`
	Contexts  []string   `json:"contexts"`
	Resources []Resource `json:"resources"`
	Roadmap   []string   `json:"roadmap"`
}

// Shape selects which reply layout the model was asked for. Contexts only
// exist in the with-documents shape.
type Shape string

const (
	ShapeWithPDF Shape = "withPdf"
	ShapeNoPDF   Shape = "noPdf"
)

// ValidationError marks a rejected input. Its message is user-facing.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationError(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// ParseQuestion trims and validates the user question.
func ParseQuestion(raw string) (string, error) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return "", validationError("Question cannot be empty")
	}
	if len(q) > MaxQuestionChars {
		return "", validationError("Question is too long (max %d characters)", MaxQuestionChars)
	}
	return q, nil
}

// ValidateDocument checks an uploaded file's declared type and size before
// any bytes are read or extraction is attempted.
func ValidateDocument(fh *multipart.FileHeader) error {
	contentType := strings.ToLower(strings.TrimSpace(strings.Split(fh.Header.Get("Content-Type"), ";")[0]))
	if contentType != extract.MimePDF {
		return validationError("Only PDF files are supported, got %q", fh.Filename)
	}
	if fh.Size <= 0 {
		return validationError("Uploaded file %q is empty", fh.Filename)
	}
	if fh.Size > MaxPDFBytes {
		return validationError("Uploaded file %q exceeds the %d MiB limit", fh.Filename, MaxPDFBytes>>20)
	}
	return nil
}
