package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"
)

// MimePDF is the only media type accepted for uploads.
const MimePDF = "application/pdf"

// TextFromPDF extracts plain text from an in-memory PDF payload using
// github.com/ledongthuc/pdf. Empty output is not an error: scanned or
// image-only PDFs legitimately yield no text.
func TextFromPDF(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("extract pdf: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("extract pdf: %w", err)
	}
	return buf.String(), nil
}

// All extracts every document concurrently and joins before returning.
// Results keep the input order. The first extraction failure fails the whole
// batch; partial results are never returned.
func All(ctx context.Context, docs [][]byte) ([]string, error) {
	texts := make([]string, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	for i, data := range docs {
		g.Go(func() error {
			text, err := TextFromPDF(ctx, data)
			if err != nil {
				return fmt.Errorf("document %d: %w", i+1, err)
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return texts, nil
}
