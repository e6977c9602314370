package qa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"askpdf-backend/internal/extract"
	"askpdf-backend/internal/llm"
	"askpdf-backend/internal/shared/telemetry"
)

// ErrExtract marks a PDF text extraction failure, so the handler can report
// it distinctly from a model failure.
var ErrExtract = errors.New("failed to extract text from document")

// ResourceSource finds external resources for a query. Implementations fail
// with an error; the pipeline swallows it and treats the source as empty.
type ResourceSource interface {
	Search(ctx context.Context, query string) ([]Resource, error)
}

// Service runs the question-answering pipeline: extract, prompt, call the
// model, normalize, and (without documents) blend in external search results.
// Stateless; every value is request-scoped.
type Service struct {
	LLM     llm.Client
	Sources []ResourceSource

	// Extract overrides document text extraction; nil means extract.All.
	Extract func(ctx context.Context, docs [][]byte) ([]string, error)
}

// Ask answers one question against zero or more uploaded PDFs. Documents are
// extracted concurrently and joined before the single model round trip. The
// returned QAResult is always well-formed when err is nil.
func (s *Service) Ask(ctx context.Context, question string, docs [][]byte) (QAResult, error) {
	q, err := ParseQuestion(question)
	if err != nil {
		return QAResult{}, err
	}

	extractAll := s.Extract
	if extractAll == nil {
		extractAll = extract.All
	}
	texts, err := extractAll(ctx, docs)
	if err != nil {
		return QAResult{}, fmt.Errorf("%w: %v", ErrExtract, err)
	}

	raw, err := s.LLM.Generate(ctx, BuildAskPrompt(q, texts))
	if err != nil {
		return QAResult{}, err
	}

	shape := ShapeNoPDF
	if len(docs) > 0 {
		shape = ShapeWithPDF
	}
	result := Normalize(raw, shape)

	// Only the no-documents path consults external paper search; with
	// documents the answer is grounded in the uploads.
	if len(docs) == 0 && len(s.Sources) > 0 {
		result.Resources = AggregateResources(result.Resources, s.searchAll(ctx, q)...)
	}
	return result, nil
}

// Roadmap regenerates an ordered learning roadmap for a question, reusing a
// previously returned resource list as grounding.
func (s *Service) Roadmap(ctx context.Context, question string, resources []Resource) ([]string, error) {
	q, err := ParseQuestion(question)
	if err != nil {
		return nil, err
	}

	raw, err := s.LLM.Generate(ctx, BuildRoadmapPrompt(q, resources))
	if err != nil {
		return nil, err
	}
	return roadmapFromRaw(raw), nil
}

// searchAll queries every source concurrently. A failing source contributes
// zero results and never fails the request. Result order follows the
// configured source order, not completion order.
func (s *Service) searchAll(ctx context.Context, query string) [][]Resource {
	results := make([][]Resource, len(s.Sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, source := range s.Sources {
		g.Go(func() error {
			found, err := source.Search(ctx, query)
			if err != nil {
				telemetry.Error("search.source.failed", map[string]any{
					"source": fmt.Sprintf("%T", source),
					"err":    err.Error(),
				})
				return nil
			}
			results[i] = found
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// roadmapFromRaw accepts the roadmap reply in any of the shapes the model
// produces: a JSON object with a roadmap key, a bare JSON array, or loose
// text taken line by line. Total function, like Normalize.
func roadmapFromRaw(raw string) []string {
	cleaned := stripCodeFence(strings.TrimSpace(raw))

	if top, ok := parseObject(cleaned); ok {
		return RoadmapSteps(top["roadmap"])
	}

	var arr []any
	if err := json.Unmarshal([]byte(cleaned), &arr); err == nil {
		return RoadmapSteps(arr)
	}

	steps := make([]string, 0, 8)
	for _, line := range strings.Split(cleaned, "\n") {
		if step := strings.TrimSpace(line); step != "" {
			steps = append(steps, step)
		}
	}
	return steps
}
