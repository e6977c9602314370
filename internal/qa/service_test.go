package qa

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type failingSource struct{}

func (failingSource) Search(ctx context.Context, query string) ([]Resource, error) {
	return nil, errors.New("connection refused")
}

func TestAskSwallowsFailingSources(t *testing.T) {
	model := &stubLLM{reply: `{"answer":"x","resources":[{"title":"From model","link":"https://m"}],"roadmap":[]}`}
	working := &stubSource{resources: []Resource{{Title: "Found", Link: "https://found"}}}
	svc := &Service{
		LLM:     model,
		Sources: []ResourceSource{failingSource{}, working},
	}

	result, err := svc.Ask(context.Background(), "what are transformers?", nil)
	if err != nil {
		t.Fatalf("a failing source must never fail the request: %v", err)
	}
	want := []Resource{
		{Title: "From model", Link: "https://m"},
		{Title: "Found", Link: "https://found"},
	}
	if !reflect.DeepEqual(result.Resources, want) {
		t.Fatalf("resources = %v, want %v", result.Resources, want)
	}
}

func TestSearchAllKeepsSourceOrder(t *testing.T) {
	first := &stubSource{resources: []Resource{{Title: "first"}}}
	second := &stubSource{resources: []Resource{{Title: "second"}}}
	svc := &Service{Sources: []ResourceSource{first, second}}

	results := svc.searchAll(context.Background(), "q")
	if len(results) != 2 {
		t.Fatalf("expected 2 result sets, got %d", len(results))
	}
	if results[0][0].Title != "first" || results[1][0].Title != "second" {
		t.Fatalf("results out of source order: %v", results)
	}
}

func TestRoadmapValidatesQuestion(t *testing.T) {
	model := &stubLLM{reply: `{"roadmap":["x"]}`}
	svc := &Service{LLM: model}

	_, err := svc.Roadmap(context.Background(), "   ", nil)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if model.calls != 0 {
		t.Fatalf("model must not be called for an empty question")
	}
}
