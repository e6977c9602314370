package qa

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeMalformedInputNeverFails(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"not json at all",
		"{broken",
		"null",
		"42",
		`"just a string"`,
		`["an","array"]`,
		"```json\n{broken\n```",
	}
	for _, raw := range cases {
		got := Normalize(raw, ShapeWithPDF)
		if got.Answer != AnswerNoParse {
			t.Fatalf("raw %q: answer = %q, want %q", raw, got.Answer, AnswerNoParse)
		}
		if len(got.Contexts) != 0 || len(got.Resources) != 0 || len(got.Roadmap) != 0 {
			t.Fatalf("raw %q: expected all array fields empty, got %+v", raw, got)
		}
		if got.Contexts == nil || got.Resources == nil || got.Roadmap == nil {
			t.Fatalf("raw %q: slices must be non-nil", raw)
		}
	}
}

func TestNormalizeStripsMarkdownFence(t *testing.T) {
	raw := "```json\n{\"answer\":\"backprop\",\"contexts\":[],\"resources\":[],\"roadmap\":[]}\n```"
	got := Normalize(raw, ShapeWithPDF)
	if got.Answer != "backprop" {
		t.Fatalf("answer = %q, want backprop", got.Answer)
	}
}

func TestNormalizeMissingAnswerDefaults(t *testing.T) {
	got := Normalize(`{"contexts":["a"],"resources":[],"roadmap":[]}`, ShapeWithPDF)
	if got.Answer != AnswerNoAnswer {
		t.Fatalf("answer = %q, want %q", got.Answer, AnswerNoAnswer)
	}
	if !reflect.DeepEqual(got.Contexts, []string{"a"}) {
		t.Fatalf("contexts = %v", got.Contexts)
	}
}

func TestNormalizeCoercesNonStringValues(t *testing.T) {
	raw := `{"answer": 42, "contexts": [1, true, "x"], "resources": "nope", "roadmap": {"not":"array"}}`
	got := Normalize(raw, ShapeWithPDF)
	if got.Answer != "42" {
		t.Fatalf("answer = %q, want 42", got.Answer)
	}
	if !reflect.DeepEqual(got.Contexts, []string{"1", "true", "x"}) {
		t.Fatalf("contexts = %v", got.Contexts)
	}
	if len(got.Resources) != 0 {
		t.Fatalf("non-array resources should become empty, got %v", got.Resources)
	}
	if len(got.Roadmap) != 0 {
		t.Fatalf("non-array non-string roadmap should become empty, got %v", got.Roadmap)
	}
}

func TestNormalizeNoPdfShapeNeverPopulatesContexts(t *testing.T) {
	raw := `{"answer":"x","contexts":["should be ignored"],"resources":[],"roadmap":[]}`
	got := Normalize(raw, ShapeNoPDF)
	if len(got.Contexts) != 0 {
		t.Fatalf("noPdf shape must not populate contexts, got %v", got.Contexts)
	}
}

func TestNormalizeResourceDefaults(t *testing.T) {
	raw := `{"answer":"x","resources":[
		{"link":"https://example.com/a"},
		{"title":"Named","link":"ftp://example.com"},
		{"title":"Rooted","link":"/docs/intro"},
		"not an object",
		{"title":"Upper","link":"HTTPS://EXAMPLE.COM/B"}
	]}`
	got := Normalize(raw, ShapeNoPDF)
	if len(got.Resources) != 5 {
		t.Fatalf("expected 5 resources, got %d", len(got.Resources))
	}
	if got.Resources[0].Title != "Resource 1" || got.Resources[0].Link != "https://example.com/a" {
		t.Fatalf("missing title should default, got %+v", got.Resources[0])
	}
	if got.Resources[1].Link != "" {
		t.Fatalf("non-http scheme should be dropped, got %q", got.Resources[1].Link)
	}
	if got.Resources[2].Link != "/docs/intro" {
		t.Fatalf("root-relative link should be kept, got %q", got.Resources[2].Link)
	}
	if got.Resources[3].Title != "Resource 4" || got.Resources[3].Link != "" {
		t.Fatalf("non-object element should become a bare titled entry, got %+v", got.Resources[3])
	}
	if got.Resources[4].Link != "HTTPS://EXAMPLE.COM/B" {
		t.Fatalf("scheme check must be case-insensitive, got %q", got.Resources[4].Link)
	}
}

func TestNormalizeRoadmapFromString(t *testing.T) {
	raw := `{"answer":"x","roadmap":"Step one\nStep two, Step three,  ,\n"}`
	got := Normalize(raw, ShapeNoPDF)
	want := []string{"Step one", "Step two", "Step three"}
	if !reflect.DeepEqual(got.Roadmap, want) {
		t.Fatalf("roadmap = %v, want %v", got.Roadmap, want)
	}
}

func TestNormalizeRoadmapDropsEmptyItems(t *testing.T) {
	raw := `{"answer":"x","roadmap":["a", "  ", "", "b"]}`
	got := Normalize(raw, ShapeNoPDF)
	if !reflect.DeepEqual(got.Roadmap, []string{"a", "b"}) {
		t.Fatalf("roadmap = %v", got.Roadmap)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	cases := []QAResult{
		{
			Answer:    "Backpropagation is gradient descent through the chain rule.",
			Contexts:  []string{"chapter 4 excerpt", "chapter 5 excerpt"},
			Resources: []Resource{{Title: "Deep Learning", Link: "https://example.com/dl"}, {Title: "Resource 2", Link: ""}},
			Roadmap:   []string{"Learn calculus", "Implement a perceptron"},
		},
		{
			Answer:    AnswerNoParse,
			Contexts:  []string{},
			Resources: []Resource{},
			Roadmap:   []string{},
		},
		{
			Answer:    AnswerNoAnswer,
			Contexts:  []string{},
			Resources: []Resource{{Title: "Untitled link", Link: "/papers/1"}},
			Roadmap:   []string{"One step"},
		},
	}
	for _, r := range cases {
		serialized, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		got := Normalize(string(serialized), ShapeWithPDF)
		if !reflect.DeepEqual(got, r) {
			t.Fatalf("normalize not idempotent:\n in: %+v\nout: %+v", r, got)
		}
	}
}
