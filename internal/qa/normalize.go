package qa

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Fallback answers used when the model reply cannot be used as-is.
const (
	AnswerNoParse  = "No response parsed"
	AnswerNoAnswer = "No answer provided"
)

// Normalize projects a raw model reply onto a well-formed QAResult. It is a
// total function: any input, including garbage, yields a valid result. The
// reply is untrusted external output, so every field is optional until
// proven present. Normalizing an already-normalized result re-fed as raw
// JSON yields an equal result.
func Normalize(raw string, shape Shape) QAResult {
	result := QAResult{
		Answer:    AnswerNoParse,
		Contexts:  []string{},
		Resources: []Resource{},
		Roadmap:   []string{},
	}

	top, ok := parseObject(raw)
	if !ok {
		return result
	}

	result.Answer = strings.TrimSpace(stringify(top["answer"]))
	if result.Answer == "" {
		result.Answer = AnswerNoAnswer
	}
	if shape == ShapeWithPDF {
		result.Contexts = stringSlice(top["contexts"])
	}
	result.Resources = resourceSlice(top["resources"])
	result.Roadmap = RoadmapSteps(top["roadmap"])
	return result
}

// parseObject parses raw as a JSON object, tolerating the Markdown code
// fences Gemini likes to wrap JSON in. Non-object JSON (null, arrays,
// scalars) counts as a parse failure.
func parseObject(raw string) (map[string]any, bool) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))
	var top map[string]any
	if err := json.Unmarshal([]byte(cleaned), &top); err != nil || top == nil {
		return nil, false
	}
	return top, true
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		// Drop the language tag line ("json" etc).
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// stringify coerces any JSON value to a string. Objects and arrays become
// their JSON text; nil becomes empty.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}

func stringSlice(value any) []string {
	arr, ok := value.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		out = append(out, stringify(item))
	}
	return out
}

func resourceSlice(value any) []Resource {
	arr, ok := value.([]any)
	if !ok {
		return []Resource{}
	}
	out := make([]Resource, 0, len(arr))
	for i, item := range arr {
		entry, _ := item.(map[string]any)
		title := strings.TrimSpace(stringify(entry["title"]))
		if title == "" {
			title = fmt.Sprintf("Resource %d", i+1)
		}
		link := strings.TrimSpace(stringify(entry["link"]))
		if !validLink(link) {
			link = ""
		}
		out = append(out, Resource{Title: title, Link: link})
	}
	return out
}

// validLink accepts absolute http(s) URLs and root-relative paths; anything
// else (javascript:, mailto:, bare text) is treated as no link at all.
func validLink(link string) bool {
	lower := strings.ToLower(link)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(link, "/")
}

// RoadmapSteps coerces a roadmap value into ordered step strings. Arrays are
// taken element-wise; a single string is split on newlines and commas, the
// degraded form some replies use. Empty items are dropped.
func RoadmapSteps(value any) []string {
	switch v := value.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if step := strings.TrimSpace(stringify(item)); step != "" {
				out = append(out, step)
			}
		}
		return out
	case string:
		return splitSteps(v)
	default:
		return []string{}
	}
}

func splitSteps(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ','
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if step := strings.TrimSpace(f); step != "" {
			out = append(out, step)
		}
	}
	return out
}
