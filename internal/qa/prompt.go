package qa

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"askpdf-backend/internal/llm"
)

// OffTopicReply is the verbatim sentence the model is told to use for vague
// or off-topic questions. The pipeline cannot enforce it; the normalizer
// still has to cope with whatever comes back.
const OffTopicReply = "Please ask a science or tech related question."

const withDocsTemplate = `You are a teaching assistant.
First, carefully analyze the provided PDF contents.
- If the answer to the user's question IS found in the PDFs:
  - Provide a concise answer.
  - Include up to 5 supporting contexts from the PDFs (verbatim excerpts).
  - Create a stepwise learning roadmap.

- If the answer is NOT in the PDFs:
  - Provide a concise answer anyway.
  - Suggest up to 5 relevant research papers or tech blogs (with title + link).
  - Generate a stepwise learning roadmap for that topic.
  - If the question is vague (e.g., "what is the meaning of my name?"), reply with:
    "` + OffTopicReply + `"

Respond strictly in JSON with keys:
{ "answer": string, "contexts": string[], "resources": {title, link}[], "roadmap": string[] }`

const noDocsTemplate = `You are a research assistant.
If the user question is related to science/tech:
- Provide a concise answer.
- Suggest up to 5 relevant papers or blogs with title + link (in JSON array).
- Create a learning roadmap if applicable.
If the question is vague (like 'what is the meaning of my name?'), reply with:
"` + OffTopicReply + `"
Respond strictly in JSON with keys: answer, resources, roadmap.`

// BuildAskPrompt assembles the single model request for a question plus zero
// or more extracted document texts. Pure data transformation: no validation,
// no network. Each excerpt is hard-cut at ExcerptBudget characters.
func BuildAskPrompt(question string, excerpts []string) llm.Prompt {
	if len(excerpts) == 0 {
		return llm.Prompt{Parts: []string{noDocsTemplate + "\nUser: " + question}}
	}
	parts := make([]string, 0, len(excerpts)+2)
	parts = append(parts, withDocsTemplate, "User Question: "+question)
	for i, text := range excerpts {
		parts = append(parts, fmt.Sprintf("PDF %d:\n%s", i+1, truncateText(text, ExcerptBudget)))
	}
	return llm.Prompt{Parts: parts}
}

// BuildRoadmapPrompt asks the model to regenerate a learning roadmap for a
// question, grounded on a previously returned resource list.
func BuildRoadmapPrompt(question string, resources []Resource) llm.Prompt {
	encoded, err := json.Marshal(resources)
	if err != nil {
		encoded = []byte("[]")
	}
	prompt := fmt.Sprintf(
		"Generate a roadmap with ordered steps for learning about: %s. Use these resources: %s.\n"+
			`Respond strictly in JSON with keys: { "roadmap": string[] }`,
		question, encoded)
	return llm.Prompt{Parts: []string{prompt}}
}

// truncateText cuts s at limit bytes, backing off so a multi-byte rune is
// never split. Not sentence-aware; accepted lossy behavior.
func truncateText(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
