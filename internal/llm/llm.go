package llm

import (
	"context"
	"errors"
)

// Prompt is an ordered list of text parts sent to the model in one turn.
// Keeping parts separate lets providers map them onto their own wire shape.
type Prompt struct {
	Parts []string
}

// Client abstracts hosted LLM providers. Generate returns the model's raw
// text reply; callers own parsing and normalization, because the reply is
// untrusted output that may or may not honor the requested shape.
type Client interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// ErrTimeout marks a client-side timeout waiting for the model, distinct from
// a malformed reply or transport failure.
var ErrTimeout = errors.New("llm request timeout")

// ErrNotConfigured is returned when no provider credentials were supplied.
var ErrNotConfigured = errors.New("LLM not configured")

// Unconfigured is the stand-in client used when no API key is present, so
// the server still boots and reports a clear error per request.
type Unconfigured struct{}

// Generate always returns ErrNotConfigured.
func (Unconfigured) Generate(ctx context.Context, prompt Prompt) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
