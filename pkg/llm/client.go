package llm

import "context"

// Embedder maps text to a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Summarizer produces a completion for a system persona plus a user prompt.
// An empty completion is returned as ("", nil); callers decide whether that
// is acceptable.
type Summarizer interface {
	Summarize(ctx context.Context, system string, prompt string) (string, error)
}
