package llm

import (
	"context"
)

// Options tune a single generation call
type Options struct {
	// Task names the pipeline step ("analyzer", "rubric", "feedback") for metrics
	Task         string
	SystemPrompt string
	Temperature  float32
	MaxTokens    int
}

// Response carries generated text and token usage
type Response struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// Provider generates structured replies from a prompt. Implementations return
// *Error on failure.
type Provider interface {
	// GenerateStructured asks for JSON matching the schema of out and decodes into it.
	// out must be a pointer to a struct.
	GenerateStructured(ctx context.Context, prompt string, out interface{}, opts Options) (*Response, error)

	// Name returns the provider's registry name
	Name() string

	// Model returns the model identifier sent upstream
	Model() string
}
