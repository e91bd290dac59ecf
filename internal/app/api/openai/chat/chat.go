package chat

import (
	"context"
	"errors"
	"math"

	"github.com/sashabaranov/go-openai"

	openaiclient "interview-ai/internal/app/api/openai"
	"interview-ai/internal/app/llm"
)

const (
	// ProviderVLLM is the registry name for a self-hosted vLLM server
	ProviderVLLM = "vllm"
	// ProviderOpenAI is the registry name for the OpenAI API
	ProviderOpenAI = "openai"

	schemaName = "interview_response"
)

// Provider talks to any OpenAI-compatible chat completions endpoint.
type Provider struct {
	client *openai.Client
	name   string
	model  string
}

// NewProvider creates a chat provider registered under name that sends model upstream.
func NewProvider(name, model string, client *openai.Client) *Provider {
	return &Provider{client: client, name: name, model: model}
}

// Name implements llm.Provider
func (p *Provider) Name() string {
	return p.name
}

// Model implements llm.Provider
func (p *Provider) Model() string {
	return p.model
}

// GenerateStructured implements llm.Provider. The JSON schema of out is sent as
// response_format and the reply is validated against it locally. Strict mode is
// off because it rejects optional properties.
func (p *Provider) GenerateStructured(ctx context.Context, prompt string, out interface{}, opts llm.Options) (*llm.Response, error) {
	schema, err := llm.SchemaFor(out)
	if err != nil {
		return nil, err
	}

	req := p.buildRequest(prompt, opts)
	req.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   schemaName,
			Schema: schema,
		},
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, p.handleAPIError(err)
	}

	result, err := p.toResponse(resp)
	if err != nil {
		return nil, err
	}
	if err := llm.Decode(schema, result.Text, out); err != nil {
		return nil, llm.ParseError(p.name, err)
	}
	return result, nil
}

func (p *Provider) buildRequest(prompt string, opts llm.Options) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if opts.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: opts.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	return openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: temperature(opts.Temperature),
	}
}

func (p *Provider) toResponse(resp openai.ChatCompletionResponse) (*llm.Response, error) {
	if len(resp.Choices) == 0 {
		return nil, llm.ParseError(p.name, errors.New("response contained no choices"))
	}
	return &llm.Response{
		Text:             resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}

func (p *Provider) handleAPIError(err error) error {
	if status, ok := openaiclient.StatusCode(err); ok {
		return llm.ErrorFromStatus(p.name, status, err)
	}
	return llm.ErrorFromTransport(p.name, err)
}

// temperature maps 0 to the smallest positive float so go-openai does not
// drop the field and fall back to the server default.
func temperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
