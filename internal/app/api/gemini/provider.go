package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"interview-ai/internal/app/llm"
)

// ProviderName is the registry name of the Gemini backend
const ProviderName = "gemini"

// Config holds Gemini connection settings
type Config struct {
	APIKey  string
	ModelID string
	// BaseURL overrides the Gemini API endpoint; empty keeps the SDK default
	BaseURL string
}

// Provider generates text with the Gemini Developer API.
type Provider struct {
	client *genai.Client
	model  string
}

// NewProvider creates a Gemini provider. httpClient carries the request timeout.
func NewProvider(ctx context.Context, config Config, httpClient *http.Client) (*Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini provider requires GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      config.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: config.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Provider{client: client, model: config.ModelID}, nil
}

// Name implements llm.Provider
func (p *Provider) Name() string {
	return ProviderName
}

// Model implements llm.Provider
func (p *Provider) Model() string {
	return p.model
}

// GenerateStructured implements llm.Provider using Gemini's JSON schema output mode.
func (p *Provider) GenerateStructured(ctx context.Context, prompt string, out interface{}, opts llm.Options) (*llm.Response, error) {
	schema, err := llm.SchemaFor(out)
	if err != nil {
		return nil, err
	}

	cfg := p.contentConfig(opts)
	cfg.ResponseMIMEType = "application/json"
	cfg.ResponseJsonSchema = schema

	resp, err := p.generate(ctx, prompt, cfg)
	if err != nil {
		return nil, err
	}
	if err := llm.Decode(schema, resp.Text, out); err != nil {
		return nil, llm.ParseError(ProviderName, err)
	}
	return resp, nil
}

func (p *Provider) contentConfig(opts llm.Options) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(opts.Temperature),
	}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if opts.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(opts.SystemPrompt, genai.RoleUser)
	}
	return cfg
}

func (p *Provider) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (*llm.Response, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, handleAPIError(err)
	}

	text := resp.Text()
	if text == "" {
		return nil, llm.ParseError(ProviderName, errors.New("response contained no text"))
	}

	result := &llm.Response{Text: text}
	if resp.UsageMetadata != nil {
		result.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		result.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return result, nil
}

func handleAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return llm.ErrorFromStatus(ProviderName, apiErr.Code, err)
	}
	return llm.ErrorFromTransport(ProviderName, err)
}
