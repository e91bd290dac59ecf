package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"interview-ai/internal/app/api/provider"
	apperrors "interview-ai/internal/app/errors"
)

// ProviderName is the registry name of the Hugging Face inference backend
const ProviderName = "huggingface"

// DefaultBaseURL is the Hugging Face inference router
const DefaultBaseURL = "https://router.huggingface.co/hf-inference/models"

// Config configures the Hugging Face provider
type Config struct {
	APIKey  string
	ModelID string // e.g. "openai/whisper-large-v3-turbo"
	BaseURL string // default DefaultBaseURL
}

// Provider sends raw audio bytes to a hosted whisper model
type Provider struct {
	config Config
	client *http.Client
}

type inferenceResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// NewProvider creates a Hugging Face provider
func NewProvider(config Config, client *http.Client) *Provider {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Provider{config: config, client: client}
}

// Name implements provider.TranscriptionProvider
func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) modelURL() string {
	return p.config.BaseURL + "/" + p.config.ModelID
}

// Transcribe posts the audio body with a content type taken from the file extension.
// The inference API picks the language itself.
func (p *Provider) Transcribe(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	startTime := time.Now()

	if len(request.Audio) == 0 {
		return nil, provider.NewError(ProviderName, apperrors.CodeAudioUnprocessable, "audio is empty", nil)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.modelURL(), bytes.NewReader(request.Audio))
	if err != nil {
		return nil, provider.NewError(ProviderName, apperrors.CodeSTTConversionFailed,
			"failed to create HTTP request", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	httpReq.Header.Set("Content-Type", request.ResolveContentType())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, provider.ErrorFromTransport(ProviderName, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.ErrorFromTransport(ProviderName, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, provider.ErrorFromStatus(ProviderName, resp.StatusCode, data)
	}

	var result inferenceResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, provider.NewError(ProviderName, apperrors.CodeSTTConversionFailed,
			"failed to parse response", err)
	}
	if result.Error != "" {
		return nil, provider.NewError(ProviderName, apperrors.CodeSTTConversionFailed,
			fmt.Sprintf("inference error: %s", result.Error), nil)
	}

	return &provider.TranscriptionResponse{
		Text:           strings.TrimSpace(result.Text),
		ProcessingTime: time.Since(startTime),
		ModelUsed:      p.config.ModelID,
	}, nil
}

// HealthCheck verifies the model endpoint answers and the token is accepted
func (p *Provider) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.modelURL(), nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("huggingface connectivity test failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode >= 500 {
		return fmt.Errorf("huggingface returned status %d", resp.StatusCode)
	}
	return nil
}
