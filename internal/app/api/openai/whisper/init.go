package whisper

import (
	"fmt"
	"net/http"

	openaiclient "interview-ai/internal/app/api/openai"
	"interview-ai/internal/app/api/provider"
	"interview-ai/internal/config"
)

func init() {
	// Register openai provider with the factory
	provider.RegisterProvider(ProviderName, createOpenAIProvider)
}

// createOpenAIProvider creates an OpenAI Whisper provider from configuration
func createOpenAIProvider(cfg config.STTConfig, httpClient *http.Client) (provider.TranscriptionProvider, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
	}

	client := openaiclient.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, httpClient)
	return NewRemoteTranscriber(client, OpenAIProviderConfig{
		Model:    cfg.Model,
		Language: cfg.Language,
	}), nil
}
