package whisper_server

import (
	"fmt"
	"net/http"

	"interview-ai/internal/app/api/provider"
	"interview-ai/internal/config"
)

func init() {
	provider.RegisterProvider(ProviderName, createWhisperServerProvider)
}

func createWhisperServerProvider(cfg config.STTConfig, client *http.Client) (provider.TranscriptionProvider, error) {
	if cfg.GPUBaseURL == "" {
		return nil, fmt.Errorf("whisper_server provider requires GPU_BASE_URL")
	}

	return NewWhisperServerProvider(WhisperServerConfig{
		BaseURL:  cfg.GPUBaseURL,
		Language: cfg.Language,
	}, client), nil
}
