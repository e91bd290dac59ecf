package huggingface

import (
	"fmt"
	"net/http"

	"interview-ai/internal/app/api/provider"
	"interview-ai/internal/config"
)

func init() {
	provider.RegisterProvider(ProviderName, createProvider)
}

func createProvider(cfg config.STTConfig, client *http.Client) (provider.TranscriptionProvider, error) {
	if cfg.HuggingFaceAPIKey == "" {
		return nil, fmt.Errorf("huggingface provider requires HUGGINGFACE_API_KEY")
	}

	modelID := cfg.HuggingFaceModelID
	if modelID == "" {
		modelID = config.DefaultHuggingFaceModelID
	}

	return NewProvider(Config{
		APIKey:  cfg.HuggingFaceAPIKey,
		ModelID: modelID,
	}, client), nil
}
