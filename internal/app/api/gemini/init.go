package gemini

import (
	"context"
	"net/http"

	"interview-ai/internal/app/llm"
	"interview-ai/internal/config"
)

func init() {
	llm.RegisterProvider(ProviderName, createGeminiProvider)
}

func createGeminiProvider(cfg config.LLMConfig, httpClient *http.Client) (llm.Provider, error) {
	modelID := cfg.GeminiModelID
	if modelID == "" {
		modelID = config.DefaultGeminiModelID
	}
	return NewProvider(context.Background(), Config{
		APIKey:  cfg.GeminiAPIKey,
		ModelID: modelID,
	}, httpClient)
}
