package chat

import (
	"fmt"
	"net/http"
	"strings"

	openaiclient "interview-ai/internal/app/api/openai"
	"interview-ai/internal/app/llm"
	"interview-ai/internal/config"
)

// vLLM ignores the key but the client always sends one.
const vllmAPIKey = "EMPTY"

func init() {
	llm.RegisterProvider(ProviderVLLM, createVLLMProvider)
	llm.RegisterProvider(ProviderOpenAI, createOpenAIProvider)
}

func createVLLMProvider(cfg config.LLMConfig, httpClient *http.Client) (llm.Provider, error) {
	if cfg.GPUBaseURL == "" {
		return nil, fmt.Errorf("vllm provider requires GPU_BASE_URL")
	}
	baseURL := strings.TrimRight(cfg.GPUBaseURL, "/") + "/v1"
	client := openaiclient.NewClient(vllmAPIKey, baseURL, httpClient)
	return NewProvider(ProviderVLLM, cfg.VLLMModelID, client), nil
}

func createOpenAIProvider(cfg config.LLMConfig, httpClient *http.Client) (llm.Provider, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
	}
	client := openaiclient.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, httpClient)
	return NewProvider(ProviderOpenAI, cfg.OpenAIModelID, client), nil
}
