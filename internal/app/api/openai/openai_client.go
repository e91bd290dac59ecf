package openai

import (
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// NewClient creates a client for the OpenAI API or any OpenAI-compatible
// server such as vLLM. An empty baseURL keeps the library default.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *openai.Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	if httpClient != nil {
		clientConfig.HTTPClient = httpClient
	}
	return openai.NewClientWithConfig(clientConfig)
}

// StatusCode extracts the upstream HTTP status from a go-openai error.
func StatusCode(err error) (int, bool) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return apiErr.HTTPStatusCode, true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return reqErr.HTTPStatusCode, true
	}
	return 0, false
}
