package whisper_server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"interview-ai/internal/app/api/provider"
	apperrors "interview-ai/internal/app/errors"
)

// ProviderName is the registry name of the GPU whisper server backend
const ProviderName = "whisper_server"

const (
	sttPath          = "/whisper/stt"
	healthPath       = "/health"
	defaultModelName = "whisper-large-v3-turbo"
	defaultFileName  = "audio.mp4"
)

// WhisperServerProvider implements transcription via HTTP to a GPU whisper server
type WhisperServerProvider struct {
	config WhisperServerConfig
	client *http.Client
}

// WhisperServerConfig represents configuration for the whisper server HTTP API
type WhisperServerConfig struct {
	BaseURL  string // e.g. "http://gpu-host:8080"
	Language string // default language code
}

// WhisperServerResponse represents the response from the whisper server
type WhisperServerResponse struct {
	Text             string  `json:"text"`
	Duration         float64 `json:"duration,omitempty"`
	ProcessingTimeMs float64 `json:"processing_time_ms,omitempty"`
}

// NewWhisperServerProvider creates a new whisper server HTTP provider
func NewWhisperServerProvider(config WhisperServerConfig, client *http.Client) *WhisperServerProvider {
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}

	return &WhisperServerProvider{
		config: config,
		client: client,
	}
}

// Name implements provider.TranscriptionProvider
func (wsp *WhisperServerProvider) Name() string {
	return ProviderName
}

// Transcribe posts the audio as multipart field "audio" with a "language" field
func (wsp *WhisperServerProvider) Transcribe(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	startTime := time.Now()

	if len(request.Audio) == 0 {
		return nil, provider.NewError(ProviderName, apperrors.CodeAudioUnprocessable, "audio is empty", nil)
	}

	language := request.Language
	if language == "" {
		language = wsp.config.Language
	}

	body, contentType, err := wsp.createMultipartForm(request, language)
	if err != nil {
		return nil, provider.NewError(ProviderName, apperrors.CodeSTTConversionFailed,
			"failed to create multipart form", err)
	}

	url := wsp.config.BaseURL + sttPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, provider.NewError(ProviderName, apperrors.CodeSTTConversionFailed,
			"failed to create HTTP request", err)
	}

	httpReq.Header.Set("Content-Type", contentType)

	resp, err := wsp.client.Do(httpReq)
	if err != nil {
		return nil, provider.ErrorFromTransport(ProviderName, err)
	}
	defer resp.Body.Close()

	responseData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.ErrorFromTransport(ProviderName, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, provider.ErrorFromStatus(ProviderName, resp.StatusCode, responseData)
	}

	var result WhisperServerResponse
	if err := json.Unmarshal(responseData, &result); err != nil {
		return nil, provider.NewError(ProviderName, apperrors.CodeSTTConversionFailed,
			"failed to parse response", err)
	}

	return &provider.TranscriptionResponse{
		Text:           strings.TrimSpace(result.Text),
		Language:       language,
		Duration:       time.Duration(result.Duration * float64(time.Second)),
		ProcessingTime: time.Since(startTime),
		ModelUsed:      defaultModelName,
	}, nil
}

// createMultipartForm creates the multipart form for the API request
func (wsp *WhisperServerProvider) createMultipartForm(request *provider.TranscriptionRequest, language string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	filename := request.FileName
	if filename == "" {
		filename = defaultFileName
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio"; filename="%s"`, escapeQuotes(filename)))
	header.Set("Content-Type", request.ResolveContentType())
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(request.Audio); err != nil {
		return nil, "", fmt.Errorf("failed to copy audio content: %w", err)
	}

	if language != "" {
		if err := writer.WriteField("language", language); err != nil {
			return nil, "", fmt.Errorf("failed to write field language: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// HealthCheck reports whether the GPU server answers GET /health
func (wsp *WhisperServerProvider) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wsp.config.BaseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := wsp.client.Do(req)
	if err != nil {
		return fmt.Errorf("server connectivity test failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("server returned error status: %d", resp.StatusCode)
	}

	return nil
}
