package whisper

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	openaiclient "interview-ai/internal/app/api/openai"
	"interview-ai/internal/app/api/provider"
	apperrors "interview-ai/internal/app/errors"
)

// ProviderName is the registry name of the OpenAI-compatible transcription backend
const ProviderName = "openai"

// OpenAIProviderConfig represents configuration specific to OpenAI Whisper provider
type OpenAIProviderConfig struct {
	Model    string
	Language string
}

// RemoteTranscriber implements remote transcription using an OpenAI-compatible
// /audio/transcriptions endpoint.
type RemoteTranscriber struct {
	client *openai.Client
	config OpenAIProviderConfig
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, config OpenAIProviderConfig) *RemoteTranscriber {
	if config.Model == "" {
		config.Model = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, config: config}
}

// Name implements provider.TranscriptionProvider
func (rt *RemoteTranscriber) Name() string {
	return ProviderName
}

// Transcribe streams the in-memory audio to the transcription endpoint.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	startTime := time.Now()

	if len(request.Audio) == 0 {
		return nil, provider.NewError(ProviderName, apperrors.CodeAudioUnprocessable, "audio is empty", nil)
	}

	language := request.Language
	if language == "" {
		language = rt.config.Language
	}

	fileName := request.FileName
	if fileName == "" {
		fileName = "audio.mp4"
	}

	resp, err := rt.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    rt.config.Model,
		FilePath: fileName,
		Reader:   bytes.NewReader(request.Audio),
		Language: language,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return nil, handleAPIError(err)
	}

	return &provider.TranscriptionResponse{
		Text:           strings.TrimSpace(resp.Text),
		Language:       language,
		Duration:       time.Duration(resp.Duration * float64(time.Second)),
		ProcessingTime: time.Since(startTime),
		ModelUsed:      rt.config.Model,
	}, nil
}

// HealthCheck lists models to confirm the endpoint and key are usable
func (rt *RemoteTranscriber) HealthCheck(ctx context.Context) error {
	if _, err := rt.client.ListModels(ctx); err != nil {
		return handleAPIError(err)
	}
	return nil
}

// handleAPIError converts OpenAI API errors to TranscriptionError
func handleAPIError(err error) error {
	if status, ok := openaiclient.StatusCode(err); ok {
		tErr := provider.ErrorFromStatus(ProviderName, status, []byte(err.Error()))
		tErr.Cause = err
		return tErr
	}
	return provider.ErrorFromTransport(ProviderName, err)
}
