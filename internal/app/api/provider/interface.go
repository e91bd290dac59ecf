package provider

import (
	"context"
)

// TranscriptionProvider turns audio bytes into text.
// Implementations classify upstream failures as *TranscriptionError.
type TranscriptionProvider interface {
	// Transcribe sends the audio in request to the backend and returns its transcript
	Transcribe(ctx context.Context, request *TranscriptionRequest) (*TranscriptionResponse, error)

	// Name returns the provider's registry name
	Name() string

	// HealthCheck verifies the backend is reachable
	HealthCheck(ctx context.Context) error
}
