package services

import (
	"context"

	"interview-ai/internal/api/v1/dto"
)

// STTService defines the interface for speech-to-text operations
type STTService interface {
	TranscribeURL(ctx context.Context, req *dto.STTRequest) (*dto.STTData, error)
	TranscribeUpload(ctx context.Context, req *dto.STTUploadRequest) (*dto.STTData, error)
}

// FeedbackService defines the interface for interview feedback operations
type FeedbackService interface {
	Generate(ctx context.Context, req *dto.FeedbackRequest) (*dto.FeedbackData, error)
}
