package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"interview-ai/internal/api/v1/dto"
	"interview-ai/internal/app/api/provider"
	"interview-ai/internal/app/audio"
	apperrors "interview-ai/internal/app/errors"
	"interview-ai/internal/app/metrics"
)

// STTServiceImpl implements STTService
type STTServiceImpl struct {
	provider provider.TranscriptionProvider
	fetcher  *audio.Fetcher
	recorder *metrics.Recorder
	language string
	logger   *zap.Logger
}

// NewSTTService creates a new speech-to-text service. recorder may be nil.
func NewSTTService(
	transcriber provider.TranscriptionProvider,
	fetcher *audio.Fetcher,
	recorder *metrics.Recorder,
	language string,
	logger *zap.Logger,
) STTService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &STTServiceImpl{
		provider: transcriber,
		fetcher:  fetcher,
		recorder: recorder,
		language: language,
		logger:   logger,
	}
}

// TranscribeURL downloads the audio at req.AudioURL and transcribes it
func (s *STTServiceImpl) TranscribeURL(ctx context.Context, req *dto.STTRequest) (*dto.STTData, error) {
	clip, err := s.fetcher.Fetch(ctx, req.AudioURL)
	if err != nil {
		return nil, err
	}
	return s.transcribe(ctx, req.UserID, req.SessionID, clip)
}

// TranscribeUpload transcribes audio sent as a multipart file
func (s *STTServiceImpl) TranscribeUpload(ctx context.Context, req *dto.STTUploadRequest) (*dto.STTData, error) {
	file, err := req.Audio.Open()
	if err != nil {
		return nil, apperrors.WrapCoded(err, apperrors.CodeAudioUnprocessable, "failed to open uploaded audio")
	}
	defer file.Close()

	clip, err := s.fetcher.Read(file, req.Audio.Filename)
	if err != nil {
		return nil, err
	}
	return s.transcribe(ctx, req.UserID, req.SessionID, clip)
}

func (s *STTServiceImpl) transcribe(ctx context.Context, userID, sessionID int64, clip *audio.Audio) (*dto.STTData, error) {
	log := s.logger.With(zap.Int64("user_id", userID), zap.Int64("session_id", sessionID))

	start := time.Now()
	resp, err := s.provider.Transcribe(ctx, &provider.TranscriptionRequest{
		Audio:       clip.Data,
		FileName:    clip.FileName,
		ContentType: clip.ContentType,
		Language:    s.language,
	})

	var text string
	if err == nil {
		text = strings.TrimSpace(resp.Text)
		if text == "" {
			err = provider.NewError(s.provider.Name(), apperrors.CodeAudioUnprocessable,
				"transcription returned no text", nil)
		}
	}

	s.recorder.RecordSTT(metrics.STTCall{
		Provider:   s.provider.Name(),
		AudioBytes: len(clip.Data),
		TextChars:  len([]rune(text)),
		Latency:    time.Since(start),
		Err:        err,
	})

	if err != nil {
		log.Error("transcription failed", zap.String("file_name", clip.FileName), zap.Error(err))
		return nil, err
	}

	log.Info("transcription completed", zap.Int("text_chars", len([]rune(text))))
	return &dto.STTData{UserID: userID, SessionID: sessionID, Text: text}, nil
}
