package provider

import (
	"fmt"
	"path"
	"strings"
	"time"

	apperrors "interview-ai/internal/app/errors"
)

// AudioFormat defines supported audio formats
type AudioFormat string

const (
	FormatMP3 AudioFormat = "mp3"
	FormatM4A AudioFormat = "m4a"
	FormatMP4 AudioFormat = "mp4"
	FormatWAV AudioFormat = "wav"
)

// contentTypes maps each format to the MIME type sent to STT backends
var contentTypes = map[AudioFormat]string{
	FormatMP3: "audio/mpeg",
	FormatM4A: "audio/mp4",
	FormatMP4: "audio/mp4",
	FormatWAV: "audio/wav",
}

// TranscriptionRequest carries audio already loaded into memory
type TranscriptionRequest struct {
	Audio       []byte
	FileName    string
	ContentType string // derived from FileName when empty
	Language    string // e.g. "ko"; provider default when empty
}

// TranscriptionResponse represents the response from a transcription provider
type TranscriptionResponse struct {
	Text           string        `json:"text"`
	Language       string        `json:"language,omitempty"`
	Duration       time.Duration `json:"duration,omitempty"`
	ProcessingTime time.Duration `json:"processing_time,omitempty"`
	ModelUsed      string        `json:"model_used,omitempty"`
}

// TranscriptionError represents provider-specific errors
type TranscriptionError struct {
	Code      apperrors.Code `json:"code"`
	Message   string         `json:"message"`
	Provider  string         `json:"provider"`
	Retryable bool           `json:"retryable"`
	Cause     error          `json:"-"`
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// ErrorCode implements errors.Coded
func (e *TranscriptionError) ErrorCode() apperrors.Code {
	return e.Code
}

// Unwrap returns the underlying error
func (e *TranscriptionError) Unwrap() error {
	return e.Cause
}

// GetAudioFormatFromFilename extracts audio format from filename or URL path.
// Query strings are ignored.
func GetAudioFormatFromFilename(filename string) AudioFormat {
	if i := strings.IndexAny(filename, "?#"); i >= 0 {
		filename = filename[:i]
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	format := AudioFormat(ext)
	if _, ok := contentTypes[format]; ok {
		return format
	}
	return ""
}

// ContentTypeFor returns the MIME type for filename, falling back to
// application/octet-stream for unknown extensions.
func ContentTypeFor(filename string) string {
	if ct, ok := contentTypes[GetAudioFormatFromFilename(filename)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ResolveContentType returns request.ContentType or the type derived from its file name.
func (r *TranscriptionRequest) ResolveContentType() string {
	if r.ContentType != "" {
		return r.ContentType
	}
	return ContentTypeFor(r.FileName)
}
