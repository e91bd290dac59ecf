package dto

import (
	"mime/multipart"
	"net/url"
	"path"
	"strings"

	"github.com/samber/lo"

	"interview-ai/internal/api/errors"
	"interview-ai/internal/app/api/provider"
)

// URL-based requests are limited to the formats the client app records.
var allowedURLExtensions = []string{".mp3", ".m4a"}

var allowedURLSchemes = []string{"http", "https", "s3"}

// STTRequest asks for the transcription of audio stored at AudioURL
type STTRequest struct {
	UserID    int64  `json:"user_id" binding:"required" example:"1"`
	SessionID int64  `json:"session_id" binding:"required" example:"10"`
	AudioURL  string `json:"audio_url" binding:"required" example:"https://bucket.s3.ap-northeast-2.amazonaws.com/audio/answer.mp3?X-Amz-Signature=abc"`
}

// Validate performs domain-specific validation
func (r *STTRequest) Validate() error {
	validationErrors := make(map[string]string)

	u, err := url.Parse(r.AudioURL)
	switch {
	case err != nil || u.Host == "":
		validationErrors["audio_url"] = "must be an absolute URL"
	case !lo.Contains(allowedURLSchemes, strings.ToLower(u.Scheme)):
		validationErrors["audio_url"] = "scheme must be http, https or s3"
	case !lo.Contains(allowedURLExtensions, strings.ToLower(path.Ext(u.Path))):
		validationErrors["audio_url"] = "audio_url must end with .mp3, .m4a"
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid STT request", validationErrors)
	}
	return nil
}

// STTUploadRequest carries audio uploaded as multipart/form-data
type STTUploadRequest struct {
	UserID    int64                 `form:"user_id" binding:"required"`
	SessionID int64                 `form:"session_id" binding:"required"`
	Audio     *multipart.FileHeader `form:"audio" binding:"required" swaggerignore:"true"`
}

// Validate performs domain-specific validation
func (r *STTUploadRequest) Validate() error {
	if r.Audio == nil || provider.GetAudioFormatFromFilename(r.Audio.Filename) == "" {
		return errors.NewValidationError("Invalid STT upload", map[string]string{
			"audio": "unsupported audio format",
		})
	}
	return nil
}

// STTData is the transcription result
type STTData struct {
	UserID    int64  `json:"user_id" example:"1"`
	SessionID int64  `json:"session_id" example:"10"`
	Text      string `json:"text" example:"프로세스는 독립된 메모리 공간을 가집니다."`
}
