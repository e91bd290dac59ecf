package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-ai/internal/api/middleware"
	"interview-ai/internal/api/v1/dto"
	"interview-ai/internal/api/v1/services"
)

// STTHandler handles speech-to-text endpoints
type STTHandler struct {
	service services.STTService
}

// NewSTTHandler creates a new STT handler
func NewSTTHandler(service services.STTService) *STTHandler {
	return &STTHandler{
		service: service,
	}
}

// Transcribe handles POST /api/v1/stt and POST /ai/v1/stt.
// JSON bodies reference stored audio by URL; multipart bodies carry the file.
//
// @Summary Transcribe interview audio
// @Description Converts an answer recording to text. Send JSON with audio_url (.mp3 or .m4a, http(s) presigned or s3://bucket/key) or multipart/form-data with an audio file.
// @Tags stt
// @Accept json,mpfd
// @Produce json
// @Param request body dto.STTRequest false "Audio stored at a URL"
// @Param user_id formData int false "User ID (multipart)"
// @Param session_id formData int false "Session ID (multipart)"
// @Param audio formData file false "Audio file (multipart)"
// @Success 200 {object} dto.Response{data=dto.STTData} "speech_to_text_success"
// @Failure 403 {object} errors.APIError "s3_access_forbidden or audio_download_failed"
// @Failure 404 {object} errors.APIError "audio_not_found"
// @Failure 408 {object} errors.APIError "audio_download_timeout or stt_timeout"
// @Failure 422 {object} errors.APIError "invalid_request or audio_unprocessable"
// @Failure 429 {object} errors.APIError "rate_limit_exceeded"
// @Failure 500 {object} errors.APIError "stt_conversion_failed"
// @Failure 502 {object} errors.APIError "stt_service_unavailable"
// @Router /stt [post]
func (h *STTHandler) Transcribe(c *gin.Context) {
	var (
		data *dto.STTData
		err  error
	)

	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		var req dto.STTUploadRequest
		if err := middleware.ValidateForm(c, &req); err != nil {
			middleware.HandleError(c, err)
			return
		}
		data, err = h.service.TranscribeUpload(c.Request.Context(), &req)
	} else {
		var req dto.STTRequest
		if err := middleware.ValidateRequest(c, &req); err != nil {
			middleware.HandleError(c, err)
			return
		}
		data, err = h.service.TranscribeURL(c.Request.Context(), &req)
	}

	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResponse(dto.MessageSTTSuccess, data))
}
