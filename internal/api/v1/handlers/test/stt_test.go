package test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"interview-ai/internal/api/v1/dto"
	"interview-ai/internal/app/api/provider"
	apperrors "interview-ai/internal/app/errors"
	"interview-ai/internal/app/testutil"
)

func TestSTTHandler_TranscribeURL(t *testing.T) {
	tests := []struct {
		name           string
		request        map[string]interface{}
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name: "successful transcription",
			request: map[string]interface{}{
				"user_id":    1,
				"session_id": 10,
				"audio_url":  "https://bucket.s3.amazonaws.com/audio/answer.mp3?X-Amz-Signature=abc",
			},
			setupMocks: func(ms *testutil.MockServices) {
				ms.STTService.On("TranscribeURL", mock.Anything, mock.MatchedBy(func(req *dto.STTRequest) bool {
					return req.UserID == 1 && req.SessionID == 10
				})).Return(&dto.STTData{UserID: 1, SessionID: 10, Text: testutil.SampleTranscript}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, dto.MessageSTTSuccess, body["message"])
				data := body["data"].(map[string]interface{})
				assert.Equal(t, float64(1), data["user_id"])
				assert.Equal(t, float64(10), data["session_id"])
				assert.Equal(t, testutil.SampleTranscript, data["text"])
			},
		},
		{
			name: "validation error - missing user id",
			request: map[string]interface{}{
				"session_id": 10,
				"audio_url":  "https://bucket.s3.amazonaws.com/answer.mp3",
			},
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "invalid_request", body["message"])
				assert.Nil(t, body["data"])
				details := body["details"].(map[string]interface{})
				assert.Equal(t, "is required", details["user_id"])
			},
		},
		{
			name: "validation error - unsupported extension",
			request: map[string]interface{}{
				"user_id":    1,
				"session_id": 10,
				"audio_url":  "https://bucket.s3.amazonaws.com/answer.wav",
			},
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				details := body["details"].(map[string]interface{})
				assert.Contains(t, details["audio_url"], ".mp3")
			},
		},
		{
			name: "audio not found",
			request: map[string]interface{}{
				"user_id":    1,
				"session_id": 10,
				"audio_url":  "s3://bucket/missing.m4a",
			},
			setupMocks: func(ms *testutil.MockServices) {
				ms.STTService.On("TranscribeURL", mock.Anything, mock.Anything).
					Return(nil, apperrors.NewCoded(apperrors.CodeAudioNotFound, "audio not found")).Once()
			},
			expectedStatus: http.StatusNotFound,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "audio_not_found", body["message"])
				assert.Nil(t, body["data"])
			},
		},
		{
			name: "provider timeout",
			request: map[string]interface{}{
				"user_id":    1,
				"session_id": 10,
				"audio_url":  "https://bucket.s3.amazonaws.com/answer.m4a",
			},
			setupMocks: func(ms *testutil.MockServices) {
				ms.STTService.On("TranscribeURL", mock.Anything, mock.Anything).
					Return(nil, provider.NewError("huggingface", apperrors.CodeSTTTimeout, "request timed out", nil)).Once()
			},
			expectedStatus: http.StatusRequestTimeout,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "stt_timeout", body["message"])
			},
		},
		{
			name: "empty transcript",
			request: map[string]interface{}{
				"user_id":    1,
				"session_id": 10,
				"audio_url":  "https://bucket.s3.amazonaws.com/answer.m4a",
			},
			setupMocks: func(ms *testutil.MockServices) {
				ms.STTService.On("TranscribeURL", mock.Anything, mock.Anything).
					Return(nil, provider.NewError("huggingface", apperrors.CodeAudioUnprocessable, "transcription returned no text", nil)).Once()
			},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "audio_unprocessable", body["message"])
			},
		},
	}

	for _, tt := range tests {
		for _, prefix := range prefixes {
			t.Run(tt.name+" "+prefix, func(t *testing.T) {
				router, mockServices := setupTestRouter(t)
				tt.setupMocks(mockServices)

				rec := postJSON(t, router, prefix+"/stt", tt.request)

				assert.Equal(t, tt.expectedStatus, rec.Code)
				tt.validateBody(t, decodeBody(t, rec))
				mockServices.AssertExpectations(t)
			})
		}
	}
}

func newUploadRequest(t *testing.T, fields map[string]string, fileName string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("audio", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stt", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestSTTHandler_TranscribeUpload(t *testing.T) {
	t.Run("successful upload", func(t *testing.T) {
		router, mockServices := setupTestRouter(t)
		mockServices.STTService.On("TranscribeUpload", mock.Anything, mock.MatchedBy(func(req *dto.STTUploadRequest) bool {
			return req.UserID == 3 && req.SessionID == 30 && req.Audio.Filename == "answer.m4a"
		})).Return(&dto.STTData{UserID: 3, SessionID: 30, Text: testutil.SampleTranscript}, nil).Once()

		req := newUploadRequest(t, map[string]string{"user_id": "3", "session_id": "30"}, "answer.m4a", []byte("m4a-bytes"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, dto.MessageSTTSuccess, body["message"])
		assert.Equal(t, testutil.SampleTranscript, body["data"].(map[string]interface{})["text"])
		mockServices.AssertExpectations(t)
	})

	t.Run("unsupported format", func(t *testing.T) {
		router, mockServices := setupTestRouter(t)

		req := newUploadRequest(t, map[string]string{"user_id": "3", "session_id": "30"}, "answer.ogg", []byte("ogg"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "invalid_request", decodeBody(t, rec)["message"])
		mockServices.STTService.AssertNotCalled(t, "TranscribeUpload", mock.Anything, mock.Anything)
	})

	t.Run("missing file", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		req := newUploadRequest(t, map[string]string{"user_id": "3", "session_id": "30"}, "", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
