package services_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"interview-ai/internal/api/v1/dto"
	"interview-ai/internal/api/v1/services"
	"interview-ai/internal/app/api/provider"
	"interview-ai/internal/app/audio"
	apperrors "interview-ai/internal/app/errors"
	"interview-ai/internal/app/metrics"
	mocks "interview-ai/internal/app/testutil"
)

func newAudioServer(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func newSTTService(t *testing.T, recorder *metrics.Recorder) (services.STTService, *mocks.MockTranscriptionProvider) {
	t.Helper()
	transcriber := mocks.NewMockTranscriptionProvider(t)
	fetcher := audio.NewFetcher(nil, nil, 1<<20, 5*time.Second, nil)
	return services.NewSTTService(transcriber, fetcher, recorder, "ko", nil), transcriber
}

func TestSTTService_TranscribeURL(t *testing.T) {
	server := newAudioServer(t, http.StatusOK, []byte("fake-mp3"))
	recorder := metrics.New(nil)
	svc, transcriber := newSTTService(t, recorder)

	transcriber.On("Transcribe", mock.Anything, mock.MatchedBy(func(req *provider.TranscriptionRequest) bool {
		return string(req.Audio) == "fake-mp3" &&
			req.FileName == "answer.mp3" &&
			req.ContentType == "audio/mpeg" &&
			req.Language == "ko"
	})).Return(&provider.TranscriptionResponse{Text: "  " + mocks.SampleTranscript + "\n"}, nil).Once()

	data, err := svc.TranscribeURL(context.Background(), &dto.STTRequest{
		UserID:    1,
		SessionID: 10,
		AudioURL:  server.URL + "/audio/answer.mp3?X-Amz-Signature=abc",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), data.UserID)
	assert.Equal(t, int64(10), data.SessionID)
	assert.Equal(t, mocks.SampleTranscript, data.Text)
	transcriber.AssertExpectations(t)

	count, err := testutil.GatherAndCount(recorder.Registry(), "interview_ai_stt_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSTTService_TranscribeURL_AudioNotFound(t *testing.T) {
	server := newAudioServer(t, http.StatusNotFound, nil)
	svc, transcriber := newSTTService(t, nil)

	_, err := svc.TranscribeURL(context.Background(), &dto.STTRequest{
		UserID: 1, SessionID: 10, AudioURL: server.URL + "/missing.m4a",
	})

	var coded apperrors.Coded
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, apperrors.CodeAudioNotFound, coded.ErrorCode())
	transcriber.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything)
}

func TestSTTService_EmptyTranscript(t *testing.T) {
	server := newAudioServer(t, http.StatusOK, []byte("silence"))
	svc, transcriber := newSTTService(t, nil)
	transcriber.On("Transcribe", mock.Anything, mock.Anything).
		Return(&provider.TranscriptionResponse{Text: "   "}, nil).Once()

	_, err := svc.TranscribeURL(context.Background(), &dto.STTRequest{
		UserID: 1, SessionID: 10, AudioURL: server.URL + "/silence.mp3",
	})

	var coded apperrors.Coded
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, apperrors.CodeAudioUnprocessable, coded.ErrorCode())
}

func TestSTTService_ProviderError(t *testing.T) {
	server := newAudioServer(t, http.StatusOK, []byte("fake-mp3"))
	svc, transcriber := newSTTService(t, nil)
	providerErr := provider.NewError("mock", apperrors.CodeSTTTimeout, "request timed out", context.DeadlineExceeded)
	transcriber.On("Transcribe", mock.Anything, mock.Anything).Return(nil, providerErr).Once()

	_, err := svc.TranscribeURL(context.Background(), &dto.STTRequest{
		UserID: 1, SessionID: 10, AudioURL: server.URL + "/answer.mp3",
	})

	assert.ErrorIs(t, err, providerErr)
}

func newFileHeader(t *testing.T, fileName string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("audio", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["audio"], 1)
	return form.File["audio"][0]
}

func TestSTTService_TranscribeUpload(t *testing.T) {
	svc, transcriber := newSTTService(t, nil)
	transcriber.On("Transcribe", mock.Anything, mock.MatchedBy(func(req *provider.TranscriptionRequest) bool {
		return string(req.Audio) == "uploaded-m4a" && req.ContentType == "audio/mp4"
	})).Return(&provider.TranscriptionResponse{Text: mocks.SampleTranscript}, nil).Once()

	data, err := svc.TranscribeUpload(context.Background(), &dto.STTUploadRequest{
		UserID:    2,
		SessionID: 20,
		Audio:     newFileHeader(t, "answer.m4a", []byte("uploaded-m4a")),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), data.UserID)
	assert.Equal(t, mocks.SampleTranscript, data.Text)
	transcriber.AssertExpectations(t)
}
