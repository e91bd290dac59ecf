package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"interview-ai/internal/api/middleware"
	"interview-ai/internal/api/v1/dto"
	"interview-ai/internal/api/v1/handlers"
	v1routes "interview-ai/internal/api/v1/routes"
	"interview-ai/internal/app/metrics"
	"interview-ai/internal/app/testutil"
)

func newTestServer(t *testing.T) (*Server, *testutil.MockServices) {
	t.Helper()
	mocks := testutil.NewMockServices(t)
	container := &v1routes.ServiceContainer{
		STTService:      mocks.STTService,
		FeedbackService: mocks.FeedbackService,
	}
	health := handlers.NewHealthHandler(dto.HealthData{Environment: "production", STTProvider: "huggingface", LLMProvider: "gemini"}, nil)
	srv := NewServer(Config{
		Addr:        "127.0.0.1:0",
		Environment: "production",
		Release:     true,
	}, container, health, metrics.New(nil), zap.NewNop())
	return srv, mocks
}

func TestServer_HealthRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/", "/ai", "/health"} {
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader), path)
	}
}

func TestServer_BothPrefixesReachHandlers(t *testing.T) {
	srv, mocks := newTestServer(t)
	mocks.STTService.On("TranscribeURL", mock.Anything, mock.Anything).
		Return(&dto.STTData{UserID: 1, SessionID: 2, Text: testutil.SampleTranscript}, nil).Twice()

	for _, path := range []string{"/api/v1/stt", "/ai/v1/stt"} {
		body := `{"user_id":1,"session_id":2,"audio_url":"https://bucket.s3.amazonaws.com/a.mp3"}`
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), dto.MessageSTTSuccess)
	}
	mocks.AssertExpectations(t)
}

func TestServer_MetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "interview_ai_http_requests_total"))
}

func TestServer_StartShutdown(t *testing.T) {
	srv, _ := newTestServer(t)
	require.NoError(t, srv.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-srv.Errors():
		t.Fatalf("unexpected listen error: %v", err)
	default:
	}
}
