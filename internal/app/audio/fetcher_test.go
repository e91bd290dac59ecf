package audio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "interview-ai/internal/app/errors"
)

type mockObjectReader struct {
	mock.Mock
}

func (m *mockObjectReader) ReadObject(ctx context.Context, bucket, key string, limit int64) ([]byte, error) {
	args := m.Called(ctx, bucket, key, limit)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func TestFetcher_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok/answer.m4a":
			_, _ = w.Write([]byte("m4a-data"))
		case "/big/answer.mp3":
			_, _ = w.Write(make([]byte, 64))
		case "/missing.mp3":
			w.WriteHeader(http.StatusNotFound)
		case "/denied.mp3":
			w.WriteHeader(http.StatusForbidden)
		case "/broken.mp3":
			w.WriteHeader(http.StatusBadGateway)
		case "/gone.mp3":
			w.WriteHeader(http.StatusGone)
		case "/slow.mp3":
			time.Sleep(200 * time.Millisecond)
		}
	}))
	defer server.Close()

	f := NewFetcher(server.Client(), nil, 32, 50*time.Millisecond, nil)

	t.Run("success", func(t *testing.T) {
		audio, err := f.Fetch(context.Background(), server.URL+"/ok/answer.m4a?X-Amz-Expires=300")
		require.NoError(t, err)
		assert.Equal(t, []byte("m4a-data"), audio.Data)
		assert.Equal(t, "answer.m4a", audio.FileName)
		assert.Equal(t, "audio/mp4", audio.ContentType)
	})

	testCases := []struct {
		name string
		path string
		code apperrors.Code
	}{
		{"not found", "/missing.mp3", apperrors.CodeAudioNotFound},
		{"forbidden", "/denied.mp3", apperrors.CodeS3AccessForbidden},
		{"upstream 5xx", "/broken.mp3", apperrors.CodeInternalServerError},
		{"other status", "/gone.mp3", apperrors.CodeAudioDownloadFailed},
		{"too large", "/big/answer.mp3", apperrors.CodeAudioUnprocessable},
		{"timeout", "/slow.mp3", apperrors.CodeAudioDownloadTimeout},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), server.URL+tc.path)
			var fErr *FetchError
			require.ErrorAs(t, err, &fErr)
			assert.Equal(t, tc.code, fErr.Code)
		})
	}
}

func TestFetcher_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	f := NewFetcher(nil, nil, 0, time.Second, nil)
	_, err := f.Fetch(context.Background(), addr+"/a.mp3")

	var fErr *FetchError
	require.ErrorAs(t, err, &fErr)
	assert.Equal(t, apperrors.CodeAudioDownloadFailed, fErr.Code)
}

func TestFetcher_S3(t *testing.T) {
	objects := &mockObjectReader{}
	objects.Test(t)
	objects.On("ReadObject", mock.Anything, "interview-audio", "users/1/answer.mp3", int64(1024)).
		Return([]byte("mp3-data"), nil).Once()

	f := NewFetcher(nil, objects, 1024, time.Second, nil)
	audio, err := f.Fetch(context.Background(), "s3://interview-audio/users/1/answer.mp3")

	require.NoError(t, err)
	assert.Equal(t, "answer.mp3", audio.FileName)
	assert.Equal(t, "audio/mpeg", audio.ContentType)
	objects.AssertExpectations(t)
}

func TestFetcher_S3NotConfigured(t *testing.T) {
	f := NewFetcher(nil, nil, 0, time.Second, nil)
	_, err := f.Fetch(context.Background(), "s3://bucket/a.mp3")

	var fErr *FetchError
	require.ErrorAs(t, err, &fErr)
	assert.Equal(t, apperrors.CodeAudioDownloadFailed, fErr.Code)
}

func TestFetcher_UnsupportedScheme(t *testing.T) {
	f := NewFetcher(nil, nil, 0, time.Second, nil)
	_, err := f.Fetch(context.Background(), "ftp://host/a.mp3")
	assert.Error(t, err)
}

func TestClassifyS3Error(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		code apperrors.Code
	}{
		{"no such key", minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}, apperrors.CodeAudioNotFound},
		{"no such bucket", minio.ErrorResponse{Code: "NoSuchBucket"}, apperrors.CodeAudioNotFound},
		{"access denied", minio.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}, apperrors.CodeS3AccessForbidden},
		{"server error", minio.ErrorResponse{Code: "InternalError", StatusCode: http.StatusInternalServerError}, apperrors.CodeInternalServerError},
		{"timeout", fmt.Errorf("read: %w", context.DeadlineExceeded), apperrors.CodeAudioDownloadTimeout},
		{"other", errors.New("connection reset"), apperrors.CodeAudioDownloadFailed},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var fErr *FetchError
			require.ErrorAs(t, classifyS3Error(tc.err), &fErr)
			assert.Equal(t, tc.code, fErr.Code)
		})
	}
}

func TestFileNameFromURL(t *testing.T) {
	u, _ := url.Parse("https://bucket.s3.amazonaws.com/a/b/answer.mp3?sig=1")
	assert.Equal(t, "answer.mp3", FileNameFromURL(u))

	u, _ = url.Parse("https://bucket.s3.amazonaws.com/")
	assert.Equal(t, "audio.mp4", FileNameFromURL(u))
}

func TestNewMinioReader(t *testing.T) {
	r, err := NewMinioReader(S3Config{Endpoint: "http://localhost:9000", AccessKeyID: "minio", SecretAccessKey: "minio123", Region: "us-east-1"})
	require.NoError(t, err)
	assert.NotNil(t, r)

	_, err = NewMinioReader(S3Config{Endpoint: "::bad"})
	assert.Error(t, err)
}

func TestFetcher_Read(t *testing.T) {
	f := NewFetcher(nil, nil, 8, time.Second, nil)

	a, err := f.Read(strings.NewReader("short"), "answer.m4a")
	require.NoError(t, err)
	assert.Equal(t, "audio/mp4", a.ContentType)
	assert.Equal(t, []byte("short"), a.Data)

	_, err = f.Read(strings.NewReader("much too long"), "answer.m4a")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, apperrors.CodeAudioUnprocessable, fetchErr.Code)
}
