package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"interview-ai/internal/app/api/provider"
	apperrors "interview-ai/internal/app/errors"
)

const defaultFileName = "audio.mp4"

// Audio is a downloaded recording held in memory
type Audio struct {
	Data        []byte
	FileName    string
	ContentType string
}

// ObjectReader reads an object from S3-compatible storage
type ObjectReader interface {
	ReadObject(ctx context.Context, bucket, key string, limit int64) ([]byte, error)
}

// Fetcher downloads audio from presigned http(s) URLs or s3://bucket/key locations
type Fetcher struct {
	client   *http.Client
	objects  ObjectReader
	maxBytes int64
	timeout  time.Duration
	logger   *zap.Logger
}

// NewFetcher creates a Fetcher. objects may be nil when s3:// URLs are not used.
func NewFetcher(client *http.Client, objects ObjectReader, maxBytes int64, timeout time.Duration, logger *zap.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client:   client,
		objects:  objects,
		maxBytes: maxBytes,
		timeout:  timeout,
		logger:   logger,
	}
}

// Fetch downloads the audio referenced by rawURL
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Audio, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, newFetchError(apperrors.CodeAudioDownloadFailed, 0, "invalid audio URL", err)
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	start := time.Now()
	var data []byte
	switch u.Scheme {
	case "http", "https":
		data, err = f.fetchHTTP(ctx, u)
	case "s3":
		data, err = f.fetchS3(ctx, u)
	default:
		return nil, newFetchError(apperrors.CodeAudioDownloadFailed, 0,
			fmt.Sprintf("unsupported URL scheme %q", u.Scheme), nil)
	}
	if err != nil {
		f.logger.Warn("audio download failed",
			zap.String("host", u.Host),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	name := FileNameFromURL(u)
	f.logger.Debug("audio downloaded",
		zap.String("file_name", name),
		zap.Float64("size_kb", float64(len(data))/1024),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Audio{
		Data:        data,
		FileName:    name,
		ContentType: provider.ContentTypeFor(name),
	}, nil
}

// Read loads uploaded audio from r under the same size limit as downloads
func (f *Fetcher) Read(r io.Reader, fileName string) (*Audio, error) {
	data, err := f.readLimited(r)
	if err != nil {
		return nil, err
	}
	if fileName == "" {
		fileName = defaultFileName
	}
	return &Audio{
		Data:        data,
		FileName:    fileName,
		ContentType: provider.ContentTypeFor(fileName),
	}, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, newFetchError(apperrors.CodeAudioDownloadFailed, 0, "failed to create request", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if provider.IsTimeout(err) {
			return nil, newFetchError(apperrors.CodeAudioDownloadTimeout, 0, "download timed out", err)
		}
		return nil, newFetchError(apperrors.CodeAudioDownloadFailed, 0, "network error", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, newFetchError(apperrors.CodeAudioNotFound, resp.StatusCode, "audio not found", nil)
	case resp.StatusCode == http.StatusForbidden:
		return nil, newFetchError(apperrors.CodeS3AccessForbidden, resp.StatusCode, "access denied", nil)
	case resp.StatusCode >= 500:
		return nil, newFetchError(apperrors.CodeInternalServerError, resp.StatusCode,
			fmt.Sprintf("storage returned status %d", resp.StatusCode), nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, newFetchError(apperrors.CodeAudioDownloadFailed, resp.StatusCode,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	data, err := f.readLimited(resp.Body)
	if err != nil {
		if provider.IsTimeout(err) {
			return nil, newFetchError(apperrors.CodeAudioDownloadTimeout, 0, "download timed out", err)
		}
		return nil, err
	}
	return data, nil
}

func (f *Fetcher) fetchS3(ctx context.Context, u *url.URL) ([]byte, error) {
	if f.objects == nil {
		return nil, newFetchError(apperrors.CodeAudioDownloadFailed, 0, "s3 access is not configured", nil)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, newFetchError(apperrors.CodeAudioDownloadFailed, 0, "s3 URL must be s3://bucket/key", nil)
	}
	return f.objects.ReadObject(ctx, bucket, key, f.limit())
}

func (f *Fetcher) limit() int64 {
	if f.maxBytes <= 0 {
		return -1
	}
	return f.maxBytes
}

// readLimited reads at most maxBytes, failing when the body is larger
func (f *Fetcher) readLimited(r io.Reader) ([]byte, error) {
	if f.maxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, newFetchError(apperrors.CodeAudioDownloadFailed, 0, "failed to read body", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, newFetchError(apperrors.CodeAudioDownloadFailed, 0, "failed to read body", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, newFetchError(apperrors.CodeAudioUnprocessable, 0,
			fmt.Sprintf("audio exceeds %d bytes", f.maxBytes), nil)
	}
	return data, nil
}

// FileNameFromURL returns the last path element of u, ignoring the query string
func FileNameFromURL(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return defaultFileName
	}
	return name
}
