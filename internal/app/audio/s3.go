package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"interview-ai/internal/app/api/provider"
	apperrors "interview-ai/internal/app/errors"
)

// S3Config holds the settings for S3-compatible object storage
type S3Config struct {
	Endpoint        string // e.g. "https://s3.ap-northeast-2.amazonaws.com" or a MinIO URL
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// MinioReader reads objects through minio-go
type MinioReader struct {
	client *minio.Client
}

// NewMinioReader creates an ObjectReader for the configured endpoint.
// Without static keys the AWS_* environment credentials are used.
func NewMinioReader(cfg S3Config) (*MinioReader, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.Region)
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid S3 endpoint %q", endpoint)
	}

	creds := credentials.NewEnvAWS()
	if cfg.AccessKeyID != "" {
		creds = credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	client, err := minio.New(u.Host, &minio.Options{
		Creds:  creds,
		Secure: u.Scheme == "https",
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}
	return &MinioReader{client: client}, nil
}

// ReadObject implements ObjectReader. limit < 0 disables the size check.
func (m *MinioReader) ReadObject(ctx context.Context, bucket, key string, limit int64) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, classifyS3Error(err)
	}
	defer obj.Close()

	var r io.Reader = obj
	if limit >= 0 {
		r = io.LimitReader(obj, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, classifyS3Error(err)
	}
	if limit >= 0 && int64(len(data)) > limit {
		return nil, newFetchError(apperrors.CodeAudioUnprocessable, 0,
			fmt.Sprintf("audio exceeds %d bytes", limit), nil)
	}
	return data, nil
}

// classifyS3Error maps minio error responses onto fetch error codes
func classifyS3Error(err error) error {
	resp := minio.ToErrorResponse(err)
	switch {
	case resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" || resp.StatusCode == http.StatusNotFound:
		return newFetchError(apperrors.CodeAudioNotFound, http.StatusNotFound, "object not found", err)
	case resp.Code == "AccessDenied" || resp.StatusCode == http.StatusForbidden:
		return newFetchError(apperrors.CodeS3AccessForbidden, http.StatusForbidden, "access denied", err)
	case resp.StatusCode >= 500:
		return newFetchError(apperrors.CodeInternalServerError, resp.StatusCode, "storage error", err)
	}
	if provider.IsTimeout(err) {
		return newFetchError(apperrors.CodeAudioDownloadTimeout, 0, "download timed out", err)
	}
	return newFetchError(apperrors.CodeAudioDownloadFailed, resp.StatusCode, "s3 read failed", err)
}
