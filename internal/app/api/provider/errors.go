package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	apperrors "interview-ai/internal/app/errors"
)

// maxErrorBody bounds how much of an upstream error body ends up in messages
const maxErrorBody = 512

// NewError builds a TranscriptionError
func NewError(providerName string, code apperrors.Code, message string, cause error) *TranscriptionError {
	return &TranscriptionError{
		Code:      code,
		Message:   message,
		Provider:  providerName,
		Retryable: isRetryable(code),
		Cause:     cause,
	}
}

// ErrorFromStatus classifies a non-2xx upstream response.
func ErrorFromStatus(providerName string, status int, body []byte) *TranscriptionError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	message := fmt.Sprintf("upstream returned status %d: %s", status, string(body))

	var code apperrors.Code
	switch {
	case status == http.StatusBadRequest:
		code = apperrors.CodeAudioUnprocessable
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		code = apperrors.CodeAPIKeyInvalid
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		code = apperrors.CodeSTTTimeout
	case status == http.StatusTooManyRequests:
		code = apperrors.CodeRateLimitExceeded
	case status == http.StatusServiceUnavailable:
		code = apperrors.CodeSTTServiceUnavailable
	default:
		code = apperrors.CodeSTTConversionFailed
	}
	return NewError(providerName, code, message, nil)
}

// ErrorFromTransport classifies a failure to get any response at all.
func ErrorFromTransport(providerName string, err error) *TranscriptionError {
	if IsTimeout(err) {
		return NewError(providerName, apperrors.CodeSTTTimeout, "request timed out", err)
	}
	return NewError(providerName, apperrors.CodeSTTServiceUnavailable, "request failed", err)
}

// IsTimeout reports whether err is a deadline or network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isRetryable(code apperrors.Code) bool {
	switch code {
	case apperrors.CodeSTTTimeout, apperrors.CodeRateLimitExceeded, apperrors.CodeSTTServiceUnavailable:
		return true
	default:
		return false
	}
}
