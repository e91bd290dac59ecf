package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	apperrors "interview-ai/internal/app/errors"
)

// Error is returned by providers for any failed generation
type Error struct {
	Code     apperrors.Code
	Message  string
	Provider string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// ErrorCode implements errors.Coded
func (e *Error) ErrorCode() apperrors.Code {
	return e.Code
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError builds an Error
func NewError(providerName string, code apperrors.Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Provider: providerName, Cause: cause}
}

// ErrorFromStatus classifies an upstream HTTP status
func ErrorFromStatus(providerName string, status int, cause error) *Error {
	switch {
	case status == http.StatusTooManyRequests:
		return NewError(providerName, apperrors.CodeRateLimitExceeded, "rate limit exceeded", cause)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return NewError(providerName, apperrors.CodeAPIKeyInvalid, "API key rejected", cause)
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return NewError(providerName, apperrors.CodeLLMTimeout, "upstream timed out", cause)
	default:
		return NewError(providerName, apperrors.CodeLLMServiceUnavailable,
			fmt.Sprintf("upstream returned status %d", status), cause)
	}
}

// ErrorFromTransport classifies errors raised before any response arrived
func ErrorFromTransport(providerName string, err error) *Error {
	if isTimeout(err) {
		return NewError(providerName, apperrors.CodeLLMTimeout, "request timed out", err)
	}
	return NewError(providerName, apperrors.CodeLLMServiceUnavailable, "request failed", err)
}

// ParseError wraps a response that could not be decoded or failed validation
func ParseError(providerName string, err error) *Error {
	return NewError(providerName, apperrors.CodeLLMResponseParseFailed, "invalid model response", err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
