package errors

import (
	stderrors "errors"
	"net/http"

	apperrors "interview-ai/internal/app/errors"
)

// statusByCode maps each client-facing error code to its HTTP status.
var statusByCode = map[apperrors.Code]int{
	apperrors.CodeEmptyQuestion:       http.StatusBadRequest,
	apperrors.CodeEmptyAnswer:         http.StatusBadRequest,
	apperrors.CodeAnswerTooShort:      http.StatusBadRequest,
	apperrors.CodeAnswerTooLong:       http.StatusBadRequest,
	apperrors.CodeInvalidAnswerFormat: http.StatusBadRequest,

	apperrors.CodeS3AccessForbidden:   http.StatusForbidden,
	apperrors.CodeAudioDownloadFailed: http.StatusForbidden,

	apperrors.CodeAudioNotFound: http.StatusNotFound,

	apperrors.CodeAudioDownloadTimeout: http.StatusRequestTimeout,
	apperrors.CodeSTTTimeout:           http.StatusRequestTimeout,
	apperrors.CodeLLMTimeout:           http.StatusRequestTimeout,

	apperrors.CodeFeedbackAlreadyInProgress: http.StatusConflict,

	apperrors.CodeAudioUnprocessable: http.StatusUnprocessableEntity,
	apperrors.CodeInvalidRequest:     http.StatusUnprocessableEntity,

	apperrors.CodeRateLimitExceeded: http.StatusTooManyRequests,

	apperrors.CodeSTTConversionFailed:      http.StatusInternalServerError,
	apperrors.CodeFeedbackGenerationFailed: http.StatusInternalServerError,
	apperrors.CodeRubricEvaluationFailed:   http.StatusInternalServerError,
	apperrors.CodeInternalServerError:      http.StatusInternalServerError,
	apperrors.CodeAPIKeyInvalid:            http.StatusInternalServerError,

	apperrors.CodeSTTServiceUnavailable:  http.StatusBadGateway,
	apperrors.CodeLLMServiceUnavailable:  http.StatusBadGateway,
	apperrors.CodeLLMResponseParseFailed: http.StatusBadGateway,

	apperrors.CodeServiceTemporarilyUnavailable: http.StatusServiceUnavailable,
}

// APIError represents a structured API error response.
// It renders as the standard envelope: {"message": <code>, "data": null}.
type APIError struct {
	Code      apperrors.Code    `json:"message"`
	Data      interface{}       `json:"data"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`

	// Detail is logged server-side and never sent to clients.
	Detail string `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return string(e.Code) + ": " + e.Detail
	}
	return string(e.Code)
}

// HTTPStatus returns the HTTP status code for the error code
func (e *APIError) HTTPStatus() int {
	return StatusFor(e.Code)
}

// StatusFor returns the HTTP status for code, 500 when the code is unknown.
func StatusFor(code apperrors.Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// New creates an APIError for code
func New(code apperrors.Code, detail string) *APIError {
	return &APIError{Code: code, Detail: detail}
}

// NewValidationError creates a request validation error with field details
func NewValidationError(detail string, fields map[string]string) *APIError {
	return &APIError{
		Code:    apperrors.CodeInvalidRequest,
		Details: fields,
		Detail:  detail,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(detail string) *APIError {
	return New(apperrors.CodeInternalServerError, detail)
}

// NewConflictError creates a conflict error for work that is already running
func NewConflictError(detail string) *APIError {
	return New(apperrors.CodeFeedbackAlreadyInProgress, detail)
}

// FromError converts any error into an APIError. Errors that carry a stable
// code keep it; everything else becomes internal_server_error.
func FromError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	var coded apperrors.Coded
	if stderrors.As(err, &coded) {
		return New(coded.ErrorCode(), err.Error())
	}

	return NewInternalError(err.Error())
}
