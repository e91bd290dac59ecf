package audio

import (
	"fmt"

	apperrors "interview-ai/internal/app/errors"
)

// FetchError is returned when audio cannot be retrieved
type FetchError struct {
	Code    apperrors.Code
	Message string
	Status  int // upstream HTTP status when known
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("audio fetch: %s: %v", e.Message, e.Cause)
	}
	return "audio fetch: " + e.Message
}

// ErrorCode implements errors.Coded
func (e *FetchError) ErrorCode() apperrors.Code {
	return e.Code
}

// Unwrap returns the underlying error
func (e *FetchError) Unwrap() error {
	return e.Cause
}

func newFetchError(code apperrors.Code, status int, message string, cause error) *FetchError {
	return &FetchError{Code: code, Status: status, Message: message, Cause: cause}
}
