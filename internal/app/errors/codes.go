package errors

// Code is the stable machine-readable error identifier sent to API clients
// in the "message" field of the response envelope.
type Code string

const (
	// STT
	CodeAudioNotFound         Code = "audio_not_found"
	CodeSTTTimeout            Code = "stt_timeout"
	CodeAudioUnprocessable    Code = "audio_unprocessable"
	CodeSTTConversionFailed   Code = "stt_conversion_failed"
	CodeSTTServiceUnavailable Code = "stt_service_unavailable"

	// Audio download
	CodeS3AccessForbidden    Code = "s3_access_forbidden"
	CodeAudioDownloadFailed  Code = "audio_download_failed"
	CodeAudioDownloadTimeout Code = "audio_download_timeout"

	// Feedback
	CodeEmptyQuestion             Code = "empty_question"
	CodeEmptyAnswer               Code = "empty_answer"
	CodeAnswerTooShort            Code = "answer_too_short"
	CodeAnswerTooLong             Code = "answer_too_long"
	CodeInvalidAnswerFormat       Code = "invalid_answer_format"
	CodeFeedbackAlreadyInProgress Code = "feedback_already_in_progress"
	CodeRubricEvaluationFailed    Code = "rubric_evaluation_failed"
	CodeFeedbackGenerationFailed  Code = "feedback_generation_failed"

	// LLM
	CodeLLMServiceUnavailable  Code = "llm_service_unavailable"
	CodeLLMResponseParseFailed Code = "llm_response_parse_failed"
	CodeLLMTimeout             Code = "llm_timeout"

	// Common
	CodeInvalidRequest                Code = "invalid_request"
	CodeAPIKeyInvalid                 Code = "api_key_invalid"
	CodeRateLimitExceeded             Code = "rate_limit_exceeded"
	CodeInternalServerError           Code = "internal_server_error"
	CodeServiceTemporarilyUnavailable Code = "service_temporarily_unavailable"
)

// Coded is implemented by domain errors that carry a stable Code.
type Coded interface {
	error
	ErrorCode() Code
}

// CodedError is a plain error tagged with a Code.
type CodedError struct {
	Code    Code
	Message string
	Cause   error
}

// NewCoded creates a CodedError
func NewCoded(code Code, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

// WrapCoded tags err with code
func WrapCoded(err error, code Code, message string) *CodedError {
	return &CodedError{Code: code, Message: message, Cause: err}
}

func (e *CodedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// ErrorCode implements Coded
func (e *CodedError) ErrorCode() Code {
	return e.Code
}

// Unwrap returns the underlying error
func (e *CodedError) Unwrap() error {
	return e.Cause
}
