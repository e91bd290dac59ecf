package dto

// Response is the envelope for every successful response.
// Errors use the same shape with data set to null.
type Response struct {
	Message string      `json:"message" example:"speech_to_text_success"`
	Data    interface{} `json:"data"`
}

// Success messages
const (
	MessageServerRunning   = "server_running"
	MessageSTTSuccess      = "speech_to_text_success"
	MessageFeedbackSuccess = "generate_feedback_success"
	MessageBadCaseDetected = "bad_case_detected"
)

// NewResponse builds a Response
func NewResponse(message string, data interface{}) Response {
	return Response{Message: message, Data: data}
}

// Health statuses
const (
	HealthStatusOK          = "ok"
	HealthStatusDegraded    = "degraded"
	HealthStatusUnavailable = "unavailable"
)

// HealthData describes the running server
type HealthData struct {
	Status      string `json:"status" example:"ok"`
	Environment string `json:"environment" example:"production"`
	STTProvider string `json:"stt_provider" example:"huggingface"`
	STTStatus   string `json:"stt_status,omitempty" example:"ok"`
	LLMProvider string `json:"llm_provider" example:"gemini"`
	Version     string `json:"version,omitempty" example:"1.4.0"`
}
