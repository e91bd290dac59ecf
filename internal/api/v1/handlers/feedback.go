package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"interview-ai/internal/api/middleware"
	"interview-ai/internal/api/v1/dto"
	"interview-ai/internal/api/v1/services"
)

// FeedbackHandler handles interview feedback endpoints
type FeedbackHandler struct {
	service services.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(service services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
	}
}

// Generate handles POST /api/v1/feedback and POST /ai/v1/feedback
//
// @Summary Generate interview feedback
// @Description Scores an interview answer on five criteria and writes strengths and improvements. Refused, too short or inappropriate answers return bad_case_detected with guidance and null scores.
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body dto.FeedbackRequest true "Question and answer"
// @Success 200 {object} dto.Response{data=dto.FeedbackData} "generate_feedback_success or bad_case_detected"
// @Failure 400 {object} errors.APIError "empty_question, empty_answer or answer_too_long"
// @Failure 408 {object} errors.APIError "llm_timeout"
// @Failure 409 {object} errors.APIError "feedback_already_in_progress"
// @Failure 422 {object} errors.APIError "invalid_request"
// @Failure 429 {object} errors.APIError "rate_limit_exceeded"
// @Failure 500 {object} errors.APIError "rubric_evaluation_failed or feedback_generation_failed"
// @Failure 502 {object} errors.APIError "llm_service_unavailable or llm_response_parse_failed"
// @Router /feedback [post]
func (h *FeedbackHandler) Generate(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	data, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	message := lo.Ternary(data.IsBadCase(), dto.MessageBadCaseDetected, dto.MessageFeedbackSuccess)
	c.JSON(http.StatusOK, dto.NewResponse(message, data))
}
