package test

import (
	"net/http"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apierrors "interview-ai/internal/api/errors"
	"interview-ai/internal/api/v1/dto"
	apperrors "interview-ai/internal/app/errors"
	"interview-ai/internal/app/feedback"
	"interview-ai/internal/app/testutil"
)

func validFeedbackRequest() map[string]interface{} {
	return map[string]interface{}{
		"user_id":        7,
		"question_id":    42,
		"interview_type": "PRACTICE_INTERVIEW",
		"question_type":  "CS",
		"category":       "OS",
		"question":       testutil.SampleQuestion,
		"answer_text":    testutil.SampleAnswer,
	}
}

func scoredFeedback() *dto.FeedbackData {
	return &dto.FeedbackData{
		UserID:     7,
		QuestionID: 42,
		Metrics: []feedback.Metric{
			{Name: feedback.MetricAccuracy, Score: 4, Comment: "핵심 개념이 정확합니다."},
			{Name: feedback.MetricLogic, Score: 4, Comment: "흐름이 자연스럽습니다."},
			{Name: feedback.MetricSpecificity, Score: 3, Comment: "예시가 부족합니다."},
			{Name: feedback.MetricCompleteness, Score: 3, Comment: "컨텍스트 스위칭 언급이 없습니다."},
			{Name: feedback.MetricDelivery, Score: 5, Comment: "명확하게 전달됩니다."},
		},
		Weakness: lo.ToPtr(true),
		Feedback: &feedback.Content{Strengths: "정확합니다.", Improvements: "예시를 추가하세요."},
	}
}

func TestFeedbackHandler_Generate(t *testing.T) {
	tests := []struct {
		name           string
		request        func() map[string]interface{}
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:    "feedback generated",
			request: validFeedbackRequest,
			setupMocks: func(ms *testutil.MockServices) {
				ms.FeedbackService.On("Generate", mock.Anything, mock.MatchedBy(func(req *dto.FeedbackRequest) bool {
					return req.UserID == 7 && req.QuestionID == 42 && req.Category == "OS"
				})).Return(scoredFeedback(), nil).Once()
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, dto.MessageFeedbackSuccess, body["message"])
				data := body["data"].(map[string]interface{})
				assert.Nil(t, data["bad_case_feedback"])
				assert.Len(t, data["metrics"], 5)
				assert.Equal(t, true, data["weakness"])
			},
		},
		{
			name:    "bad case detected",
			request: validFeedbackRequest,
			setupMocks: func(ms *testutil.MockServices) {
				ms.FeedbackService.On("Generate", mock.Anything, mock.Anything).Return(&dto.FeedbackData{
					UserID:          7,
					QuestionID:      42,
					BadCaseFeedback: feedback.NewBadCaseFeedback(feedback.BadCaseTooShort),
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, dto.MessageBadCaseDetected, body["message"])
				data := body["data"].(map[string]interface{})
				badCase := data["bad_case_feedback"].(map[string]interface{})
				assert.Equal(t, "TOO_SHORT", badCase["type"])
				assert.Nil(t, data["metrics"])
				assert.Nil(t, data["weakness"])
				assert.Nil(t, data["feedback"])
			},
		},
		{
			name: "invalid interview type",
			request: func() map[string]interface{} {
				req := validFeedbackRequest()
				req["interview_type"] = "MOCK"
				return req
			},
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "invalid_request", body["message"])
				details := body["details"].(map[string]interface{})
				assert.Contains(t, details, "interview_type")
			},
		},
		{
			name: "unknown category",
			request: func() map[string]interface{} {
				req := validFeedbackRequest()
				req["category"] = "ASTROLOGY"
				return req
			},
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				details := body["details"].(map[string]interface{})
				assert.Contains(t, details, "category")
			},
		},
		{
			name:    "empty answer",
			request: validFeedbackRequest,
			setupMocks: func(ms *testutil.MockServices) {
				ms.FeedbackService.On("Generate", mock.Anything, mock.Anything).
					Return(nil, apperrors.NewCoded(apperrors.CodeEmptyAnswer, "answer is empty")).Once()
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "empty_answer", body["message"])
			},
		},
		{
			name:    "already in progress",
			request: validFeedbackRequest,
			setupMocks: func(ms *testutil.MockServices) {
				ms.FeedbackService.On("Generate", mock.Anything, mock.Anything).
					Return(nil, apierrors.NewConflictError("busy")).Once()
			},
			expectedStatus: http.StatusConflict,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "feedback_already_in_progress", body["message"])
				assert.NotEmpty(t, body["request_id"])
			},
		},
		{
			name:    "llm unavailable",
			request: validFeedbackRequest,
			setupMocks: func(ms *testutil.MockServices) {
				ms.FeedbackService.On("Generate", mock.Anything, mock.Anything).
					Return(nil, apperrors.NewCoded(apperrors.CodeLLMServiceUnavailable, "gemini down")).Once()
			},
			expectedStatus: http.StatusBadGateway,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "llm_service_unavailable", body["message"])
			},
		},
	}

	for _, tt := range tests {
		for _, prefix := range prefixes {
			t.Run(tt.name+" "+prefix, func(t *testing.T) {
				router, mockServices := setupTestRouter(t)
				tt.setupMocks(mockServices)

				rec := postJSON(t, router, prefix+"/feedback", tt.request())

				assert.Equal(t, tt.expectedStatus, rec.Code)
				tt.validateBody(t, decodeBody(t, rec))
				mockServices.AssertExpectations(t)
			})
		}
	}
}
