package dto

import (
	"github.com/samber/lo"

	"interview-ai/internal/api/errors"
	"interview-ai/internal/app/feedback"
)

// FeedbackRequest asks for feedback on one interview answer
type FeedbackRequest struct {
	UserID        int64  `json:"user_id" binding:"required" example:"1"`
	QuestionID    int64  `json:"question_id" binding:"required" example:"42"`
	InterviewType string `json:"interview_type,omitempty" binding:"omitempty,oneof=PRACTICE_INTERVIEW REAL_INTERVIEW" example:"PRACTICE_INTERVIEW"`
	QuestionType  string `json:"question_type,omitempty" binding:"omitempty,oneof=CS SYSTEM_DESIGN PORTFOLIO" example:"CS"`
	Category      string `json:"category,omitempty" example:"OS"`
	Question      string `json:"question" example:"프로세스와 스레드의 차이를 설명해 주세요."`
	AnswerText    string `json:"answer_text" example:"프로세스는 독립된 메모리 공간을 가지고..."`
}

// Validate performs domain-specific validation. Blank question and answer
// are reported by the feedback pipeline with their own codes.
func (r *FeedbackRequest) Validate() error {
	if r.Category != "" && !lo.Contains(feedback.Categories, feedback.Category(r.Category)) {
		return errors.NewValidationError("Invalid feedback request", map[string]string{
			"category": "must be one of the allowed values",
		})
	}
	return nil
}

// ToDomain converts the request, applying defaults for optional enums
func (r *FeedbackRequest) ToDomain() *feedback.Request {
	return &feedback.Request{
		UserID:        r.UserID,
		QuestionID:    r.QuestionID,
		InterviewType: lo.Ternary(r.InterviewType == "", feedback.InterviewPractice, feedback.InterviewType(r.InterviewType)),
		QuestionType:  lo.Ternary(r.QuestionType == "", feedback.QuestionCS, feedback.QuestionType(r.QuestionType)),
		Category:      feedback.Category(r.Category),
		Question:      r.Question,
		Answer:        r.AnswerText,
	}
}

// FeedbackData is the feedback result. For a bad case only BadCaseFeedback
// is set; otherwise it is null and the scoring fields are filled.
type FeedbackData struct {
	UserID          int64                     `json:"user_id" example:"1"`
	QuestionID      int64                     `json:"question_id" example:"42"`
	BadCaseFeedback *feedback.BadCaseFeedback `json:"bad_case_feedback"`
	Metrics         []feedback.Metric         `json:"metrics"`
	Weakness        *bool                     `json:"weakness"`
	Feedback        *feedback.Content         `json:"feedback"`
}

// IsBadCase reports whether the answer was short-circuited
func (d *FeedbackData) IsBadCase() bool {
	return d.BadCaseFeedback != nil
}

// NewFeedbackData builds the response payload from a pipeline result
func NewFeedbackData(userID, questionID int64, result *feedback.Result) *FeedbackData {
	data := &FeedbackData{UserID: userID, QuestionID: questionID}
	if result.IsBadCase() {
		data.BadCaseFeedback = result.BadCase
		return data
	}
	data.Metrics = result.Metrics
	data.Weakness = lo.ToPtr(result.Weakness)
	data.Feedback = result.Feedback
	return data
}
