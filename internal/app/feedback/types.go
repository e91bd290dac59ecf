package feedback

// InterviewType distinguishes practice sessions from mock real interviews
type InterviewType string

const (
	InterviewPractice InterviewType = "PRACTICE_INTERVIEW"
	InterviewReal     InterviewType = "REAL_INTERVIEW"
)

// QuestionType is the broad kind of interview question
type QuestionType string

const (
	QuestionCS           QuestionType = "CS"
	QuestionSystemDesign QuestionType = "SYSTEM_DESIGN"
	QuestionPortfolio    QuestionType = "PORTFOLIO"
)

// Category narrows a question to a topic area
type Category string

const (
	CategoryOS                     Category = "OS"
	CategoryNetwork                Category = "NETWORK"
	CategoryDB                     Category = "DB"
	CategoryAlgorithmDataStructure Category = "ALGORITHM/DATA_STRUCTURE"
	CategoryComputerStructure      Category = "COMPUTER_STRUCTURE"
	CategoryNotificationEngagement Category = "NOTIFICATION/ENGAGEMENT"
	CategoryMessagingRealtime      Category = "MESSAGING/REALTIME_COMMUNICATION"
	CategorySearchDelivery         Category = "SEARCH/DELIVERY"
	CategoryMediaStreaming         Category = "MEDIA_STREAMING_PROCESSING"
	CategoryStorageCollaboration   Category = "STORAGE/FILE_COLLABORATION"
	CategoryWebPlatform            Category = "WEB_PLATFORM_INFRSTRUCTURE"
	CategoryLocationMarketplace    Category = "LOCATION/MARKETPLACE/TRANSACTION"
)

// Categories lists every accepted category value
var Categories = []Category{
	CategoryOS, CategoryNetwork, CategoryDB, CategoryAlgorithmDataStructure, CategoryComputerStructure,
	CategoryNotificationEngagement, CategoryMessagingRealtime, CategorySearchDelivery, CategoryMediaStreaming,
	CategoryStorageCollaboration, CategoryWebPlatform, CategoryLocationMarketplace,
}

// BadCaseType classifies answers that get canned guidance instead of scoring
type BadCaseType string

const (
	BadCaseRefuseToAnswer BadCaseType = "REFUSE_TO_ANSWER"
	BadCaseTooShort       BadCaseType = "TOO_SHORT"
	BadCaseInappropriate  BadCaseType = "INAPPROPRIATE"
)

// Request is one answer to evaluate
type Request struct {
	UserID        int64
	QuestionID    int64
	InterviewType InterviewType
	QuestionType  QuestionType
	Category      Category
	Question      string
	Answer        string
}

// BadCaseFeedback is the canned response for a bad case
type BadCaseFeedback struct {
	Type     BadCaseType `json:"type"`
	Message  string      `json:"message"`
	Guidance string      `json:"guidance"`
}

// Metric is one scored rubric criterion
type Metric struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// Content is the generated narrative feedback
type Content struct {
	Strengths    string `json:"strengths" description:"What the candidate did well, in Korean"`
	Improvements string `json:"improvements" description:"Concrete suggestions for improvement, in Korean"`
}

// Result is the outcome of the pipeline. Exactly one of BadCase or
// (Metrics, Feedback) is set.
type Result struct {
	BadCase  *BadCaseFeedback
	Metrics  []Metric
	Weakness bool
	Feedback *Content
}

// IsBadCase reports whether the answer was short-circuited
func (r *Result) IsBadCase() bool {
	return r.BadCase != nil
}

// Analysis is the analyzer's structured output
type Analysis struct {
	IsBadCase      bool        `json:"is_bad_case"`
	BadCaseType    BadCaseType `json:"bad_case_type,omitempty" enum:"REFUSE_TO_ANSWER,TOO_SHORT,INAPPROPRIATE"`
	ShortAdvice    string      `json:"short_advice" description:"One sentence of advice, in Korean"`
	HasWeakness    bool        `json:"has_weakness"`
	NeedsFollowup  bool        `json:"needs_followup"`
	FollowupReason string      `json:"followup_reason,omitempty"`
}

// RubricEvaluation is the rubric evaluator's structured output
type RubricEvaluation struct {
	Accuracy     int `json:"accuracy" description:"1-5"`
	Logic        int `json:"logic" description:"1-5"`
	Specificity  int `json:"specificity" description:"1-5"`
	Completeness int `json:"completeness" description:"1-5"`
	Delivery     int `json:"delivery" description:"1-5"`

	AccuracyRationale     string `json:"accuracy_rationale"`
	LogicRationale        string `json:"logic_rationale"`
	SpecificityRationale  string `json:"specificity_rationale"`
	CompletenessRationale string `json:"completeness_rationale"`
	DeliveryRationale     string `json:"delivery_rationale"`
}

// Metrics converts the evaluation into the response order
func (e *RubricEvaluation) Metrics() []Metric {
	return []Metric{
		{Name: MetricAccuracy, Score: e.Accuracy, Comment: e.AccuracyRationale},
		{Name: MetricLogic, Score: e.Logic, Comment: e.LogicRationale},
		{Name: MetricSpecificity, Score: e.Specificity, Comment: e.SpecificityRationale},
		{Name: MetricCompleteness, Score: e.Completeness, Comment: e.CompletenessRationale},
		{Name: MetricDelivery, Score: e.Delivery, Comment: e.DeliveryRationale},
	}
}

// Rubric metric display names
const (
	MetricAccuracy     = "정확도"
	MetricLogic        = "논리력"
	MetricSpecificity  = "구체성"
	MetricCompleteness = "완성도"
	MetricDelivery     = "전달력"
)
