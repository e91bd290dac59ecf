package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "interview-ai/internal/app/errors"
	"interview-ai/internal/app/llm"
)

// Pipeline task names, used as the metrics "task" label
const (
	TaskAnalyzer = "analyzer"
	TaskRubric   = "rubric"
	TaskFeedback = "feedback"
)

const (
	rubricMaxTokens   = 4000
	feedbackMaxTokens = 4000
	feedbackTemp      = 0.3
	minScore          = 1
	maxScore          = 5
)

// Pipeline turns an answer into rubric scores and narrative feedback:
// local checks, LLM analysis with a bad-case early return, rubric scoring,
// then feedback text.
type Pipeline struct {
	llm     llm.Provider
	checker Checker
	logger  *zap.Logger
}

// NewPipeline creates a feedback pipeline
func NewPipeline(provider llm.Provider, checker Checker, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{llm: provider, checker: checker, logger: logger}
}

// Run evaluates req. Input problems and upstream failures come back as
// errors carrying an apperrors.Code; bad cases are a successful Result.
func (p *Pipeline) Run(ctx context.Context, req *Request) (*Result, error) {
	start := time.Now()
	log := p.logger.With(zap.Int64("user_id", req.UserID), zap.Int64("question_id", req.QuestionID))

	if err := p.checker.Validate(req.Question, req.Answer); err != nil {
		return nil, err
	}
	if p.checker.IsInsufficient(req.Answer) {
		log.Info("bad case detected locally", zap.String("bad_case_type", string(BadCaseTooShort)))
		return &Result{BadCase: NewBadCaseFeedback(BadCaseTooShort)}, nil
	}

	analysis, err := p.Analyze(ctx, req)
	if err != nil {
		log.Error("answer analysis failed", zap.Error(err))
		return nil, err
	}
	log.Info("answer analysed",
		zap.Bool("is_bad_case", analysis.IsBadCase),
		zap.String("bad_case_type", string(analysis.BadCaseType)),
		zap.Bool("has_weakness", analysis.HasWeakness))

	if analysis.IsBadCase {
		return &Result{BadCase: NewBadCaseFeedback(analysis.BadCaseType)}, nil
	}

	eval, err := p.Evaluate(ctx, req)
	if err != nil {
		log.Error("rubric evaluation failed", zap.Error(err))
		return nil, err
	}

	content, err := p.Write(ctx, req, eval)
	if err != nil {
		log.Error("feedback generation failed", zap.Error(err))
		return nil, err
	}

	log.Info("feedback generated", zap.Duration("elapsed", time.Since(start)))
	return &Result{
		Metrics:  eval.Metrics(),
		Weakness: analysis.HasWeakness,
		Feedback: content,
	}, nil
}

// Analyze classifies the answer (bad case, weakness, follow-up)
func (p *Pipeline) Analyze(ctx context.Context, req *Request) (*Analysis, error) {
	var out Analysis
	_, err := p.llm.GenerateStructured(ctx, buildAnalyzerPrompt(req), &out, llm.Options{
		Task:         TaskAnalyzer,
		SystemPrompt: analyzerSystemPrompt,
		Temperature:  0,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Evaluate scores the answer on the five rubric criteria
func (p *Pipeline) Evaluate(ctx context.Context, req *Request) (*RubricEvaluation, error) {
	var out RubricEvaluation
	_, err := p.llm.GenerateStructured(ctx, buildRubricPrompt(req), &out, llm.Options{
		Task:         TaskRubric,
		SystemPrompt: rubricSystemPrompt,
		Temperature:  0,
		MaxTokens:    rubricMaxTokens,
	})
	if err != nil {
		return nil, classify(err, apperrors.CodeRubricEvaluationFailed, "rubric evaluation failed")
	}

	for _, m := range out.Metrics() {
		if m.Score < minScore || m.Score > maxScore {
			return nil, llm.ParseError(p.llm.Name(), fmt.Errorf("%s score %d out of range", m.Name, m.Score))
		}
	}
	return &out, nil
}

// Write produces the strengths and improvements text
func (p *Pipeline) Write(ctx context.Context, req *Request, eval *RubricEvaluation) (*Content, error) {
	var out Content
	_, err := p.llm.GenerateStructured(ctx, buildFeedbackPrompt(req, eval), &out, llm.Options{
		Task:         TaskFeedback,
		SystemPrompt: feedbackSystemPrompt,
		Temperature:  feedbackTemp,
		MaxTokens:    feedbackMaxTokens,
	})
	if err != nil {
		return nil, classify(err, apperrors.CodeFeedbackGenerationFailed, "feedback generation failed")
	}
	return &out, nil
}

// classify keeps upstream error codes and tags anything else with code.
func classify(err error, code apperrors.Code, message string) error {
	var coded apperrors.Coded
	if errors.As(err, &coded) {
		return err
	}
	return apperrors.WrapCoded(err, code, message)
}
