package feedback

import (
	"fmt"
	"strings"
)

const analyzerSystemPrompt = `You are an expert reviewer of technical interview answers.
Classify the candidate's answer.

1. Bad case
- REFUSE_TO_ANSWER: the candidate declines or says they do not know ("모르겠습니다", "패스하겠습니다").
- TOO_SHORT: one sentence or less, with no real explanation.
- INAPPROPRIATE: unrelated to the question or offensive.
Set is_bad_case to true and bad_case_type accordingly. Leave bad_case_type out otherwise.

2. Weakness (normal answers only)
Set has_weakness when the answer contains technical errors, misses core concepts, or stays superficial.

3. Follow-up
Set needs_followup when the answer is vague or a deeper concept should be explored, and explain why in followup_reason.

Write short_advice as a single Korean sentence.`

const rubricSystemPrompt = `You are a strict but fair technical interviewer.
Score the candidate's answer on five criteria, each an integer from 1 (poor) to 5 (excellent):
- accuracy: technical correctness of every claim.
- logic: clear structure and sound reasoning from premise to conclusion.
- specificity: concrete examples, numbers, trade-offs instead of generic statements.
- completeness: coverage of the key points an experienced engineer would mention.
- delivery: how easy the answer is to follow when spoken aloud.
For every criterion write a one or two sentence rationale in Korean in the matching *_rationale field.`

const feedbackSystemPrompt = `You are a supportive interview coach.
Using the rubric scores and rationales, write feedback for the candidate in Korean.
strengths: what the answer did well, citing specific parts of it.
improvements: the most valuable changes, with concrete suggestions or missing concepts.
Keep each field under 500 characters and do not repeat the scores.`

func describe(req *Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Question type] %s\n", req.QuestionType)
	if req.Category != "" {
		fmt.Fprintf(&b, "[Category] %s\n", req.Category)
	}
	fmt.Fprintf(&b, "[Question] %s\n", req.Question)
	fmt.Fprintf(&b, "[Answer] %s\n", req.Answer)
	return b.String()
}

func buildAnalyzerPrompt(req *Request) string {
	return "Analyse the following interview answer.\n\n" + describe(req) +
		"\nDecide whether it is a bad case, whether it has weaknesses, and whether a follow-up question is needed."
}

func buildRubricPrompt(req *Request) string {
	return "Evaluate the following interview answer against the rubric.\n\n" + describe(req)
}

func buildFeedbackPrompt(req *Request, eval *RubricEvaluation) string {
	var b strings.Builder
	b.WriteString("Write feedback for the following interview answer.\n\n")
	b.WriteString(describe(req))
	b.WriteString("\n[Rubric]\n")
	for _, m := range eval.Metrics() {
		fmt.Fprintf(&b, "- %s: %d/5 (%s)\n", m.Name, m.Score, m.Comment)
	}
	return b.String()
}
