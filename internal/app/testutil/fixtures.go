package testutil

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Sample interview content
const (
	SampleQuestion = "프로세스와 스레드의 차이를 설명해 주세요."
	SampleAnswer   = "프로세스는 운영체제로부터 독립된 메모리 공간을 할당받는 실행 단위이고, " +
		"스레드는 프로세스 안에서 스택만 따로 가지고 힙과 코드 영역을 공유하는 실행 흐름입니다. " +
		"그래서 스레드 간 통신은 빠르지만 동기화 문제가 생길 수 있습니다."
	SampleTranscript = "트랜잭션 격리 수준에는 네 가지가 있습니다."
)

// Canned structured LLM outputs
const (
	AnalysisJSON = `{"is_bad_case":false,"short_advice":"예시를 하나 더 들어 보세요.","has_weakness":true,"needs_followup":false}`

	BadCaseAnalysisJSON = `{"is_bad_case":true,"bad_case_type":"REFUSE_TO_ANSWER","short_advice":"답변을 시도해 보세요.","has_weakness":false,"needs_followup":false}`

	RubricJSON = `{"accuracy":4,"logic":4,"specificity":3,"completeness":3,"delivery":5,` +
		`"accuracy_rationale":"핵심 개념이 정확합니다.","logic_rationale":"흐름이 자연스럽습니다.",` +
		`"specificity_rationale":"예시가 부족합니다.","completeness_rationale":"컨텍스트 스위칭 언급이 없습니다.",` +
		`"delivery_rationale":"명확하게 전달됩니다."}`

	FeedbackJSON = `{"strengths":"메모리 구조 차이를 정확히 설명했습니다.","improvements":"컨텍스트 스위칭 비용을 함께 설명해 보세요."}`
)

// NewObservedLogger returns a logger whose entries can be inspected
func NewObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}
