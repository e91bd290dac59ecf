package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "interview-ai/internal/app/errors"
	"interview-ai/internal/app/metrics"
	"interview-ai/internal/config"
)

type score struct {
	Value     int    `json:"value" description:"1 to 5"`
	Rationale string `json:"rationale"`
}

type evaluation struct {
	Verdict string  `json:"verdict" enum:"pass,fail"`
	Note    string  `json:"note,omitempty"`
	Scores  []score `json:"scores"`
	Overall score   `json:"overall"`
}

func TestSchemaFor_InlinesNamedStructs(t *testing.T) {
	def, err := SchemaFor(&evaluation{})
	require.NoError(t, err)

	assert.Equal(t, jsonschema.Object, def.Type)
	assert.Empty(t, def.Defs)
	assert.ElementsMatch(t, []string{"verdict", "scores", "overall"}, def.Required)

	overall := def.Properties["overall"]
	assert.Empty(t, overall.Ref)
	assert.Equal(t, jsonschema.Object, overall.Type)
	assert.Equal(t, jsonschema.Integer, overall.Properties["value"].Type)

	items := def.Properties["scores"].Items
	require.NotNil(t, items)
	assert.Empty(t, items.Ref)
	assert.Equal(t, jsonschema.String, items.Properties["rationale"].Type)
}

func TestSchemaFor_RejectsNonStructPointer(t *testing.T) {
	_, err := SchemaFor(evaluation{})
	assert.Error(t, err)

	_, err = SchemaFor(new(string))
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	def, err := SchemaFor(&evaluation{})
	require.NoError(t, err)

	testCases := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "plain json",
			content: `{"verdict":"pass","scores":[{"value":4,"rationale":"ok"}],"overall":{"value":4,"rationale":"good"}}`,
		},
		{
			name:    "fenced json with null optional",
			content: "```json\n{\"verdict\":\"fail\",\"note\":null,\"scores\":[],\"overall\":{\"value\":2,\"rationale\":\"thin\"}}\n```",
		},
		{
			name:    "enum violation",
			content: `{"verdict":"maybe","scores":[],"overall":{"value":2,"rationale":"x"}}`,
			wantErr: true,
		},
		{
			name:    "fractional integer",
			content: `{"verdict":"pass","scores":[],"overall":{"value":2.5,"rationale":"x"}}`,
			wantErr: true,
		},
		{
			name:    "missing required",
			content: `{"verdict":"pass","scores":[]}`,
			wantErr: true,
		},
		{
			name:    "not json",
			content: "I think the answer is good.",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out evaluation
			err := Decode(def, tc.content, &out)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, out.Verdict)
			assert.NotZero(t, out.Overall.Value)
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("  {\"a\":1} \n"))
}

func TestErrorClassification(t *testing.T) {
	testCases := []struct {
		name string
		err  *Error
		want apperrors.Code
	}{
		{"rate limited", ErrorFromStatus("gemini", http.StatusTooManyRequests, nil), apperrors.CodeRateLimitExceeded},
		{"unauthorized", ErrorFromStatus("gemini", http.StatusUnauthorized, nil), apperrors.CodeAPIKeyInvalid},
		{"gateway timeout", ErrorFromStatus("vllm", http.StatusGatewayTimeout, nil), apperrors.CodeLLMTimeout},
		{"server error", ErrorFromStatus("vllm", http.StatusInternalServerError, nil), apperrors.CodeLLMServiceUnavailable},
		{"deadline", ErrorFromTransport("vllm", context.DeadlineExceeded), apperrors.CodeLLMTimeout},
		{"refused", ErrorFromTransport("vllm", errors.New("connection refused")), apperrors.CodeLLMServiceUnavailable},
		{"parse", ParseError("openai", errors.New("bad json")), apperrors.CodeLLMResponseParseFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var coded apperrors.Coded
			require.True(t, errors.As(tc.err, &coded))
			assert.Equal(t, tc.want, coded.ErrorCode())
		})
	}
}

type stubProvider struct {
	resp *Response
	err  error
}

func (s *stubProvider) GenerateStructured(context.Context, string, interface{}, Options) (*Response, error) {
	return s.resp, s.err
}

func (s *stubProvider) Name() string  { return "stub" }
func (s *stubProvider) Model() string { return "stub-1" }

func TestWithMetrics(t *testing.T) {
	recorder := metrics.New(nil)
	p := WithMetrics(&stubProvider{resp: &Response{Text: "{}", PromptTokens: 10, CompletionTokens: 5}}, recorder)

	_, err := p.GenerateStructured(context.Background(), "prompt", &evaluation{}, Options{Task: "rubric"})
	require.NoError(t, err)

	failing := WithMetrics(&stubProvider{err: ParseError("stub", errors.New("bad"))}, recorder)
	_, err = failing.GenerateStructured(context.Background(), "prompt", &evaluation{}, Options{Task: "analyzer"})
	require.Error(t, err)

	count, err := testutil.GatherAndCount(recorder.Registry(), "interview_ai_llm_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "stub", p.Name())
}

func TestWithMetrics_NilRecorder(t *testing.T) {
	inner := &stubProvider{}
	assert.Same(t, Provider(inner), WithMetrics(inner, nil))
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(config.LLMConfig{Provider: "does-not-exist", Timeout: time.Second})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestRegistry(t *testing.T) {
	RegisterProvider("stub-test", func(cfg config.LLMConfig, client *http.Client) (Provider, error) {
		assert.Equal(t, 5*time.Second, client.Timeout)
		return &stubProvider{}, nil
	})

	p, err := New(config.LLMConfig{Provider: "stub-test", Timeout: 5 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, "stub", p.Name())
	assert.Contains(t, ListRegisteredProviders(), "stub-test")
}
