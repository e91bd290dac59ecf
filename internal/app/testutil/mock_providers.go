package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"

	"interview-ai/internal/app/api/provider"
	"interview-ai/internal/app/llm"
)

// MockTranscriptionProvider is a mock implementation of provider.TranscriptionProvider
type MockTranscriptionProvider struct {
	mock.Mock
}

func NewMockTranscriptionProvider(t *testing.T) *MockTranscriptionProvider {
	m := &MockTranscriptionProvider{}
	m.Test(t)
	return m
}

func (m *MockTranscriptionProvider) Transcribe(ctx context.Context, req *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.TranscriptionResponse), args.Error(1)
}

func (m *MockTranscriptionProvider) Name() string {
	return "mock"
}

func (m *MockTranscriptionProvider) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockLLMProvider is a mock implementation of llm.Provider
type MockLLMProvider struct {
	mock.Mock
}

func NewMockLLMProvider(t *testing.T) *MockLLMProvider {
	m := &MockLLMProvider{}
	m.Test(t)
	return m
}

func (m *MockLLMProvider) GenerateStructured(ctx context.Context, prompt string, out interface{}, opts llm.Options) (*llm.Response, error) {
	args := m.Called(ctx, prompt, out, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Response), args.Error(1)
}

func (m *MockLLMProvider) Name() string {
	return "mock"
}

func (m *MockLLMProvider) Model() string {
	return "mock-model"
}

// FillJSON returns a mock Run function that decodes body into the third
// argument of GenerateStructured.
func FillJSON(body string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		if err := json.Unmarshal([]byte(body), args.Get(2)); err != nil {
			panic(err)
		}
	}
}

// TaskIs matches llm.Options by task name
func TaskIs(task string) interface{} {
	return mock.MatchedBy(func(opts llm.Options) bool {
		return opts.Task == task
	})
}
