// Package testutil provides shared test doubles and fixtures.
//
// Mocks are built on testify's mock.Mock. For structured LLM calls use
// FillJSON to populate the caller's output value:
//
//	llmMock := testutil.NewMockLLMProvider(t)
//	llmMock.On("GenerateStructured", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
//	    Run(testutil.FillJSON(testutil.RubricJSON)).
//	    Return(&llm.Response{}, nil).Once()
package testutil
