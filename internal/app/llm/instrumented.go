package llm

import (
	"context"
	"time"

	"interview-ai/internal/app/metrics"
)

// instrumented records every call on a metrics.Recorder
type instrumented struct {
	Provider
	recorder *metrics.Recorder
}

// WithMetrics wraps p so each call is counted and logged as an LLM metric
func WithMetrics(p Provider, recorder *metrics.Recorder) Provider {
	if recorder == nil {
		return p
	}
	return &instrumented{Provider: p, recorder: recorder}
}

func (i *instrumented) GenerateStructured(ctx context.Context, prompt string, out interface{}, opts Options) (*Response, error) {
	start := time.Now()
	resp, err := i.Provider.GenerateStructured(ctx, prompt, out, opts)
	i.record(opts, resp, err, time.Since(start))
	return resp, err
}

func (i *instrumented) record(opts Options, resp *Response, err error, latency time.Duration) {
	call := metrics.LLMCall{
		Provider: i.Name(),
		Model:    i.Model(),
		Task:     opts.Task,
		Latency:  latency,
		Err:      err,
	}
	if resp != nil {
		call.PromptTokens = resp.PromptTokens
		call.CompletionTokens = resp.CompletionTokens
	}
	i.recorder.RecordLLM(call)
}
