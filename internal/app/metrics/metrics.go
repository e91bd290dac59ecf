package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apperrors "interview-ai/internal/app/errors"
)

const namespace = "interview_ai"

// Recorder owns the prometheus collectors and the metrics logger.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry
	logger   *zap.Logger

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	llmCalls   *prometheus.CounterVec
	llmTokens  *prometheus.CounterVec
	llmLatency *prometheus.HistogramVec

	sttCalls   *prometheus.CounterVec
	sttLatency *prometheus.HistogramVec
}

// LLMCall describes one completed language model request.
type LLMCall struct {
	Provider         string
	Model            string
	Task             string
	PromptTokens     int
	CompletionTokens int
	Latency          time.Duration
	Err              error
}

// STTCall describes one completed transcription request.
type STTCall struct {
	Provider   string
	AudioBytes int
	TextChars  int
	Latency    time.Duration
	Err        error
}

// New creates a Recorder backed by its own registry. logger should be the
// named metrics logger; it may be nil.
func New(logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Recorder{
		registry: prometheus.NewRegistry(),
		logger:   logger,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		llmCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_calls_total",
			Help:      "LLM calls by provider, task and outcome.",
		}, []string{"provider", "model", "task", "outcome"}),
		llmTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_tokens_total",
			Help:      "LLM tokens consumed by provider and kind.",
		}, []string{"provider", "model", "kind"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_call_duration_seconds",
			Help:      "LLM call latency by provider and task.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60, 120},
		}, []string{"provider", "task"}),
		sttCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stt_calls_total",
			Help:      "Transcription calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		sttLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stt_call_duration_seconds",
			Help:      "Transcription latency by provider.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60, 120},
		}, []string{"provider"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests, r.httpLatency,
		r.llmCalls, r.llmTokens, r.llmLatency,
		r.sttCalls, r.sttLatency,
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// ObserveHTTP records one served HTTP request.
func (r *Recorder) ObserveHTTP(route, method string, status int, latency time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpLatency.WithLabelValues(route, method).Observe(latency.Seconds())
}

// RecordLLM records an LLM call and writes an LLM_METRIC log line.
func (r *Recorder) RecordLLM(call LLMCall) {
	if r == nil {
		return
	}
	outcome := Outcome(call.Err)

	r.llmCalls.WithLabelValues(call.Provider, call.Model, call.Task, outcome).Inc()
	r.llmLatency.WithLabelValues(call.Provider, call.Task).Observe(call.Latency.Seconds())
	if call.PromptTokens > 0 {
		r.llmTokens.WithLabelValues(call.Provider, call.Model, "prompt").Add(float64(call.PromptTokens))
	}
	if call.CompletionTokens > 0 {
		r.llmTokens.WithLabelValues(call.Provider, call.Model, "completion").Add(float64(call.CompletionTokens))
	}

	fields := []zap.Field{
		zap.String("provider", call.Provider),
		zap.String("model", call.Model),
		zap.String("task", call.Task),
		zap.Int("prompt_tokens", call.PromptTokens),
		zap.Int("completion_tokens", call.CompletionTokens),
		zap.Int("total_tokens", call.PromptTokens+call.CompletionTokens),
		zap.Int64("latency_ms", call.Latency.Milliseconds()),
		zap.String("outcome", outcome),
	}
	if call.Err != nil {
		fields = append(fields, zap.Error(call.Err))
	}
	r.logger.Info("LLM_METRIC", fields...)
}

// RecordSTT records a transcription call and writes an STT_METRIC log line.
func (r *Recorder) RecordSTT(call STTCall) {
	if r == nil {
		return
	}
	outcome := Outcome(call.Err)

	r.sttCalls.WithLabelValues(call.Provider, outcome).Inc()
	r.sttLatency.WithLabelValues(call.Provider).Observe(call.Latency.Seconds())

	fields := []zap.Field{
		zap.String("provider", call.Provider),
		zap.Int("audio_bytes", call.AudioBytes),
		zap.Int("text_chars", call.TextChars),
		zap.Int64("latency_ms", call.Latency.Milliseconds()),
		zap.String("outcome", outcome),
	}
	if call.Err != nil {
		fields = append(fields, zap.Error(call.Err))
	}
	r.logger.Info("STT_METRIC", fields...)
}

// Outcome labels a call result: "success", the error code, or "error".
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	var coded apperrors.Coded
	if errors.As(err, &coded) {
		return string(coded.ErrorCode())
	}
	return "error"
}
