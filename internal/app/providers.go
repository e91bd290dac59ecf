package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"

	"interview-ai/internal/api/server"
	"interview-ai/internal/api/v1/dto"
	"interview-ai/internal/api/v1/handlers"
	"interview-ai/internal/api/v1/routes"
	"interview-ai/internal/api/v1/services"
	"interview-ai/internal/app/api/provider"
	"interview-ai/internal/app/audio"
	"interview-ai/internal/app/feedback"
	"interview-ai/internal/app/llm"
	"interview-ai/internal/app/lock"
	"interview-ai/internal/app/metrics"
	"interview-ai/internal/config"
	"interview-ai/internal/logging"
)

const (
	serverReadTimeout = 30 * time.Second
	serverIdleTimeout = 120 * time.Second
	redisPingTimeout  = 5 * time.Second
)

// ServerSet wires the HTTP server from a loaded config and a root logger
var ServerSet = wire.NewSet(
	provideServerConfig,
	provideRecorder,
	provideTranscriber,
	provideObjectReader,
	provideFetcher,
	provideSTTService,
	provideLLM,
	providePipeline,
	provideLocker,
	provideFeedbackService,
	provideServiceContainer,
	provideHealthHandler,
	server.NewServer,
)

func provideServerConfig(cfg *config.Config) server.Config {
	// Feedback makes up to three sequential LLM calls; leave room for all of them.
	writeTimeout := 3*cfg.LLM.Timeout + cfg.Audio.DownloadTimeout
	if stt := cfg.STT.Timeout + cfg.Audio.DownloadTimeout; stt > writeTimeout {
		writeTimeout = stt
	}
	return server.Config{
		Addr:         cfg.Addr(),
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: writeTimeout + serverReadTimeout,
		IdleTimeout:  serverIdleTimeout,
		Environment:  cfg.Environment,
		Release:      cfg.IsProduction(),
	}
}

func provideRecorder(logger *zap.Logger) *metrics.Recorder {
	return metrics.New(logging.Metrics(logger))
}

func provideTranscriber(cfg *config.Config) (provider.TranscriptionProvider, error) {
	return provider.New(cfg.STT)
}

func provideObjectReader(cfg *config.Config) (audio.ObjectReader, error) {
	return audio.NewMinioReader(audio.S3Config{
		Endpoint:        cfg.Audio.S3Endpoint,
		AccessKeyID:     cfg.Audio.AWSAccessKeyID,
		SecretAccessKey: cfg.Audio.AWSSecretAccessKey,
		Region:          cfg.Audio.AWSRegion,
	})
}

func provideFetcher(cfg *config.Config, objects audio.ObjectReader, logger *zap.Logger) *audio.Fetcher {
	return audio.NewFetcher(nil, objects, cfg.Audio.MaxBytes, cfg.Audio.DownloadTimeout, logger.Named("audio"))
}

func provideSTTService(
	cfg *config.Config,
	transcriber provider.TranscriptionProvider,
	fetcher *audio.Fetcher,
	recorder *metrics.Recorder,
	logger *zap.Logger,
) services.STTService {
	return services.NewSTTService(transcriber, fetcher, recorder, cfg.STT.Language, logger.Named("stt"))
}

func provideLLM(cfg *config.Config, recorder *metrics.Recorder) (llm.Provider, error) {
	p, err := llm.New(cfg.LLM)
	if err != nil {
		return nil, err
	}
	return llm.WithMetrics(p, recorder), nil
}

func providePipeline(cfg *config.Config, model llm.Provider, logger *zap.Logger) *feedback.Pipeline {
	checker := feedback.Checker{
		MaxAnswerChars:  cfg.Feedback.MaxAnswerChars,
		MinAnswerTokens: cfg.Feedback.MinAnswerTokens,
	}
	return feedback.NewPipeline(model, checker, logger.Named("feedback"))
}

// provideLocker uses redis when REDIS_ADDR is set so the in-progress guard
// holds across replicas; a single instance falls back to memory.
func provideLocker(cfg *config.Config, logger *zap.Logger) (lock.Locker, func(), error) {
	if cfg.Redis.Addr == "" {
		logger.Info("feedback lock: in-memory")
		return lock.NewMemoryLocker(), func() {}, nil
	}

	client := lock.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
	locker := lock.NewRedisLocker(client)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := locker.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis %s unreachable: %w", cfg.Redis.Addr, err)
	}

	logger.Info("feedback lock: redis", zap.String("addr", cfg.Redis.Addr))
	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	return locker, cleanup, nil
}

func provideFeedbackService(cfg *config.Config, pipeline *feedback.Pipeline, locker lock.Locker, logger *zap.Logger) services.FeedbackService {
	return services.NewFeedbackService(pipeline, locker, cfg.Feedback.LockTTL, logger.Named("feedback"))
}

func provideServiceContainer(stt services.STTService, fb services.FeedbackService) *routes.ServiceContainer {
	return &routes.ServiceContainer{
		STTService:      stt,
		FeedbackService: fb,
	}
}

func provideHealthHandler(cfg *config.Config, transcriber provider.TranscriptionProvider, model llm.Provider) *handlers.HealthHandler {
	return handlers.NewHealthHandler(dto.HealthData{
		Environment: cfg.Environment,
		STTProvider: transcriber.Name(),
		LLMProvider: model.Name(),
		Version:     Version,
	}, transcriber)
}
