package config

import "time"

// Environments
const (
	EnvLocal      = "local"
	EnvProduction = "production"
)

// Provider names
const (
	STTProviderHuggingFace   = "huggingface"
	STTProviderWhisperServer = "whisper_server"
	STTProviderOpenAI        = "openai"

	LLMProviderGemini = "gemini"
	LLMProviderVLLM   = "vllm"
	LLMProviderOpenAI = "openai"
)

// Default configuration constants
const (
	DefaultConfigFile = "config.yaml"

	// Server
	DefaultEnvironment = EnvLocal
	DefaultHost        = "0.0.0.0"
	DefaultPort        = "8000"
	DefaultLogDir      = "logs"

	// STT
	DefaultSTTProvider        = STTProviderHuggingFace
	DefaultHuggingFaceModelID = "openai/whisper-large-v3-turbo"
	DefaultOpenAIBaseURL      = "https://api.openai.com/v1"
	DefaultSTTModel           = "whisper-1"
	DefaultSTTLanguage        = "ko"

	// LLM
	DefaultLLMProvider   = LLMProviderGemini
	DefaultGeminiModelID = "gemini-2.5-pro"
	DefaultVLLMModelID   = "Qwen/Qwen2.5-7B-Instruct"
	DefaultOpenAIModelID = "gpt-4o-mini"

	// Timeouts
	DefaultLLMTimeout           = 60 * time.Second
	DefaultSTTTimeout           = 120 * time.Second
	DefaultAudioDownloadTimeout = 30 * time.Second

	// Audio
	DefaultAudioMaxBytes = 25 << 20
	DefaultAWSRegion     = "ap-northeast-2"

	// Feedback
	DefaultFeedbackLockTTL         = 5 * time.Minute
	DefaultFeedbackMaxAnswerChars  = 5000
	DefaultFeedbackMinAnswerTokens = 3
)

// Default returns a Config populated with default values only.
func Default() *Config {
	return &Config{
		Environment: DefaultEnvironment,
		Server: ServerConfig{
			Host:   DefaultHost,
			Port:   DefaultPort,
			LogDir: DefaultLogDir,
		},
		STT: STTConfig{
			Provider:           DefaultSTTProvider,
			HuggingFaceModelID: DefaultHuggingFaceModelID,
			OpenAIBaseURL:      DefaultOpenAIBaseURL,
			Model:              DefaultSTTModel,
			Language:           DefaultSTTLanguage,
			Timeout:            DefaultSTTTimeout,
		},
		LLM: LLMConfig{
			Provider:      DefaultLLMProvider,
			GeminiModelID: DefaultGeminiModelID,
			VLLMModelID:   DefaultVLLMModelID,
			OpenAIBaseURL: DefaultOpenAIBaseURL,
			OpenAIModelID: DefaultOpenAIModelID,
			Timeout:       DefaultLLMTimeout,
		},
		Audio: AudioConfig{
			DownloadTimeout: DefaultAudioDownloadTimeout,
			MaxBytes:        DefaultAudioMaxBytes,
			AWSRegion:       DefaultAWSRegion,
		},
		Feedback: FeedbackConfig{
			LockTTL:         DefaultFeedbackLockTTL,
			MaxAnswerChars:  DefaultFeedbackMaxAnswerChars,
			MinAnswerTokens: DefaultFeedbackMinAnswerTokens,
		},
	}
}
