package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the fully resolved server configuration.
type Config struct {
	Environment string         `yaml:"environment"`
	Server      ServerConfig   `yaml:"server"`
	STT         STTConfig      `yaml:"stt"`
	LLM         LLMConfig      `yaml:"llm"`
	Audio       AudioConfig    `yaml:"audio"`
	Redis       RedisConfig    `yaml:"redis"`
	Feedback    FeedbackConfig `yaml:"feedback"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host   string `yaml:"host"`
	Port   string `yaml:"port"`
	LogDir string `yaml:"log_dir"`
}

// STTConfig selects and configures the speech-to-text backend
type STTConfig struct {
	Provider           string        `yaml:"provider"`
	HuggingFaceAPIKey  string        `yaml:"huggingface_api_key"`
	HuggingFaceModelID string        `yaml:"huggingface_model_id"`
	GPUBaseURL         string        `yaml:"gpu_base_url"`
	OpenAIAPIKey       string        `yaml:"openai_api_key"`
	OpenAIBaseURL      string        `yaml:"openai_base_url"`
	Model              string        `yaml:"model"`
	Language           string        `yaml:"language"`
	Timeout            time.Duration `yaml:"timeout"`
}

// LLMConfig selects and configures the language model backend
type LLMConfig struct {
	Provider      string        `yaml:"provider"`
	GeminiAPIKey  string        `yaml:"gemini_api_key"`
	GeminiModelID string        `yaml:"gemini_model_id"`
	GPUBaseURL    string        `yaml:"gpu_base_url"`
	VLLMModelID   string        `yaml:"vllm_model_id"`
	OpenAIAPIKey  string        `yaml:"openai_api_key"`
	OpenAIBaseURL string        `yaml:"openai_base_url"`
	OpenAIModelID string        `yaml:"openai_model_id"`
	Timeout       time.Duration `yaml:"timeout"`
}

// AudioConfig controls how audio is fetched
type AudioConfig struct {
	DownloadTimeout    time.Duration `yaml:"download_timeout"`
	MaxBytes           int64         `yaml:"max_bytes"`
	S3Endpoint         string        `yaml:"s3_endpoint"`
	AWSAccessKeyID     string        `yaml:"aws_access_key_id"`
	AWSSecretAccessKey string        `yaml:"aws_secret_access_key"`
	AWSRegion          string        `yaml:"aws_region"`
}

// RedisConfig enables the shared in-progress guard when Addr is set
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
}

// FeedbackConfig tunes the feedback pipeline
type FeedbackConfig struct {
	LockTTL         time.Duration `yaml:"lock_ttl"`
	MaxAnswerChars  int           `yaml:"max_answer_chars"`
	MinAnswerTokens int           `yaml:"min_answer_tokens"`
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Load resolves configuration: defaults, then the optional YAML file, then
// the environment (including any .env file). The result is validated.
func Load() (*Config, error) {
	if _, err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()

	path := getEnvOrDefault("CONFIG_FILE", DefaultConfigFile)
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadFile merges the YAML file at path into c. A missing file is not an error.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	overrideString(&c.Environment, "ENVIRONMENT")
	overrideString(&c.Server.Host, "HOST")
	overrideString(&c.Server.Port, "PORT")
	overrideString(&c.Server.LogDir, "LOG_DIR")

	overrideString(&c.STT.Provider, "STT_PROVIDER")
	overrideString(&c.STT.HuggingFaceAPIKey, "HUGGINGFACE_API_KEY")
	overrideString(&c.STT.HuggingFaceModelID, "HUGGINGFACE_MODEL_ID")
	overrideString(&c.STT.GPUBaseURL, "GPU_BASE_URL")
	overrideString(&c.STT.OpenAIAPIKey, "OPENAI_API_KEY")
	overrideString(&c.STT.OpenAIBaseURL, "OPENAI_BASE_URL")
	overrideString(&c.STT.Model, "STT_MODEL")
	overrideString(&c.STT.Language, "STT_LANGUAGE")

	overrideString(&c.LLM.Provider, "LLM_PROVIDER")
	overrideString(&c.LLM.GeminiAPIKey, "GEMINI_API_KEY")
	overrideString(&c.LLM.GeminiModelID, "GEMINI_MODEL_ID")
	overrideString(&c.LLM.GPUBaseURL, "GPU_BASE_URL")
	overrideString(&c.LLM.VLLMModelID, "VLLM_MODEL_ID")
	overrideString(&c.LLM.OpenAIAPIKey, "OPENAI_API_KEY")
	overrideString(&c.LLM.OpenAIBaseURL, "OPENAI_BASE_URL")
	overrideString(&c.LLM.OpenAIModelID, "OPENAI_MODEL_ID")

	overrideString(&c.Audio.S3Endpoint, "S3_ENDPOINT")
	overrideString(&c.Audio.AWSAccessKeyID, "AWS_ACCESS_KEY_ID")
	overrideString(&c.Audio.AWSSecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	overrideString(&c.Audio.AWSRegion, "AWS_REGION")

	overrideString(&c.Redis.Addr, "REDIS_ADDR")
	overrideString(&c.Redis.Password, "REDIS_PASSWORD")

	for _, fn := range []func() error{
		func() error { return overrideDuration(&c.LLM.Timeout, "LLM_TIMEOUT") },
		func() error { return overrideDuration(&c.STT.Timeout, "STT_TIMEOUT") },
		func() error { return overrideDuration(&c.Audio.DownloadTimeout, "AUDIO_DOWNLOAD_TIMEOUT") },
		func() error { return overrideInt64(&c.Audio.MaxBytes, "AUDIO_MAX_BYTES") },
		func() error { return overrideDuration(&c.Feedback.LockTTL, "FEEDBACK_LOCK_TTL") },
		func() error { return overrideInt(&c.Feedback.MaxAnswerChars, "FEEDBACK_MAX_ANSWER_CHARS") },
		func() error { return overrideInt(&c.Feedback.MinAnswerTokens, "FEEDBACK_MIN_ANSWER_TOKENS") },
	} {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

// Validate fails fast on settings the selected providers cannot run without.
func (c *Config) Validate() error {
	if c.Environment != EnvLocal && c.Environment != EnvProduction {
		return fmt.Errorf("ENVIRONMENT must be %q or %q, got %q", EnvLocal, EnvProduction, c.Environment)
	}
	if err := ValidatePort(c.Server.Port, "server"); err != nil {
		return err
	}

	switch c.STT.Provider {
	case STTProviderHuggingFace:
		if c.STT.HuggingFaceAPIKey == "" {
			return fmt.Errorf("HUGGINGFACE_API_KEY is required for STT provider %q", c.STT.Provider)
		}
	case STTProviderWhisperServer:
		if err := ValidateURL(c.STT.GPUBaseURL, "GPU_BASE_URL"); err != nil {
			return err
		}
	case STTProviderOpenAI:
		if err := ValidateAPIKey(c.STT.OpenAIAPIKey, "OpenAI"); err != nil {
			return err
		}
		if err := ValidateURL(c.STT.OpenAIBaseURL, "OPENAI_BASE_URL"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown STT_PROVIDER %q", c.STT.Provider)
	}

	switch c.LLM.Provider {
	case LLMProviderGemini:
		if err := ValidateAPIKey(c.LLM.GeminiAPIKey, "Gemini"); err != nil {
			return err
		}
	case LLMProviderVLLM:
		if err := ValidateURL(c.LLM.GPUBaseURL, "GPU_BASE_URL"); err != nil {
			return err
		}
	case LLMProviderOpenAI:
		if err := ValidateAPIKey(c.LLM.OpenAIAPIKey, "OpenAI"); err != nil {
			return err
		}
		if err := ValidateURL(c.LLM.OpenAIBaseURL, "OPENAI_BASE_URL"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	if err := ValidateTimeout(c.STT.Timeout, "STT"); err != nil {
		return err
	}
	if err := ValidateTimeout(c.LLM.Timeout, "LLM"); err != nil {
		return err
	}
	if err := ValidateTimeout(c.Audio.DownloadTimeout, "audio download"); err != nil {
		return err
	}
	if c.Audio.MaxBytes <= 0 {
		return fmt.Errorf("AUDIO_MAX_BYTES must be positive")
	}
	if c.Audio.S3Endpoint != "" {
		if err := ValidateURL(c.Audio.S3Endpoint, "S3_ENDPOINT"); err != nil {
			return err
		}
	}
	if err := ValidateTimeout(c.Feedback.LockTTL, "feedback lock"); err != nil {
		return err
	}
	if c.Feedback.MaxAnswerChars <= 0 {
		return fmt.Errorf("FEEDBACK_MAX_ANSWER_CHARS must be positive")
	}
	if c.Feedback.MinAnswerTokens < 0 {
		return fmt.Errorf("FEEDBACK_MIN_ANSWER_TOKENS cannot be negative")
	}
	return nil
}
