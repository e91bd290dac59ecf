package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so tests do not see the host environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "ENVIRONMENT", "HOST", "PORT", "LOG_DIR",
		"STT_PROVIDER", "HUGGINGFACE_API_KEY", "HUGGINGFACE_MODEL_ID", "GPU_BASE_URL",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "STT_MODEL", "STT_LANGUAGE",
		"LLM_PROVIDER", "GEMINI_API_KEY", "GEMINI_MODEL_ID", "VLLM_MODEL_ID", "OPENAI_MODEL_ID",
		"LLM_TIMEOUT", "STT_TIMEOUT", "AUDIO_DOWNLOAD_TIMEOUT", "AUDIO_MAX_BYTES",
		"S3_ENDPOINT", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_REGION",
		"REDIS_ADDR", "REDIS_PASSWORD",
		"FEEDBACK_LOCK_TTL", "FEEDBACK_MAX_ANSWER_CHARS", "FEEDBACK_MIN_ANSWER_TOKENS",
	} {
		t.Setenv(key, "")
	}
}

// chdirTemp moves into an empty directory so no stray .env or config.yaml is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdirTemp(t)
	t.Setenv("HUGGINGFACE_API_KEY", "hf_test_token")
	t.Setenv("GEMINI_API_KEY", "AIzaTest-1234567890abcdef1234567890")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Environment)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, STTProviderHuggingFace, cfg.STT.Provider)
	assert.Equal(t, DefaultHuggingFaceModelID, cfg.STT.HuggingFaceModelID)
	assert.Equal(t, LLMProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, DefaultLLMTimeout, cfg.LLM.Timeout)
	assert.Equal(t, int64(DefaultAudioMaxBytes), cfg.Audio.MaxBytes)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	dir := chdirTemp(t)

	yamlBody := `
environment: production
server:
  port: "9000"
stt:
  provider: whisper_server
  gpu_base_url: http://gpu.internal:8080
  timeout: 45s
llm:
  provider: vllm
  gpu_base_url: http://gpu.internal:8080
feedback:
  max_answer_chars: 1200
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlBody), 0o644))
	t.Setenv("PORT", "9100")
	t.Setenv("LLM_TIMEOUT", "15")
	t.Setenv("FEEDBACK_LOCK_TTL", "2m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, STTProviderWhisperServer, cfg.STT.Provider)
	assert.Equal(t, 45*time.Second, cfg.STT.Timeout)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.Feedback.LockTTL)
	assert.Equal(t, 1200, cfg.Feedback.MaxAnswerChars)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := chdirTemp(t)
	// godotenv never overrides variables that exist, even when empty.
	for _, key := range []string{"HUGGINGFACE_API_KEY", "GEMINI_API_KEY", "STT_LANGUAGE"} {
		require.NoError(t, os.Unsetenv(key))
	}

	dotenv := "HUGGINGFACE_API_KEY=hf_from_file\nGEMINI_API_KEY=AIzaTest-1234567890abcdef1234567890\nSTT_LANGUAGE=en\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o644))

	path, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "hf_from_file", cfg.STT.HuggingFaceAPIKey)
	assert.Equal(t, "en", cfg.STT.Language)
}

func TestLoad_InvalidInteger(t *testing.T) {
	clearEnv(t)
	chdirTemp(t)
	t.Setenv("AUDIO_MAX_BYTES", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUDIO_MAX_BYTES")
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.STT.HuggingFaceAPIKey = "hf_test_token"
		cfg.LLM.GeminiAPIKey = "AIzaTest-1234567890abcdef1234567890"
		return cfg
	}

	testCases := []struct {
		name          string
		mutate        func(*Config)
		errorContains string
	}{
		{
			name:   "valid defaults",
			mutate: func(*Config) {},
		},
		{
			name:          "unknown environment",
			mutate:        func(c *Config) { c.Environment = "staging" },
			errorContains: "ENVIRONMENT",
		},
		{
			name:          "missing huggingface key",
			mutate:        func(c *Config) { c.STT.HuggingFaceAPIKey = "" },
			errorContains: "HUGGINGFACE_API_KEY",
		},
		{
			name:          "whisper server without url",
			mutate:        func(c *Config) { c.STT.Provider = STTProviderWhisperServer },
			errorContains: "GPU_BASE_URL",
		},
		{
			name: "openai stt with bad key",
			mutate: func(c *Config) {
				c.STT.Provider = STTProviderOpenAI
				c.STT.OpenAIAPIKey = "not-a-key"
			},
			errorContains: "must start with 'sk-'",
		},
		{
			name:          "bad gemini key",
			mutate:        func(c *Config) { c.LLM.GeminiAPIKey = "short" },
			errorContains: "Gemini",
		},
		{
			name:          "unknown llm provider",
			mutate:        func(c *Config) { c.LLM.Provider = "claude" },
			errorContains: "LLM_PROVIDER",
		},
		{
			name: "vllm with url",
			mutate: func(c *Config) {
				c.LLM.Provider = LLMProviderVLLM
				c.LLM.GPUBaseURL = "http://localhost:8001"
			},
		},
		{
			name:          "zero timeout",
			mutate:        func(c *Config) { c.STT.Timeout = 0 },
			errorContains: "STT timeout must be positive",
		},
		{
			name:          "bad port",
			mutate:        func(c *Config) { c.Server.Port = "70000" },
			errorContains: "port invalid",
		},
		{
			name:          "bad s3 endpoint",
			mutate:        func(c *Config) { c.Audio.S3Endpoint = "minio:9000" },
			errorContains: "S3_ENDPOINT",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}
