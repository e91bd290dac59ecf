package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Local(t *testing.T) {
	logger, err := New("local", "")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_ProductionWritesLogFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := New("production", dir)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger.Info("server started", zap.String("addr", ":8000"))
	logger.Error("upstream failed", zap.String("code", "llm_timeout"))
	_ = logger.Sync()

	appLog, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(appLog), "server started")
	assert.Contains(t, string(appLog), "upstream failed")

	errorLog, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(errorLog), "server started")
	assert.Contains(t, string(errorLog), "llm_timeout")
}

func TestMetrics_NamedChild(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Metrics(zap.New(core)).Info("LLM_METRIC")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, MetricsLoggerName, logs.All()[0].LoggerName)
}
