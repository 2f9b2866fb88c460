package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/samplegen/internal/env"
	"github.com/ekisa-team/samplegen/internal/envvar"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(env.Production, WithOutput(&buf))

	log.Info("Model fetched", "model_id", "gpt2")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Model fetched", entry["msg"])
	assert.Equal(t, "gpt2", entry["model_id"])
}

func TestNew_DevelopmentIncludesDebug(t *testing.T) {
	t.Setenv(envvar.SamplegenLogLevel, "")

	var buf bytes.Buffer
	log := New(env.Development, WithOutput(&buf))

	log.Debug("Export output", "line", "ok")
	assert.Contains(t, buf.String(), "Export output")
}

func TestNew_LevelFromEnv(t *testing.T) {
	t.Setenv(envvar.SamplegenLogLevel, "warn")

	var buf bytes.Buffer
	log := New(env.Development, WithOutput(&buf))

	log.Info("hidden")
	assert.Empty(t, buf.String())
	assert.False(t, log.Enabled(t.Context(), slog.LevelInfo))
}

func TestNew_WithLevelOverridesEnv(t *testing.T) {
	t.Setenv(envvar.SamplegenLogLevel, "debug")

	var buf bytes.Buffer
	log := New(env.Development, WithOutput(&buf), WithLevel(slog.LevelError))

	log.Warn("hidden")
	assert.Empty(t, buf.String())
}

func TestNew_LogToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samplegen.log")

	var buf bytes.Buffer
	log := New(env.Production,
		WithOutput(&buf),
		WithLogToFile(true),
		WithLogFile(path),
	)

	log.With("component", "manager").Warn("Fetch failed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Fetch failed")
	assert.Contains(t, string(data), "manager")
	assert.Contains(t, buf.String(), "Fetch failed")
}
