package config_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/fwojciec/fable"
	"github.com/fwojciec/fable/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every FABLE_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FABLE_ENV", "FABLE_LOG_LEVEL", "FABLE_LOG_FILE",
		"FABLE_FADE_SPEED", "FABLE_WATCH", "FABLE_THEME",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, config.Production, cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.Watch)
	assert.Equal(t, "auto", cfg.Theme)
	assert.Equal(t, int64(1), cfg.FadeSpeed(), "fades run in real time by default")
}

func TestLoad_Development(t *testing.T) {
	clearEnv(t)
	t.Setenv("FABLE_ENV", "development")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, config.Development, cfg.Environment)
	assert.Equal(t, int64(fable.DefaultFadeSpeed), cfg.FadeSpeed())
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("FABLE_ENV", "production")
	t.Setenv("FABLE_LOG_LEVEL", "debug")
	t.Setenv("FABLE_LOG_FILE", "/tmp/fable.log")
	t.Setenv("FABLE_WATCH", "true")
	t.Setenv("FABLE_THEME", "light")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, config.Production, cfg.Environment)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "/tmp/fable.log", cfg.LogFile)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, int64(1), cfg.FadeSpeed())
}

func TestLoad_SpeedOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("FABLE_ENV", "production")
	t.Setenv("FABLE_FADE_SPEED", "7")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.FadeSpeed())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown environment", "FABLE_ENV", "staging"},
		{"bad speed", "FABLE_FADE_SPEED", "fast"},
		{"negative speed", "FABLE_FADE_SPEED", "-2"},
		{"bad level", "FABLE_LOG_LEVEL", "loud"},
		{"bad watch", "FABLE_WATCH", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := config.Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse env:")
		})
	}
}
