package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides_Harvest(t *testing.T) {
	t.Run("GROW_ZERO_DAY_POLICY overrides file value", func(t *testing.T) {
		t.Setenv("GROW_ZERO_DAY_POLICY", "forced")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "forced", cfg.Harvest.ZeroDayPolicy)
	})

	t.Run("GROW_NEGATIVE_POLICY overrides file value", func(t *testing.T) {
		t.Setenv("GROW_NEGATIVE_POLICY", "complete")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "complete", cfg.Harvest.NegativePolicy)
	})

	t.Run("empty env leaves defaults", func(t *testing.T) {
		t.Setenv("GROW_ZERO_DAY_POLICY", "")
		t.Setenv("GROW_NEGATIVE_POLICY", "")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "immediate", cfg.Harvest.ZeroDayPolicy)
		assert.Equal(t, "reject", cfg.Harvest.NegativePolicy)
	})
}

func TestEnvOverrides_History(t *testing.T) {
	t.Run("GROW_HISTORY_DB sets path", func(t *testing.T) {
		t.Setenv("GROW_HISTORY_DB", "/tmp/runs.db")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/tmp/runs.db", cfg.History.DatabasePath)
	})

	for _, v := range []string{"1", "true", "YES", " on "} {
		t.Run("GROW_HISTORY_DISABLED="+v, func(t *testing.T) {
			t.Setenv("GROW_HISTORY_DISABLED", v)

			cfg := DefaultConfig()
			cfg.applyEnvOverrides()

			assert.False(t, cfg.History.Enabled)
		})
	}

	t.Run("GROW_HISTORY_DISABLED=0 keeps history", func(t *testing.T) {
		t.Setenv("GROW_HISTORY_DISABLED", "0")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.True(t, cfg.History.Enabled)
	})
}

func TestEnvOverrides_LoggingAndUI(t *testing.T) {
	t.Setenv("GROW_LOG_LEVEL", "debug")
	t.Setenv("GROW_LOG_FILE", "/tmp/grow.log")
	t.Setenv("GROW_DARK_MODE", "1")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/grow.log", cfg.Logging.File)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestLoad_AppliesEnvOverrides(t *testing.T) {
	t.Setenv("GROW_ZERO_DAY_POLICY", "forced")

	cfg, err := Load(DefaultPath(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, "forced", cfg.Harvest.ZeroDayPolicy)
}
