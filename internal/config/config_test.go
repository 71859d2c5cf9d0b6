package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TEMIS_HOME", "TEMIS_DB", "TEMIS_TEMPLATES", "TEMIS_OWNER", "TEMIS_DEBUG", "TEMIS_LOG_USE_CASES", "TEMIS_MAX_PER_DAY"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := LoadConfig()

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 3, cfg.MaxPerDay)
	assert.Equal(t, "me", cfg.Owner)
	assert.False(t, cfg.Debug)
	assert.Equal(t, filepath.Join(cfg.Home, "temis.db"), cfg.DBPath)
}

func TestLoadConfig_HomeMovesPaths(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEMIS_HOME", "/srv/temis")

	cfg := LoadConfig()
	assert.Equal(t, "/srv/temis", cfg.Home)
	assert.Equal(t, filepath.Join("/srv/temis", "temis.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join("/srv/temis", "templates"), cfg.TemplatesDir)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEMIS_HOME", "/srv/temis")
	t.Setenv("TEMIS_DB", "/tmp/x.db")
	t.Setenv("TEMIS_TEMPLATES", "/tmp/tpl")
	t.Setenv("TEMIS_OWNER", "aria")
	t.Setenv("TEMIS_DEBUG", "true")
	t.Setenv("TEMIS_LOG_USE_CASES", "1")
	t.Setenv("TEMIS_MAX_PER_DAY", "5")

	cfg := LoadConfig()
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "/tmp/tpl", cfg.TemplatesDir)
	assert.Equal(t, "aria", cfg.Owner)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, 5, cfg.MaxPerDay)
}

func TestLoadConfig_IgnoresMalformedCap(t *testing.T) {
	for _, v := range []string{"0", "-2", "many"} {
		t.Run(v, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("TEMIS_MAX_PER_DAY", v)
			assert.Equal(t, 3, LoadConfig().MaxPerDay)
		})
	}
}
