package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.Swagger)
	assert.False(t, cfg.Server.ExposeFilters)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "*", cfg.Cors.AllowedOrigins)
	assert.Equal(t, 3600, cfg.Cors.MaxAgeSeconds)
	assert.Equal(t, []string{"/appointments/*", "/ratings"}, cfg.Auth.PatternList())
	assert.True(t, cfg.Auth.CheckRevocation)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("AUTH_PATTERNS", "/appointments/*,/ratings,/users/*")
	t.Setenv("AUTH_JWT_SECRET", "from-env")
	t.Setenv("DATABASE_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"/appointments/*", "/ratings", "/users/*"}, cfg.Auth.PatternList())
	assert.True(t, cfg.Database.Enabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_FORMAT=console\nCORS_MAX_AGE_SECONDS=60\n"), 0644))
	t.Cleanup(func() {
		os.Unsetenv("LOG_FORMAT")
		os.Unsetenv("CORS_MAX_AGE_SECONDS")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 60, cfg.Cors.MaxAgeSeconds)
}

func TestLoadConfig_AuthPatternsWithoutEntries(t *testing.T) {
	t.Setenv("AUTH_PATTERNS", " , ")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, cfg.Auth.PatternList())
}
