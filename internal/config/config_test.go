package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "local-development-signing-key"

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		t.Setenv("DUTYLEDGER_JWT_SECRET", testSecret)

		cfg, err := LoadFrom(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "dutyledger", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, 8080, cfg.App.Port)
		assert.Equal(t, ":8080", cfg.Addr())
		assert.Equal(t, "./data/dutyledger.db", cfg.Database.Path)
		assert.Equal(t, 12*time.Hour, cfg.JWT.TokenDuration)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowOrigins)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("loads values from environment variables with DUTYLEDGER prefix", func(t *testing.T) {
		t.Setenv("DUTYLEDGER_APP_PORT", "9000")
		t.Setenv("DUTYLEDGER_DATABASE_PATH", "/tmp/ledger.db")
		t.Setenv("DUTYLEDGER_JWT_TOKEN_DURATION", "30m")
		t.Setenv("DUTYLEDGER_LOG_LEVEL", "debug")
		t.Setenv("DUTYLEDGER_JWT_SECRET", testSecret)

		cfg, err := LoadFrom(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, 9000, cfg.App.Port)
		assert.Equal(t, "/tmp/ledger.db", cfg.Database.Path)
		assert.Equal(t, 30*time.Minute, cfg.JWT.TokenDuration)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("reads config.toml and lets env win", func(t *testing.T) {
		dir := t.TempDir()
		toml := strings.Join([]string{
			"[app]",
			"port = 7000",
			"",
			"[database]",
			`path = "/var/lib/dutyledger/ledger.db"`,
			"",
			"[http]",
			`cors_allow_origins = ["https://ops.example.com"]`,
		}, "\n")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o644))
		t.Setenv("DUTYLEDGER_APP_PORT", "7100")
		t.Setenv("DUTYLEDGER_JWT_SECRET", testSecret)

		cfg, err := LoadFrom(dir)
		require.NoError(t, err)

		assert.Equal(t, 7100, cfg.App.Port)
		assert.Equal(t, "/var/lib/dutyledger/ledger.db", cfg.Database.Path)
		assert.Equal(t, []string{"https://ops.example.com"}, cfg.HTTP.CORSAllowOrigins)
	})

	t.Run("requires a secret in every environment", func(t *testing.T) {
		for _, env := range []string{"development", "staging", "production"} {
			t.Setenv("DUTYLEDGER_APP_ENV", env)

			_, err := LoadFrom(t.TempDir())
			require.Error(t, err, env)
			assert.Contains(t, err.Error(), "jwt.secret is required", env)
		}
	})

	t.Run("production requires a strong secret", func(t *testing.T) {
		t.Setenv("DUTYLEDGER_APP_ENV", "production")
		t.Setenv("DUTYLEDGER_JWT_SECRET", "short")

		_, err := LoadFrom(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("rejects a bad port", func(t *testing.T) {
		t.Setenv("DUTYLEDGER_APP_PORT", "70000")
		t.Setenv("DUTYLEDGER_JWT_SECRET", testSecret)

		_, err := LoadFrom(t.TempDir())
		require.Error(t, err)
	})

	t.Run("broken config file is an error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[app\nport = "), 0o644))

		_, err := LoadFrom(dir)
		require.Error(t, err)
	})
}
