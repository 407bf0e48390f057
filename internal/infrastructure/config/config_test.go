package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"GROCERY_APP_NAME":                   os.Getenv("GROCERY_APP_NAME"),
		"GROCERY_APP_ENV":                    os.Getenv("GROCERY_APP_ENV"),
		"GROCERY_APP_PORT":                   os.Getenv("GROCERY_APP_PORT"),
		"GROCERY_DATABASE_HOST":              os.Getenv("GROCERY_DATABASE_HOST"),
		"GROCERY_DATABASE_PORT":              os.Getenv("GROCERY_DATABASE_PORT"),
		"GROCERY_DATABASE_USER":              os.Getenv("GROCERY_DATABASE_USER"),
		"GROCERY_DATABASE_PASSWORD":          os.Getenv("GROCERY_DATABASE_PASSWORD"),
		"GROCERY_DATABASE_DBNAME":            os.Getenv("GROCERY_DATABASE_DBNAME"),
		"GROCERY_DATABASE_SSLMODE":           os.Getenv("GROCERY_DATABASE_SSLMODE"),
		"GROCERY_DATABASE_MAX_OPEN_CONNS":    os.Getenv("GROCERY_DATABASE_MAX_OPEN_CONNS"),
		"GROCERY_DATABASE_MAX_IDLE_CONNS":    os.Getenv("GROCERY_DATABASE_MAX_IDLE_CONNS"),
		"GROCERY_ANALYTICS_INCLUDE_TRASHED":  os.Getenv("GROCERY_ANALYTICS_INCLUDE_TRASHED"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "grocery-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "grocery", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.True(t, cfg.Analytics.IncludeTrashed)
	})

	t.Run("loads values from environment variables with GROCERY prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("GROCERY_APP_NAME", "test-app")
		os.Setenv("GROCERY_APP_ENV", "testing")
		os.Setenv("GROCERY_APP_PORT", "9000")
		os.Setenv("GROCERY_DATABASE_HOST", "testdb.local")
		os.Setenv("GROCERY_DATABASE_PORT", "5433")
		os.Setenv("GROCERY_DATABASE_USER", "testuser")
		os.Setenv("GROCERY_DATABASE_PASSWORD", "testpass")
		os.Setenv("GROCERY_DATABASE_DBNAME", "testdb")
		os.Setenv("GROCERY_DATABASE_SSLMODE", "require")
		os.Setenv("GROCERY_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("GROCERY_DATABASE_MAX_IDLE_CONNS", "10")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	})

	t.Run("analytics trash inclusion can be disabled", func(t *testing.T) {
		clearEnv()
		os.Setenv("GROCERY_ANALYTICS_INCLUDE_TRASHED", "false")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.Analytics.IncludeTrashed)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("GROCERY_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("GROCERY_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("GROCERY_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("production requires database password", func(t *testing.T) {
		clearEnv()
		os.Setenv("GROCERY_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "grocery",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// special characters must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
