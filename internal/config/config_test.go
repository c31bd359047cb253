package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func lookupFrom(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "data/portfolio.db", cfg.DBPath)
	assert.Equal(t, "static", cfg.StaticDir)
	assert.Equal(t, 10, cfg.UnlockRatePerMinute)
	assert.Equal(t, 5, cfg.UnlockBurst)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.CookieSecure)
	assert.False(t, cfg.AdminEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{
		"PORT":                   "9000",
		"BACKEND":                "Postgres",
		"DATABASE_URL":           "postgres://localhost/portfolio",
		"COOKIE_SECURE":          "true",
		"UNLOCK_RATE_PER_MINUTE": "0",
		"LOG_LEVEL":              "DEBUG",
		"LOG_FORMAT":             "json",
		"REQUEST_TIMEOUT":        "5s",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, BackendPostgres, cfg.Backend)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 0, cfg.UnlockRatePerMinute, "zero disables the limiter")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestFromEnv_ParseErrorsAreCollected(t *testing.T) {
	_, err := FromEnv(lookupFrom(map[string]string{
		"PORT":            "eighty",
		"COOKIE_SECURE":   "maybe",
		"REQUEST_TIMEOUT": "soon",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "COOKIE_SECURE")
	assert.Contains(t, err.Error(), "REQUEST_TIMEOUT")
}

func TestFromEnv_Validation(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantKey string
	}{
		{"unknown backend", map[string]string{"BACKEND": "mysql"}, "BACKEND"},
		{"postgres without url", map[string]string{"BACKEND": "postgres"}, "DATABASE_URL"},
		{"postgrest without url", map[string]string{"BACKEND": "postgrest"}, "POSTGREST_URL"},
		{"file without path", map[string]string{"BACKEND": "file"}, "CONTENT_FILE"},
		{"port out of range", map[string]string{"PORT": "70000"}, "PORT"},
		{"short jwt secret", map[string]string{"JWT_SECRET": "short"}, "JWT_SECRET"},
		{"username without hash", map[string]string{"ADMIN_USERNAME": "admin"}, "ADMIN_PASSWORD_HASH"},
		{"plaintext password", map[string]string{"ADMIN_USERNAME": "admin", "ADMIN_PASSWORD_HASH": "hunter22"}, "ADMIN_PASSWORD_HASH"},
		{"zero burst", map[string]string{"UNLOCK_BURST": "0"}, "UNLOCK_BURST"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
		{"zero timeout", map[string]string{"REQUEST_TIMEOUT": "0s"}, "REQUEST_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(lookupFrom(tt.vars))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestFromEnv_SecretsAreRedacted(t *testing.T) {
	_, err := FromEnv(lookupFrom(map[string]string{"JWT_SECRET": "tooshort"}))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "tooshort")
}

func TestFromEnv_AdminEnabled(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg, err := FromEnv(lookupFrom(map[string]string{
		"JWT_SECRET":          "a-secret-of-at-least-16",
		"ADMIN_USERNAME":      "admin",
		"ADMIN_PASSWORD_HASH": string(hash),
	}))
	require.NoError(t, err)
	assert.True(t, cfg.AdminEnabled())
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SITE_NAME", "Jane Doe")
	t.Setenv("PORT", "8181")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", cfg.SiteName)
	assert.Equal(t, 8181, cfg.Port)
}
