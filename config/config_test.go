package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_URL", "LOG_LEVEL", "APPS_SCRIPT_TIMEOUT", "APPS_SCRIPT_RPS", "CORS_ALLOWED_ORIGINS",
		"JWT_EXPIRY", "ADMIN_EMAIL", "EMAIL_PROVIDER", "SENDGRID_API_KEY", "CACHE_REFRESH_SCHEDULE",
		"CACHE_REFRESH_DAYS", "DEFAULT_CALENDAR_ID", "SERVICE_TIMEOUT", "AWS_SES_INSECURE_SKIP_VERIFY",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("GO_ENV", "production")
	t.Setenv("APPS_SCRIPT_URL", "https://script.google.com/macros/s/abc/exec")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.AppsScriptTimeout)
	assert.Equal(t, float64(5), cfg.AppsScriptRPS)
	assert.Equal(t, "noop", cfg.EmailProvider)
	assert.Equal(t, "@every 5m", cfg.CacheRefreshSchedule)
	assert.Equal(t, 14, cfg.CacheRefreshDays)
	assert.Equal(t, 12*time.Hour, cfg.JWTExpiry)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("APPS_SCRIPT_TIMEOUT", "3s")
	t.Setenv("APPS_SCRIPT_RPS", "0.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://help.example.com, ,https://docs.example.com/")
	t.Setenv("ADMIN_EMAIL", " Admin@Example.com ")
	t.Setenv("EMAIL_PROVIDER", "SendGrid")
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	t.Setenv("CACHE_REFRESH_DAYS", "30")
	t.Setenv("DEFAULT_CALENDAR_ID", "support")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.AppsScriptTimeout)
	assert.Equal(t, 0.5, cfg.AppsScriptRPS)
	assert.Equal(t, []string{"https://help.example.com", "https://docs.example.com/"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
	assert.Equal(t, "sendgrid", cfg.EmailProvider)
	assert.Equal(t, 30, cfg.CacheRefreshDays)
	assert.Equal(t, "support", cfg.DefaultCalendarID)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing backend url", map[string]string{"APPS_SCRIPT_URL": ""}, "APPS_SCRIPT_URL is required"},
		{"missing jwt secret in production", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET is required"},
		{"bad duration", map[string]string{"APPS_SCRIPT_TIMEOUT": "soon"}, "APPS_SCRIPT_TIMEOUT"},
		{"negative rps", map[string]string{"APPS_SCRIPT_RPS": "-1"}, "APPS_SCRIPT_RPS"},
		{"bad days", map[string]string{"CACHE_REFRESH_DAYS": "0"}, "CACHE_REFRESH_DAYS"},
		{"unknown provider", map[string]string{"EMAIL_PROVIDER": "smtp"}, "EMAIL_PROVIDER"},
		{"sendgrid without key", map[string]string{"EMAIL_PROVIDER": "sendgrid"}, "SENDGRID_API_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "warn")
	logger.Info("dropped")
	logger.Warn("kept", "slot_id", "SLOT_2025-06-02_0900")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "SLOT_2025-06-02_0900", rec["slot_id"])

	buf.Reset()
	newLogger(&buf, "development", "").Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")

	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}
