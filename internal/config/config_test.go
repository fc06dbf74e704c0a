package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"APP_ENV", "HTTP_HOST", "HTTP_PORT", "CORS_ALLOWED_ORIGINS", "JWT_ACCESS_SECRET",
	"BRANDING_LOGO_PATH", "SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD",
	"SMTP_FROM", "SMTP_TIMEOUT", "ESIGN_DEFAULT_SUBJECT",
}

// clearEnv blanks every key; viper treats empty variables as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 7090, cfg.HTTP.Port)
	assert.Empty(t, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 20*time.Second, cfg.SMTP.Timeout)
	assert.False(t, cfg.SMTP.Enabled())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("BRANDING_LOGO_PATH", " ./assets/logo.png ")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USERNAME", "mailer@example.com")
	t.Setenv("SMTP_TIMEOUT", "5s")
	t.Setenv("ESIGN_DEFAULT_SUBJECT", "Sign it")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "./assets/logo.png", cfg.Branding.LogoPath)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, "mailer@example.com", cfg.SMTP.From)
	assert.Equal(t, 5*time.Second, cfg.SMTP.Timeout)
	assert.Equal(t, "Sign it", cfg.ESign.DefaultSubject)
}

func TestLoadRequiresSecret(t *testing.T) {
	clearEnv(t)
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
}

func TestValidateSMTPSender(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{AccessSecret: "s"}, SMTP: SMTPConfig{Host: "smtp.example.com"}}
	assert.Error(t, validate(cfg))

	cfg.SMTP.From = "noreply@example.com"
	assert.NoError(t, validate(cfg))
}

func TestParseList(t *testing.T) {
	assert.Nil(t, parseList("   "))
	assert.Equal(t, []string{"a", "b"}, parseList(" a,,b ,"))
}

func TestLoadLocalSkipsSecret(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadLocal()
	require.NoError(t, err)
	assert.Empty(t, cfg.Auth.AccessSecret)

	t.Setenv("SMTP_HOST", "smtp.example.com")
	_, err = LoadLocal()
	assert.Error(t, err)
}
