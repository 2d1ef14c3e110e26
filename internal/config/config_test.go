package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setAllRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/gifts")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("MEDIA_ENDPOINT", "media.example.com")
	t.Setenv("MEDIA_ACCESS_KEY", "AKIAEXAMPLE")
	t.Setenv("MEDIA_SECRET_KEY", "secretkey")
	t.Setenv("MEDIA_BUCKET", "gift-images")
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.Equal(t, 5, cfg.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LoginWindow)
	assert.Equal(t, 30, cfg.PublicReadMax)
	assert.Equal(t, time.Minute, cfg.PublicReadWindow)
	assert.Equal(t, 5*time.Minute, cfg.PublicCacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("PUBLIC_CACHE_TTL_SECONDS", "60")
	t.Setenv("MEDIA_USE_SSL", "false")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 3, cfg.LoginMaxAttempts)
	assert.Equal(t, time.Minute, cfg.PublicCacheTTL)
	assert.False(t, cfg.MediaUseSSL)
}

func TestMissingValues_FullyConfigured(t *testing.T) {
	setAllRequired(t)

	cfg := Load()
	assert.Empty(t, cfg.MissingValues())
	assert.True(t, cfg.IsConfigured())
}

func TestMissingValues_ReportsAbsentVars(t *testing.T) {
	setAllRequired(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	assert.Equal(t, []string{"DATABASE_URL", "JWT_SECRET"}, cfg.MissingValues())
	assert.False(t, cfg.IsConfigured())
}

func TestMissingValues_PlaceholdersCountAsMissing(t *testing.T) {
	setAllRequired(t)
	t.Setenv("JWT_SECRET", "your_jwt_secret_here")
	t.Setenv("MEDIA_BUCKET", "changeme")

	cfg := Load()
	assert.Equal(t, []string{"JWT_SECRET", "MEDIA_BUCKET"}, cfg.MissingValues())
}
