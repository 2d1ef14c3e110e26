package config

import (
	"os"
	"strconv"
	"time"
)

// requiredVars are the backend connection values the app cannot run without.
// When any is missing or still a placeholder, the server starts in a degraded
// mode that answers every route with a configuration warning instead of
// content.
var requiredVars = []string{
	"DATABASE_URL",
	"JWT_SECRET",
	"MEDIA_ENDPOINT",
	"MEDIA_ACCESS_KEY",
	"MEDIA_SECRET_KEY",
	"MEDIA_BUCKET",
}

// placeholders are the template values shipped in .env.example; they count as
// not configured.
var placeholders = map[string]bool{
	"changeme":                 true,
	"your_database_url_here":   true,
	"your_jwt_secret_here":     true,
	"your_media_endpoint_here": true,
	"your_access_key_here":     true,
	"your_secret_key_here":     true,
	"your_bucket_here":         true,
}

type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string

	// JWT
	JWTSecret          string
	JWTExpirationHours int

	// Media storage (S3-compatible)
	MediaEndpoint  string
	MediaAccessKey string
	MediaSecretKey string
	MediaBucket    string
	MediaUseSSL    bool

	// Logging
	LogLevel string
	LogFile  string

	// Request guard defaults
	LoginMaxAttempts int
	LoginWindow      time.Duration
	PublicReadMax    int
	PublicReadWindow time.Duration
	PublicCacheTTL   time.Duration
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTExpirationHours: getEnvInt("JWT_EXPIRATION_HOURS", 24),
		MediaEndpoint:      getEnv("MEDIA_ENDPOINT", ""),
		MediaAccessKey:     getEnv("MEDIA_ACCESS_KEY", ""),
		MediaSecretKey:     getEnv("MEDIA_SECRET_KEY", ""),
		MediaBucket:        getEnv("MEDIA_BUCKET", ""),
		MediaUseSSL:        getEnvBool("MEDIA_USE_SSL", true),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFile:            getEnv("LOG_FILE", ""),
		LoginMaxAttempts:   getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginWindow:        time.Duration(getEnvInt("LOGIN_WINDOW_SECONDS", 900)) * time.Second,
		PublicReadMax:      getEnvInt("PUBLIC_READ_MAX", 30),
		PublicReadWindow:   time.Duration(getEnvInt("PUBLIC_READ_WINDOW_SECONDS", 60)) * time.Second,
		PublicCacheTTL:     time.Duration(getEnvInt("PUBLIC_CACHE_TTL_SECONDS", 300)) * time.Second,
	}
}

// MissingValues reports which required values are absent or placeholders, in
// declaration order.
func (c *Config) MissingValues() []string {
	values := map[string]string{
		"DATABASE_URL":     c.DatabaseURL,
		"JWT_SECRET":       c.JWTSecret,
		"MEDIA_ENDPOINT":   c.MediaEndpoint,
		"MEDIA_ACCESS_KEY": c.MediaAccessKey,
		"MEDIA_SECRET_KEY": c.MediaSecretKey,
		"MEDIA_BUCKET":     c.MediaBucket,
	}

	var missing []string
	for _, name := range requiredVars {
		value := values[name]
		if value == "" || placeholders[value] {
			missing = append(missing, name)
		}
	}
	return missing
}

// IsConfigured reports whether the backend connection is usable.
func (c *Config) IsConfigured() bool {
	return len(c.MissingValues()) == 0
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
