package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	// SQLitePath is the local database file used when DatabaseURL is empty.
	SQLitePath  string
	TablePrefix string
	JWKSURL     string // Empty disables auth; requests run as DevActor
	DevActor    string
	DevRole     string
	CORSOrigins string
	WorkspaceID string

	// CategorySchemaPath points at a YAML category schema; empty uses the built-in one.
	CategorySchemaPath string

	// Logging
	LogLevel    string
	LogDir      string // Empty logs to stdout only
	LogMaxFiles int
	// LogMaxSizeMB rotates the current log file once it grows past this size.
	LogMaxSizeMB int

	// Preview storage. Previews are disabled when S3Bucket is empty.
	S3Region       string
	S3Bucket       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	PreviewTTL     time.Duration

	NotificationFeedSize int

	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          env,
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		SQLitePath:           getEnv("SQLITE_PATH", ""),
		TablePrefix:          getTablePrefix(env),
		JWKSURL:              getEnv("JWKS_URL", ""),
		DevActor:             getEnv("DEV_ACTOR", "dev@localhost"),
		DevRole:              getEnv("DEV_ROLE", "admin"),
		CORSOrigins:          getEnv("CORS_ORIGINS", "http://localhost:3000"),
		WorkspaceID:          getEnv("WORKSPACE_ID", "default"),
		CategorySchemaPath:   getEnv("CATEGORY_SCHEMA_PATH", ""),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogDir:               getEnv("LOG_DIR", ""),
		LogMaxFiles:          getEnvInt("LOG_MAX_FILES", 10),
		LogMaxSizeMB:         getEnvInt("LOG_MAX_SIZE_MB", 50),
		S3Region:             getEnv("S3_REGION", "us-east-1"),
		S3Bucket:             getEnv("S3_BUCKET", ""),
		S3BaseEndpoint:       getEnv("S3_BASE_ENDPOINT", ""),
		S3AccessKey:          getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:          getEnv("S3_SECRET_KEY", ""),
		PreviewTTL:           getEnvDuration("PREVIEW_TTL", 15*time.Minute),
		NotificationFeedSize: getEnvInt("NOTIFICATION_FEED_SIZE", DefaultNotificationFeedSize),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// CORSOriginList splits CORS_ORIGINS on commas.
func (c *Config) CORSOriginList() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}
