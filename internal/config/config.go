package config

import (
	"os"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	RedisURL    string
	AuthJWKSURL string
	CORSOrigins string
	TablePrefix string
	// Object storage (uploaded sources + export artifacts)
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	// Transform service configuration
	OpenAIAPIKey     string
	TransformModel   string
	DefaultProvider  string
	TransformTimeout time.Duration
	// Guideline resolver
	ResolverBaseURL string
	JournalCatalog  string
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	tablePrefix := getTablePrefix(env)

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		AuthJWKSURL: getEnv("AUTH_JWKS_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: tablePrefix,
		// Object storage
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "guidesync-documents"),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		// Transform service
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		TransformModel:   getEnv("TRANSFORM_MODEL", "gpt-4o-mini"),
		DefaultProvider:  getEnv("DEFAULT_PROVIDER", "openai"),
		TransformTimeout: getDuration("TRANSFORM_TIMEOUT", 2*time.Minute),
		// Guideline resolver
		ResolverBaseURL: getEnv("RESOLVER_BASE_URL", ""),
		JournalCatalog:  getEnv("JOURNAL_CATALOG", "journals.yaml"),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
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

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
