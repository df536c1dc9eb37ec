package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr       string
	CORSOrigin string

	// Redis holds the draft document and the admin session.
	RedisURL        string
	StoreQuotaBytes int
	SessionTTL      time.Duration

	// Auth gateway (Apps Script style endpoint). Empty means auth is not
	// configured and login always fails.
	AuthEndpointURL string

	// GitHub contents API target for publishing.
	GitHubAPIURL   string
	DeployFilePath string

	// Object storage for uploaded images - empty host disables uploads.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	AssetBaseURL   string
}

func Load() Config {
	return Config{
		Addr:       getenv("API_ADDR", ":8787"),
		CORSOrigin: getenv("CONSOLE_CORS_ORIGIN", "*"),

		RedisURL:        getenv("REDIS_URL", "redis://localhost:6379/0"),
		StoreQuotaBytes: getenvInt("CONSOLE_STORE_QUOTA_BYTES", 5242880),
		SessionTTL:      time.Duration(getenvInt("CONSOLE_SESSION_TTL_SECONDS", 43200)) * time.Second,

		AuthEndpointURL: getenv("CONSOLE_AUTH_ENDPOINT_URL", ""),

		GitHubAPIURL:   getenv("CONSOLE_GITHUB_API_URL", "https://api.github.com"),
		DeployFilePath: getenv("CONSOLE_DEPLOY_FILE_PATH", "constants.ts"),

		MinioEndpoint:  getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "portfolio-assets"),
		MinioUseSSL:    getenvBool("MINIO_USE_SSL", false),
		AssetBaseURL:   getenv("CONSOLE_ASSET_BASE_URL", ""),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
