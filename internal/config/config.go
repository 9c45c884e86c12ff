package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageBackendSupabase = "supabase"
	StorageBackendMinIO    = "minio"
)

type Config struct {
	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string
	SupabaseAuthURL        string

	// Database
	DatabaseURL string

	// Shared gallery access
	ShareTokenSecret string
	ShareTokenTTL    time.Duration

	// Uploads
	StorageBackend    string
	MaxUploadSize     int64
	UploadConcurrency int
	ThumbnailSize     int

	// MinIO (only when STORAGE_BACKEND=minio)
	MinIO MinIO

	// Server
	Port        string
	Environment string
	BaseURL     string
	FrontendURL string
	CORSOrigins []string
	LogLevel    string
}

type MinIO struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "photos"),
		SupabaseAuthURL:        getEnv("SUPABASE_AUTH_URL", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		ShareTokenSecret: getEnv("SHARE_TOKEN_SECRET", ""),
		ShareTokenTTL:    getEnvDuration("SHARE_TOKEN_TTL", 24*time.Hour),

		StorageBackend:    strings.ToLower(getEnv("STORAGE_BACKEND", StorageBackendSupabase)),
		MaxUploadSize:     getEnvInt64("MAX_UPLOAD_SIZE", 32<<20),
		UploadConcurrency: int(getEnvInt64("UPLOAD_CONCURRENCY", 4)),
		ThumbnailSize:     int(getEnvInt64("THUMBNAIL_SIZE", 400)),

		MinIO: MinIO{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "photos"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
		},

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		FrontendURL: strings.TrimSuffix(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{cfg.FrontendURL}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.ShareTokenSecret == "" {
		return fmt.Errorf("SHARE_TOKEN_SECRET is required")
	}
	if c.ShareTokenSecret == c.SupabaseJWTSecret {
		return fmt.Errorf("SHARE_TOKEN_SECRET must differ from SUPABASE_JWT_SECRET")
	}
	if c.ShareTokenTTL <= 0 {
		return fmt.Errorf("SHARE_TOKEN_TTL must be positive")
	}
	if c.UploadConcurrency < 1 {
		return fmt.Errorf("UPLOAD_CONCURRENCY must be at least 1")
	}
	if c.ThumbnailSize < 16 {
		return fmt.Errorf("THUMBNAIL_SIZE must be at least 16")
	}
	switch c.StorageBackend {
	case StorageBackendSupabase:
	case StorageBackendMinIO:
		if c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "" {
			return fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required for the minio storage backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ShareURL is the frontend link a photographer sends to the client.
func (c *Config) ShareURL(galleryID string) string {
	return c.FrontendURL + "/shared/" + galleryID
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
