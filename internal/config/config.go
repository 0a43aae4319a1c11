package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Uploads
	StorageDriver string // "local" or "s3"
	UploadDir     string
	MaxUploadSize int64 // bytes

	// Storage (S3-compatible, only used when StorageDriver == "s3")
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional: for S3-compatible services (MinIO, R2, etc.)

	// Transcription
	OpenAIAPIKey      string
	WhisperModel      string
	SpeechAPIURL      string // fallback speech-recognition endpoint
	TranscribeTimeout time.Duration

	// Translation
	TranslateAPIURL  string
	TranslateTarget  string // common language descriptions are translated into
	TranslateTimeout time.Duration

	// Enumerations (comma-separated env overrides the built-in lists)
	Regions   []string
	Languages map[string]string // code -> display name

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Parampara"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/parampara.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		// Uploads
		StorageDriver: envString("STORAGE_DRIVER", "local"),
		UploadDir:     envString("UPLOAD_DIR", "uploads"),
		MaxUploadSize: envInt64("MAX_UPLOAD_SIZE", 5<<30), // 5 GiB

		// Storage (only required when STORAGE_DRIVER=s3)
		S3Region:    envString("S3_REGION", ""),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),

		// Transcription
		OpenAIAPIKey:      envString("OPENAI_API_KEY", ""),
		WhisperModel:      envString("WHISPER_MODEL", "whisper-1"),
		SpeechAPIURL:      envString("SPEECH_API_URL", ""),
		TranscribeTimeout: envDuration("TRANSCRIBE_TIMEOUT", 5*time.Minute),

		// Translation
		TranslateAPIURL:  envString("TRANSLATE_API_URL", ""),
		TranslateTarget:  envString("TRANSLATE_TARGET_LANG", "en"),
		TranslateTimeout: envDuration("TRANSLATE_TIMEOUT", 30*time.Second),

		// Enumerations
		Regions:   envList("REGIONS", defaultRegions),
		Languages: defaultLanguages,

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	if langs := os.Getenv("LANGUAGES"); langs != "" {
		cfg.Languages = parseLanguages(langs)
	}

	return cfg
}

// parseLanguages parses "code=Name,code=Name" pairs.
func parseLanguages(raw string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		code, name, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || code == "" {
			continue
		}
		out[code] = name
	}
	return out
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt64(key string, def int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ValidRegion reports whether region is one of the configured administrative
// regions. The empty string is allowed since region is optional on a submission.
func (c *Config) ValidRegion(region string) bool {
	if region == "" {
		return true
	}
	for _, r := range c.Regions {
		if r == region {
			return true
		}
	}
	return false
}
