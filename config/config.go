package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Redis    RedisConfig
	S3       S3Config
	Auth     AuthConfig
	Latency  LatencyConfig
	Snapshot SnapshotConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

// StoreConfig selects the key-value store backend used for write-through
// persistence of cart, wishlist, review and session state.
type StoreConfig struct {
	Backend  string // memory, file, redis, s3
	FilePath string // file backend only
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	KeyPrefix       string
}

type AuthConfig struct {
	JWTSecret    string
	TokenExpiry  time.Duration
	DemoEmail    string
	DemoPassword string
	DemoName     string
	DemoAvatar   string
}

// LatencyConfig holds the artificial delays that stand in for network calls
// in the demo. Zero disables the delay.
type LatencyConfig struct {
	CatalogLoad time.Duration
	Login       time.Duration
	Register    time.Duration
}

type SnapshotConfig struct {
	Enabled  bool
	CronSpec string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Store: StoreConfig{
			Backend:  getEnv("STORE_BACKEND", "file"),
			FilePath: getEnv("STORE_FILE_PATH", "storefront.json"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "ap-northeast-2"),
			Bucket:          getEnv("AWS_S3_BUCKET", "storefront-state"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			KeyPrefix:       getEnv("AWS_S3_KEY_PREFIX", "state"),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", "your-secret-key"),
			TokenExpiry:  parseDuration(getEnv("JWT_TOKEN_EXPIRY", "24h"), 24*time.Hour),
			DemoEmail:    getEnv("DEMO_EMAIL", "demo@example.com"),
			DemoPassword: getEnv("DEMO_PASSWORD", "password"),
			DemoName:     getEnv("DEMO_NAME", "Demo User"),
			DemoAvatar:   getEnv("DEMO_AVATAR", "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150"),
		},
		Latency: LatencyConfig{
			CatalogLoad: parseDuration(getEnv("LATENCY_CATALOG_LOAD", "1s"), time.Second),
			Login:       parseDuration(getEnv("LATENCY_LOGIN", "1s"), time.Second),
			Register:    parseDuration(getEnv("LATENCY_REGISTER", "1s"), time.Second),
		},
		Snapshot: SnapshotConfig{
			Enabled:  getEnv("SNAPSHOT_ENABLED", "true") == "true",
			CronSpec: getEnv("SNAPSHOT_CRON", "@hourly"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
