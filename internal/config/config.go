package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDatabase   string
	RedisAddr       string
	RedisPassword   string
	CatalogDBPath   string
	MigrationsPath  string
	KafkaBrokers    []string
	AuthSecret      string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, with a best-effort .env
// file for local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DB_NAME", "gbs"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CatalogDBPath:   getEnv("CATALOG_DB_PATH", "catalog.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations"),
		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		AuthSecret:      getEnv("AUTH_SECRET", "dev-secret-do-not-use"),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// SetupLogger installs a JSON slog handler as the process default.
func SetupLogger() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(handler))
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
		slog.Warn("invalid duration, using default", "key", key, "value", value)
		return defaultValue
	}
	return d
}
