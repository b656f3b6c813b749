package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port          string
	StoreBackend  string
	StorePath     string
	DBPath        string
	MigrationsDir string
	DynamoTable   string
	JWTSecret     string
	TokenTTL      time.Duration
	CORSOrigins   []string
}

func Load() Config {
	return Config{
		Port:          getEnv("PORT", "4000"),
		StoreBackend:  getEnv("STORE_BACKEND", "file"),
		StorePath:     getEnv("STORE_PATH", "./data/zen-db.json"),
		DBPath:        getEnv("DB_PATH", "./data/zen.db"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "./migrations"),
		DynamoTable:   getEnv("DYNAMO_TABLE", "zen-db"),
		JWTSecret:     getEnv("JWT_SECRET", "zen-dev-secret"),
		TokenTTL:      time.Duration(getEnvInt("TOKEN_TTL_HOURS", 168)) * time.Hour,
		CORSOrigins:   getEnvList("CORS_ORIGINS", []string{"http://localhost:5173", "http://127.0.0.1:5173"}),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
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

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
