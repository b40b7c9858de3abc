package global

import (
	"context"
	"os"
	"time"
)

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetDefaultTimer() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func GetCatalogBaseURL() string {
	return GetEnvOrDefault("CATALOG_API_URL", "https://organic.satbeta.top")
}

func GetRedisAddr() string {
	return os.Getenv("REDIS_ADDRESS")
}
