package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port               string
	LogLevel           string
	SessionSecret      string
	SessionTTL         time.Duration
	SessionCleanup     time.Duration
	MaxUploadSizeBytes int64
	RateAPIBaseURL     string
	RateFetchTimeout   time.Duration
	AllowedOrigins     []string
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found. Relying on OS environment variables and defaults.")
	} else {
		log.Println(".env file loaded successfully.")
	}

	sessionSecret := getEnv("SESSION_SECRET", "an-insecure-development-session-secret-32b!")
	if sessionSecret == "an-insecure-development-session-secret-32b!" {
		log.Println("WARNING: Using default insecure SESSION_SECRET. Set SESSION_SECRET environment variable for production.")
	}

	maxUploadSizeBytesStr := getEnv("MAX_UPLOAD_SIZE_BYTES", "10485760")
	maxUploadSizeBytes, err := strconv.ParseInt(maxUploadSizeBytesStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid MAX_UPLOAD_SIZE_BYTES format '%s'. Using default 10MB. Error: %v", maxUploadSizeBytesStr, err)
		maxUploadSizeBytes = 10 * 1024 * 1024
	}

	originsStr := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	var origins []string
	for _, o := range strings.Split(originsStr, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	Cfg = &AppConfig{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		SessionSecret:      sessionSecret,
		SessionTTL:         getEnvAsDuration("SESSION_TTL", 2*time.Hour),
		SessionCleanup:     getEnvAsDuration("SESSION_CLEANUP_INTERVAL", 30*time.Minute),
		MaxUploadSizeBytes: maxUploadSizeBytes,
		RateAPIBaseURL:     getEnv("RATE_API_BASE_URL", "https://api.frankfurter.dev"),
		RateFetchTimeout:   getEnvAsDuration("RATE_FETCH_TIMEOUT", 20*time.Second),
		AllowedOrigins:     origins,
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, RateAPI=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.RateAPIBaseURL)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
