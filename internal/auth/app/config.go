package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer   string // Issuer claim for tokens (JWT_ISSUER)
	Audience string // Audience claim for tokens (JWT_AUDIENCE)

	AccessTTL  time.Duration // Access token lifetime (ACCESS_TOKEN_EXP_MIN, minutes)
	RefreshTTL time.Duration // Refresh token lifetime (REFRESH_TOKEN_EXP_DAYS, days)

	PrivateKeyFile string // Path to the RS256 private key PEM (default: ./private.pem)
	PublicKeyFile  string // Path to the RS256 public key PEM (default: ./public.pem)
	KeyID          string // kid header stamped on issued tokens (default: "primary")

	DatabaseFile string // Path to SQLite database file (default: ./sessiond.db)
	PepperFile   string // Path to the password hashing pepper file (default: ./pepper)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:   getEnvOrDefault("JWT_ISSUER", "myblogapp.com"),
		Audience: getEnvOrDefault("JWT_AUDIENCE", "myblogapp_users"),

		AccessTTL:  time.Duration(getEnvIntOrDefault("ACCESS_TOKEN_EXP_MIN", 15)) * time.Minute,
		RefreshTTL: time.Duration(getEnvIntOrDefault("REFRESH_TOKEN_EXP_DAYS", 30)) * 24 * time.Hour,

		PrivateKeyFile: getEnvOrDefault("SESSIOND_PRIVATE_KEY_FILE", "private.pem"),
		PublicKeyFile:  getEnvOrDefault("SESSIOND_PUBLIC_KEY_FILE", "public.pem"),
		KeyID:          getEnvOrDefault("SESSIOND_KEY_ID", "primary"),

		DatabaseFile: getEnvOrDefault("SESSIOND_DATABASE_FILE", "sessiond.db"),
		PepperFile:   getEnvOrDefault("SESSIOND_PEPPER_FILE", "pepper"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
