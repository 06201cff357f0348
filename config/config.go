// Package config loads environment-driven configuration for the application.
// File: config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"go-trip-ops/logger"
)

// ------------------- configuration model -------------------

// Config holds every tunable the application reads from the environment.
type Config struct {
	AppPort string
	AppEnv  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	SessionSecret string
	TokenSecret   string

	// Product tunables for the check-in engine.
	QRTokenTTL           time.Duration
	QRTokenGrace         time.Duration
	GeofenceRadiusMeters float64

	MetricsEnabled bool
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getSeconds(k string, def int) time.Duration {
	raw := get(k, "")
	if raw == "" {
		return time.Duration(def) * time.Second
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		logger.Warn.Printf("Config: invalid %s=%q, falling back to %ds", k, raw, def)
		return time.Duration(def) * time.Second
	}
	return time.Duration(n) * time.Second
}

func getFloat(k string, def float64) float64 {
	raw := get(k, "")
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		logger.Warn.Printf("Config: invalid %s=%q, falling back to %.0f", k, raw, def)
		return def
	}
	return f
}

// Load reads .env (if present) and builds the Config with sane defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug.Println("Config: no .env file found, using process environment")
	}

	return &Config{
		AppPort: get("PORT", "8080"),
		AppEnv:  get("APP_ENV", "development"),

		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", "postgres"),
		DBName:     get("DB_NAME", "tripops"),
		DBSSLMode:  get("DB_SSLMODE", "disable"),

		SessionSecret: get("SESSION_SECRET", "dev-session-secret"),
		TokenSecret:   get("QR_TOKEN_SECRET", "dev-token-secret"),

		QRTokenTTL:           getSeconds("QR_TOKEN_TTL_SECONDS", 60),
		QRTokenGrace:         getSeconds("QR_TOKEN_GRACE_SECONDS", 5),
		GeofenceRadiusMeters: getFloat("GEOFENCE_RADIUS_METERS", 150),

		MetricsEnabled: get("METRICS_ENABLED", "false") == "true",
	}
}

// DSN builds the Postgres connection string for gorm.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
