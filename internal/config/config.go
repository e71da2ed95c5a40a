package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Wizard session lifetime. Abandoned drafts are swept after this TTL.
	SessionTTL        time.Duration
	SessionSweepEvery time.Duration

	// Recent patient cache.
	RedisAddr         string
	RedisPassword     string
	RedisTLS          bool
	RecentPatientsMax int

	// Upstream collaborators consumed by the wizard.
	PatientAPIBaseURL     string
	CatalogAPIBaseURL     string
	AppointmentAPIBaseURL string
	UpstreamTimeout       time.Duration
	UpstreamAPIKey        string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		SessionTTL:        getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		SessionSweepEvery: getEnvAsDuration("SESSION_SWEEP_INTERVAL", time.Minute),

		RedisAddr:         getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisTLS:          getEnvAsBool("REDIS_TLS", false),
		RecentPatientsMax: getEnvAsInt("RECENT_PATIENTS_MAX", 10),

		PatientAPIBaseURL:     getEnv("PATIENT_API_BASE_URL", ""),
		CatalogAPIBaseURL:     getEnv("CATALOG_API_BASE_URL", ""),
		AppointmentAPIBaseURL: getEnv("APPOINTMENT_API_BASE_URL", ""),
		UpstreamTimeout:       getEnvAsDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		UpstreamAPIKey:        getEnv("UPSTREAM_API_KEY", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
