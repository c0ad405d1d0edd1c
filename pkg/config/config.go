// Package config loads the service configuration from the environment,
// optionally seeded from a .env file.
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
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config holds all configuration values for the API server.
type Config struct {
	Server        ServerConfig
	LLM           LLMConfig
	Session       SessionConfig
	Redis         RedisConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

// LLMConfig selects the models used per task. The API key is not validated
// here: a missing key only fails when a generation is attempted.
type LLMConfig struct {
	APIKey         string
	ItineraryModel string
	PlacesModel    string
	ChatModel      string
	Temperature    float32
}

type SessionConfig struct {
	Store      string
	TTL        time.Duration
	CookieName string
	Secret     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ObservabilityConfig struct {
	LogLevel       string
	MetricsEnabled bool
}

// Load reads a .env file when present and then the process environment.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	var errs []string

	temperature, err := getFloat32("ROAMMATE_TEMPERATURE", 0.7)
	if err != nil {
		errs = append(errs, err.Error())
	}
	ttl, err := getDuration("SESSION_TTL", 2*time.Hour)
	if err != nil {
		errs = append(errs, err.Error())
	}
	redisDB, err := getInt("REDIS_DB", 0)
	if err != nil {
		errs = append(errs, err.Error())
	}
	metricsEnabled, err := getBool("METRICS_ENABLED", true)
	if err != nil {
		errs = append(errs, err.Error())
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		},
		LLM: LLMConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			ItineraryModel: getEnv("ROAMMATE_ITINERARY_MODEL", "gemini-3-pro-preview"),
			PlacesModel:    getEnv("ROAMMATE_PLACES_MODEL", "gemini-3-pro-preview"),
			ChatModel:      getEnv("ROAMMATE_CHAT_MODEL", "gemini-3-flash-preview"),
			Temperature:    temperature,
		},
		Session: SessionConfig{
			Store:      strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
			TTL:        ttl,
			CookieName: getEnv("SESSION_COOKIE_NAME", "roammate_session"),
			Secret:     os.Getenv("SESSION_SECRET"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Observability: ObservabilityConfig{
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			MetricsEnabled: metricsEnabled,
		},
	}

	switch cfg.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		errs = append(errs, fmt.Sprintf("SESSION_STORE must be %q or %q, got %q",
			SessionStoreMemory, SessionStoreRedis, cfg.Session.Store))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloat32(key string, fallback float32) (float32, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return float32(f), nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
