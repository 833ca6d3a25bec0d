package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the policy assistant service.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	AllowAnyOrigin bool
	LogJSON        bool

	DatabaseURL string

	OllamaBaseURL   string
	LLMModel        string
	EmbedModel      string
	EmbeddingDim    int
	GenerateTimeout time.Duration

	RetrieveTopK        int
	ConfidenceThreshold float64

	AuthEnabled   bool
	AdminUsername string
	AdminPassword string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:            envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:    envOrDefault("APP_METRICS_NAMESPACE", "ingpt"),
		DatabaseURL:         trimmedEnv("DATABASE_URL"),
		OllamaBaseURL:       envOrDefault("OLLAMA_BASE_URL", "http://localhost:11434"),
		LLMModel:            envOrDefault("LLM_MODEL", "llama3.1:8b"),
		EmbedModel:          envOrDefault("EMBED_MODEL", "nomic-embed-text"),
		AdminUsername:       envOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword:       envOrDefault("ADMIN_PASSWORD", "admin123"),
		EmbeddingDim:        768,
		RetrieveTopK:        3,
		ConfidenceThreshold: 0.6,
		ShutdownTimeout:     15 * time.Second,
		GenerateTimeout:     60 * time.Second,
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.GenerateTimeout, err = durationFromEnv("GENERATE_TIMEOUT", cfg.GenerateTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.EmbeddingDim, err = intFromEnv("EMBEDDING_DIM", cfg.EmbeddingDim)
	if err != nil {
		return Config{}, err
	}
	cfg.RetrieveTopK, err = intFromEnv("RETRIEVE_TOP_K", cfg.RetrieveTopK)
	if err != nil {
		return Config{}, err
	}
	cfg.ConfidenceThreshold, err = floatFromEnv("CONFIDENCE_THRESHOLD", cfg.ConfidenceThreshold)
	if err != nil {
		return Config{}, err
	}
	cfg.AuthEnabled, err = boolFromEnv("AUTH_ENABLED", cfg.AuthEnabled)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}
	cfg.LogJSON, err = boolFromEnv("APP_LOG_JSON", cfg.LogJSON)
	if err != nil {
		return Config{}, err
	}

	if cfg.EmbeddingDim <= 0 {
		return Config{}, fmt.Errorf("EMBEDDING_DIM must be positive")
	}
	if cfg.RetrieveTopK <= 0 {
		return Config{}, fmt.Errorf("RETRIEVE_TOP_K must be positive")
	}
	if cfg.ConfidenceThreshold <= 0 {
		return Config{}, fmt.Errorf("CONFIDENCE_THRESHOLD must be positive")
	}
	if cfg.GenerateTimeout < time.Second {
		return Config{}, fmt.Errorf("GENERATE_TIMEOUT must be at least 1s")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func trimmedEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func floatFromEnv(key string, fallback float64) (float64, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return f, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(trimmedEnv(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
