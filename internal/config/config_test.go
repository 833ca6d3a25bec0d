package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	setCoreEnvEmpty(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BindAddr != ":8080" {
		t.Fatalf("BindAddr = %q, want %q", cfg.BindAddr, ":8080")
	}
	if cfg.LLMModel != "llama3.1:8b" {
		t.Fatalf("LLMModel = %q, want default", cfg.LLMModel)
	}
	if cfg.EmbedModel != "nomic-embed-text" {
		t.Fatalf("EmbedModel = %q, want default", cfg.EmbedModel)
	}
	if cfg.ConfidenceThreshold != 0.6 {
		t.Fatalf("ConfidenceThreshold = %v, want 0.6", cfg.ConfidenceThreshold)
	}
	if cfg.RetrieveTopK != 3 {
		t.Fatalf("RetrieveTopK = %d, want 3", cfg.RetrieveTopK)
	}
	if cfg.AuthEnabled {
		t.Fatalf("AuthEnabled should default to false")
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Fatalf("ShutdownTimeout = %v, want 15s", cfg.ShutdownTimeout)
	}
}

func TestLoadExplicitValues(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_BIND_ADDR", ":9191")
	t.Setenv("LLM_MODEL", "llama3.2:3b")
	t.Setenv("CONFIDENCE_THRESHOLD", "0.45")
	t.Setenv("AUTH_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":9191" {
		t.Fatalf("BindAddr = %q", cfg.BindAddr)
	}
	if cfg.LLMModel != "llama3.2:3b" {
		t.Fatalf("LLMModel = %q", cfg.LLMModel)
	}
	if cfg.ConfidenceThreshold != 0.45 {
		t.Fatalf("ConfidenceThreshold = %v", cfg.ConfidenceThreshold)
	}
	if !cfg.AuthEnabled {
		t.Fatalf("AuthEnabled = false, want true")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"RETRIEVE_TOP_K", "0"},
		{"RETRIEVE_TOP_K", "notanumber"},
		{"EMBEDDING_DIM", "-1"},
		{"CONFIDENCE_THRESHOLD", "0"},
		{"GENERATE_TIMEOUT", "10ms"},
		{"AUTH_ENABLED", "maybe"},
	}

	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			setCoreEnvEmpty(t)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() should reject %s=%s", tc.key, tc.value)
			}
		})
	}
}

func setCoreEnvEmpty(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_BIND_ADDR",
		"APP_SHUTDOWN_TIMEOUT",
		"APP_METRICS_NAMESPACE",
		"APP_ALLOW_ANY_ORIGIN",
		"APP_LOG_JSON",
		"DATABASE_URL",
		"OLLAMA_BASE_URL",
		"LLM_MODEL",
		"EMBED_MODEL",
		"EMBEDDING_DIM",
		"GENERATE_TIMEOUT",
		"RETRIEVE_TOP_K",
		"CONFIDENCE_THRESHOLD",
		"AUTH_ENABLED",
		"ADMIN_USERNAME",
		"ADMIN_PASSWORD",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}
