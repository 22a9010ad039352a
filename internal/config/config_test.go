package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPPort != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.StressThreshold != 50.0 {
		t.Errorf("Expected default threshold 50.0, got %g", cfg.StressThreshold)
	}
	if cfg.OllamaModel != "llama3" {
		t.Errorf("Expected default model llama3, got %s", cfg.OllamaModel)
	}
	if cfg.LLMTimeout != 120*time.Second {
		t.Errorf("Expected default LLM timeout 120s, got %v", cfg.LLMTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STRESS_THRESHOLD", "72.5")
	t.Setenv("LLM_TIMEOUT_SECONDS", "30")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Load()

	if cfg.HTTPPort != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.HTTPPort)
	}
	if cfg.StressThreshold != 72.5 {
		t.Errorf("Expected threshold 72.5, got %g", cfg.StressThreshold)
	}
	if cfg.LLMTimeout != 30*time.Second {
		t.Errorf("Expected LLM timeout 30s, got %v", cfg.LLMTimeout)
	}
	if !cfg.Debug() {
		t.Error("Expected debug logging to be enabled")
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("STRESS_THRESHOLD", "not-a-number")
	t.Setenv("REDIS_DB", "abc")

	cfg := Load()

	if cfg.StressThreshold != 50.0 {
		t.Errorf("Expected fallback threshold 50.0, got %g", cfg.StressThreshold)
	}
	if cfg.RedisDB != 0 {
		t.Errorf("Expected fallback redis db 0, got %d", cfg.RedisDB)
	}
}
