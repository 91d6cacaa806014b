package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.DBPath != "brandeval.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "brandeval.db")
	}
	if cfg.ScoreStrategy != "heuristic" {
		t.Errorf("ScoreStrategy = %q, want %q", cfg.ScoreStrategy, "heuristic")
	}
	if cfg.WorkerInterval != 5*time.Second {
		t.Errorf("WorkerInterval = %v, want 5s", cfg.WorkerInterval)
	}
	if cfg.ModelTimeout != 30*time.Second {
		t.Errorf("ModelTimeout = %v, want 30s", cfg.ModelTimeout)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Errorf("TokenTTL = %v, want 168h", cfg.TokenTTL)
	}
	if cfg.CORSOrigin != "*" {
		t.Errorf("CORSOrigin = %q, want %q", cfg.CORSOrigin, "*")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SCORE_STRATEGY", "model")
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("WORKER_INTERVAL", "30s")
	t.Setenv("TOKEN_TTL", "1h")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.ScoreStrategy != "model" {
		t.Errorf("ScoreStrategy = %q, want %q", cfg.ScoreStrategy, "model")
	}
	if cfg.LLMProvider != "ollama" {
		t.Errorf("LLMProvider = %q, want %q", cfg.LLMProvider, "ollama")
	}
	if cfg.WorkerInterval != 30*time.Second {
		t.Errorf("WorkerInterval = %v, want 30s", cfg.WorkerInterval)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("WORKER_INTERVAL", "not-a-duration")

	cfg := Load()
	if cfg.WorkerInterval != 5*time.Second {
		t.Errorf("WorkerInterval = %v, want default 5s", cfg.WorkerInterval)
	}
}

func TestUseModelScoring(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"heuristic strategy", Config{ScoreStrategy: "heuristic", OpenAIKey: "sk"}, false},
		{"model with openai key", Config{ScoreStrategy: "model", LLMProvider: "openai", OpenAIKey: "sk"}, true},
		{"model without openai key", Config{ScoreStrategy: "model", LLMProvider: "openai"}, false},
		{"model with claude key", Config{ScoreStrategy: "model", LLMProvider: "claude", AnthropicKey: "sk"}, true},
		{"model without claude key", Config{ScoreStrategy: "model", LLMProvider: "claude"}, false},
		{"model with gemini key", Config{ScoreStrategy: "model", LLMProvider: "gemini", GeminiKey: "sk"}, true},
		{"ollama needs no key", Config{ScoreStrategy: "model", LLMProvider: "ollama"}, true},
		{"unknown provider uses openai key", Config{ScoreStrategy: "model", LLMProvider: "other", OpenAIKey: "sk"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.UseModelScoring(); got != tt.want {
				t.Errorf("UseModelScoring() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "forty-two")

	if got := envOr("TEST_STR", "fallback"); got != "value" {
		t.Errorf("envOr set = %q", got)
	}
	if got := envOr("TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("envOr unset = %q", got)
	}
	if got := envInt("TEST_INT", 7); got != 42 {
		t.Errorf("envInt set = %d", got)
	}
	if got := envInt("TEST_INT_BAD", 7); got != 7 {
		t.Errorf("envInt invalid = %d, want fallback", got)
	}
	if got := envInt("TEST_UNSET", 7); got != 7 {
		t.Errorf("envInt unset = %d, want fallback", got)
	}
}
