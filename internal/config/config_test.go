package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.HTTPPort)
	}
	if cfg.MemSize != 200 || cfg.ContextTokenLimit != 128000 {
		t.Fatalf("unexpected memory defaults: mem=%d limit=%d", cfg.MemSize, cfg.ContextTokenLimit)
	}
	if cfg.ChatRateWindow != time.Minute {
		t.Fatalf("expected 1m rate window, got %s", cfg.ChatRateWindow)
	}
	if cfg.LLMMaxTokens != 1500 {
		t.Fatalf("expected 1500 max tokens, got %d", cfg.LLMMaxTokens)
	}
}

func TestLoadConfig_RequiresAPIKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	os.Unsetenv("LLM_API_KEY")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when LLM_API_KEY is empty")
	}
}

func TestLoadClientConfig(t *testing.T) {
	t.Setenv("CHAT_ENDPOINT", "http://chat.local/chat")
	t.Setenv("CHAT_LEGACY", "true")
	t.Setenv("CHAT_MEM_SIZE", "50")

	cfg, err := LoadClientConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Endpoint != "http://chat.local/chat" || !cfg.Legacy || cfg.MemSize != 50 {
		t.Fatalf("unexpected client config: %+v", cfg)
	}
	if cfg.LegacyEndpoint != "http://localhost:5000/chat/legacy" {
		t.Fatalf("unexpected legacy default: %q", cfg.LegacyEndpoint)
	}
}
