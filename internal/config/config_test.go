package config

import (
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "test-key")

	cfg, err := parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.HTTP.Addr != ":4000" {
		t.Errorf("expected default addr :4000, got %q", cfg.HTTP.Addr)
	}
	if cfg.Store.Driver != StoreMemory {
		t.Errorf("expected memory store, got %q", cfg.Store.Driver)
	}
	if cfg.Image.StatusInterval != 2*time.Second {
		t.Errorf("expected 2s status interval, got %v", cfg.Image.StatusInterval)
	}
	if cfg.Horde.APIKey != "0000000000" {
		t.Errorf("expected anonymous horde key, got %q", cfg.Horde.APIKey)
	}
	if got := cfg.ResultInterval(); got != 3*time.Second {
		t.Errorf("expected 3s result interval for memory store, got %v", got)
	}
}

func TestResultIntervalFollowsStore(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("WANDER_STORE", "Postgres")
	t.Setenv("WANDER_DB_DSN", "postgres://localhost/wander")

	cfg, err := parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := cfg.ResultInterval(); got != 5*time.Second {
		t.Errorf("expected 5s result interval for postgres store, got %v", got)
	}

	t.Setenv("WANDER_IMAGE_RESULT_INTERVAL", "750ms")
	cfg, err = parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := cfg.ResultInterval(); got != 750*time.Millisecond {
		t.Errorf("expected override 750ms, got %v", got)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "groq without key", env: map[string]string{"WANDER_AI_PROVIDER": "groq"}},
		{name: "gemini without key", env: map[string]string{"WANDER_AI_PROVIDER": "gemini", "GROQ_API_KEY": "x"}},
		{name: "unknown provider", env: map[string]string{"WANDER_AI_PROVIDER": "llamafile", "GROQ_API_KEY": "x"}},
		{name: "postgres without dsn", env: map[string]string{"WANDER_STORE": "postgres", "GROQ_API_KEY": "x"}},
		{name: "unknown store", env: map[string]string{"WANDER_STORE": "mongo", "GROQ_API_KEY": "x"}},
		{name: "zero attempts", env: map[string]string{"WANDER_IMAGE_MAX_RESULT_ATTEMPTS": "0", "GROQ_API_KEY": "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GROQ_API_KEY", "")
			t.Setenv("GEMINI_API_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := parse(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}
