package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port    int           `env:"TICKETDESK_TEST_PORT" envDefault:"123"`
	Latency time.Duration `env:"TICKETDESK_TEST_LATENCY" envDefault:"800ms"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if cfg.Latency != 800*time.Millisecond {
		t.Fatalf("expected default latency 800ms, got %v", cfg.Latency)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("TICKETDESK_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvironOverrides(t *testing.T) {
	var cfg envTestConfig
	err := ParseEnviron(&cfg, []string{"TICKETDESK_TEST_PORT=9000", "TICKETDESK_TEST_LATENCY=5ms", "malformed"})
	if err != nil {
		t.Fatalf("parse environ: %v", err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.Latency != 5*time.Millisecond {
		t.Fatalf("expected latency 5ms, got %v", cfg.Latency)
	}
}

func TestParseEnvironIgnoresProcessEnv(t *testing.T) {
	t.Setenv("TICKETDESK_TEST_PORT", "7000")
	var cfg envTestConfig
	if err := ParseEnviron(&cfg, nil); err != nil {
		t.Fatalf("parse environ: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}
