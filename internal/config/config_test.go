package config

import (
	"log/slog"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Provider != "venice" {
		t.Errorf("Provider = %q, want venice", cfg.Provider)
	}
	if cfg.MinPlayers != 2 || cfg.MaxPlayers != 16 {
		t.Errorf("player bounds = %d..%d, want 2..16", cfg.MinPlayers, cfg.MaxPlayers)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoad_InvalidProvider(t *testing.T) {
	t.Setenv("NARRATIVE_PROVIDER", "carrier-pigeon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestLoad_PlayerBoundsValidation(t *testing.T) {
	t.Setenv("GAME_MIN_PLAYERS", "8")
	t.Setenv("GAME_MAX_PLAYERS", "4")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when max below min")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"banana", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.input); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
