package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries everything the api server needs. Values come from the
// environment, with an optional .env overlay for local development.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelRaw string `env:"LOG_LEVEL" envDefault:"info"`

	// Narrative provider selection: "venice" or "openai".
	Provider string `env:"NARRATIVE_PROVIDER" envDefault:"venice"`

	VeniceAPIKey     string `env:"VENICE_API_KEY"`
	VeniceModel      string `env:"VENICE_MODEL" envDefault:"llama-3.3-70b"`
	VeniceImageModel string `env:"VENICE_IMAGE_MODEL" envDefault:"flux-dev"`

	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIModel      string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIImageModel string `env:"OPENAI_IMAGE_MODEL" envDefault:"dall-e-3"`

	// RedisURL enables the finished-game archive when set.
	RedisURL string `env:"REDIS_URL"`

	MinPlayers     int  `env:"GAME_MIN_PLAYERS" envDefault:"2"`
	MaxPlayers     int  `env:"GAME_MAX_PLAYERS" envDefault:"16"`
	ExileOnTie     bool `env:"GAME_EXILE_ON_TIE" envDefault:"false"`
	GenerateImages bool `env:"GAME_GENERATE_IMAGES" envDefault:"true"`

	LogLevel slog.Level `env:"-"`
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelRaw)

	switch strings.ToLower(cfg.Provider) {
	case "venice", "openai":
	default:
		return nil, fmt.Errorf("invalid narrative provider %q (supported: venice, openai)", cfg.Provider)
	}
	if cfg.MinPlayers < 2 {
		return nil, fmt.Errorf("GAME_MIN_PLAYERS must be at least 2, got %d", cfg.MinPlayers)
	}
	if cfg.MaxPlayers < cfg.MinPlayers {
		return nil, fmt.Errorf("GAME_MAX_PLAYERS (%d) below GAME_MIN_PLAYERS (%d)", cfg.MaxPlayers, cfg.MinPlayers)
	}
	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
