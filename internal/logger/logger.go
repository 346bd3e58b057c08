package logger

import (
	"log/slog"
	"os"

	"github.com/bunkerhq/bunker-engine/internal/config"
)

// Setup configures the global slog logger based on environment.
func Setup(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithChannel adds the game channel id to logger context.
func WithChannel(logger *slog.Logger, channelID string) *slog.Logger {
	return logger.With("channel_id", channelID)
}
