package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/bunkerhq/bunker-engine/pkg/game"
)

type ConsoleConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	cfg := &ConsoleConfig{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		Timeout:    180 * time.Second, // analysis and image calls are slow
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	if !testConnection(client, cfg.APIBaseURL) {
		fmt.Fprintf(os.Stderr, "Could not connect to API. Please ensure the API is running.\nTry: docker-compose up -d\n")
		os.Exit(1)
	}

	// CHANNEL_ID attaches to an existing game; otherwise a fresh
	// channel is created.
	channelID := os.Getenv("CHANNEL_ID")
	var summary game.Summary
	var err error
	if channelID != "" {
		summary, err = getSummary(client, cfg.APIBaseURL, channelID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to attach to channel %s: %v\n", channelID, err)
			os.Exit(1)
		}
	} else {
		channelID = "console-" + uuid.NewString()[:8]
		summary, err = createSession(client, cfg.APIBaseURL, channelID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(NewConsoleUI(cfg, client, channelID, summary),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
