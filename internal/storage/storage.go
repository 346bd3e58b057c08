package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bunkerhq/bunker-engine/pkg/game"
)

// ErrNotFound is returned when no archived result exists for an id.
var ErrNotFound = errors.New("game result not found")

// PlayerResult is one roster entry of a finished game.
type PlayerResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// GameResult is the immutable record archived when a session finishes.
// Live session state is never persisted; this is the only thing that
// outlives a game.
type GameResult struct {
	SessionID  uuid.UUID      `json:"session_id"`
	ChannelID  string         `json:"channel_id"`
	WinnerID   string         `json:"winner_id,omitempty"`
	WinnerName string         `json:"winner_name,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	Rounds     int            `json:"rounds"`
	Players    []PlayerResult `json:"players"`
	FinishedAt time.Time      `json:"finished_at"`
}

// ResultFromSession builds the archive record for a finished session.
func ResultFromSession(s *game.Session) GameResult {
	result := GameResult{
		SessionID:  s.ID,
		ChannelID:  s.ChannelID,
		Reason:     s.EndReason(),
		Rounds:     s.Round(),
		FinishedAt: time.Now(),
	}
	if w := s.Winner(); w != nil {
		result.WinnerID = w.ID
		result.WinnerName = w.Name
	}
	for _, p := range s.Players() {
		result.Players = append(result.Players, PlayerResult{
			ID:     p.ID,
			Name:   p.Name,
			Active: p.Active(),
		})
	}
	return result
}

// Archive stores finished-game records.
type Archive interface {
	// SaveResult archives one finished game.
	SaveResult(ctx context.Context, result GameResult) error

	// GetResult loads an archived game by session id. Returns
	// ErrNotFound when no record exists.
	GetResult(ctx context.Context, sessionID uuid.UUID) (GameResult, error)

	// ListChannelResults returns the archived games of one channel,
	// most recent first.
	ListChannelResults(ctx context.Context, channelID string) ([]GameResult, error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases the backing store connection.
	Close() error
}
