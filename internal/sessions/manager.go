// Package sessions tracks the live game sessions of the process.
// At most one session exists per channel; finished games are removed
// from the manager once archived.
package sessions

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/bunkerhq/bunker-engine/internal/logger"
	"github.com/bunkerhq/bunker-engine/pkg/game"
)

var (
	// ErrChannelBusy is returned when a channel already has a session.
	ErrChannelBusy = errors.New("channel already has an active game")

	// ErrNoSession is returned when a channel has no session.
	ErrNoSession = errors.New("no game in this channel")
)

// Manager holds the live sessions, keyed by channel id.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*game.Session
	narrative game.NarrativeClient
	rules     game.Rules
	logger    *slog.Logger
}

// NewManager creates an empty session manager. New sessions are created
// with the given narrative client and rules.
func NewManager(narrative game.NarrativeClient, rules game.Rules, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions:  make(map[string]*game.Session),
		narrative: narrative,
		rules:     rules,
		logger:    logger,
	}
}

// Create starts tracking a new session for the channel. Returns
// ErrChannelBusy when the channel already has one.
func (m *Manager) Create(channelID string, opts ...game.Option) (*game.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[channelID]; exists {
		return nil, ErrChannelBusy
	}

	opts = append([]game.Option{game.WithLogger(m.logger)}, opts...)
	s := game.NewSession(channelID, m.narrative, m.rules, opts...)
	m.sessions[channelID] = s
	logger.WithChannel(m.logger, channelID).Info("Session created", "session_id", s.ID)
	return s, nil
}

// Get returns the channel's session, or ErrNoSession.
func (m *Manager) Get(channelID string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, exists := m.sessions[channelID]
	if !exists {
		return nil, ErrNoSession
	}
	return s, nil
}

// Delete removes the channel's session. Returns the removed session so
// the caller can archive it, or ErrNoSession.
func (m *Manager) Delete(channelID string) (*game.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, exists := m.sessions[channelID]
	if !exists {
		return nil, ErrNoSession
	}
	delete(m.sessions, channelID)
	logger.WithChannel(m.logger, channelID).Info("Session removed", "session_id", s.ID)
	return s, nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
