package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockArchive is a mock implementation of Archive for testing
type MockArchive struct {
	mu        sync.RWMutex
	results   map[uuid.UUID]GameResult
	byChannel map[string][]uuid.UUID
	saveError error
	pingError error
}

// Ensure MockArchive implements Archive interface
var _ Archive = (*MockArchive)(nil)

// NewMockArchive creates a new mock archive
func NewMockArchive() *MockArchive {
	return &MockArchive{
		results:   make(map[uuid.UUID]GameResult),
		byChannel: make(map[string][]uuid.UUID),
	}
}

// SetSaveError configures the mock to fail on SaveResult with the given error
func (m *MockArchive) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockArchive) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// Ping mocks archive ping
func (m *MockArchive) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks archive close
func (m *MockArchive) Close() error {
	return nil
}

// SaveResult mocks archiving a finished game
func (m *MockArchive) SaveResult(ctx context.Context, result GameResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.results[result.SessionID] = result
	m.byChannel[result.ChannelID] = append([]uuid.UUID{result.SessionID}, m.byChannel[result.ChannelID]...)
	return nil
}

// GetResult mocks loading an archived game
func (m *MockArchive) GetResult(ctx context.Context, sessionID uuid.UUID) (GameResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result, exists := m.results[sessionID]
	if !exists {
		return GameResult{}, ErrNotFound
	}
	return result, nil
}

// ListChannelResults mocks listing a channel's archived games
func (m *MockArchive) ListChannelResults(ctx context.Context, channelID string) ([]GameResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.byChannel[channelID]
	results := make([]GameResult, 0, len(ids))
	for _, id := range ids {
		results = append(results, m.results[id])
	}
	return results, nil
}
