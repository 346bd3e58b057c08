package services

import (
	"context"
	"sync"

	"github.com/bunkerhq/bunker-engine/pkg/chat"
)

// MockNarrative is a function-field implementation of NarrativeService
// for tests. Calls are recorded for assertions.
type MockNarrative struct {
	GenerateTextFunc  func(ctx context.Context, messages []chat.Message) (string, error)
	GenerateImageFunc func(ctx context.Context, prompt string) ([]byte, error)

	TextCalls  [][]chat.Message
	ImageCalls []string

	mu sync.Mutex // protects the call records
}

var _ NarrativeService = (*MockNarrative)(nil)

// NewMockNarrative creates a mock that returns canned output by default.
func NewMockNarrative() *MockNarrative {
	return &MockNarrative{}
}

func (m *MockNarrative) GenerateText(ctx context.Context, messages []chat.Message) (string, error) {
	m.mu.Lock()
	m.TextCalls = append(m.TextCalls, messages)
	m.mu.Unlock()

	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, messages)
	}
	return "mock narrative text", nil
}

func (m *MockNarrative) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	m.mu.Lock()
	m.ImageCalls = append(m.ImageCalls, prompt)
	m.mu.Unlock()

	if m.GenerateImageFunc != nil {
		return m.GenerateImageFunc(ctx, prompt)
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}
