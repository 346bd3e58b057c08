package sessions

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/bunkerhq/bunker-engine/internal/services"
	"github.com/bunkerhq/bunker-engine/pkg/game"
)

func newTestManager() *Manager {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewManager(&services.MockNarrative{}, game.DefaultRules(), logger)
}

func TestManager_CreateAndGet(t *testing.T) {
	m := newTestManager()

	s, err := m.Create("chan-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if s.ChannelID != "chan-1" {
		t.Errorf("Expected channel 'chan-1', got %q", s.ChannelID)
	}

	got, err := m.Get("chan-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != s {
		t.Error("Get returned a different session")
	}

	if m.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", m.Count())
	}
}

func TestManager_OneGamePerChannel(t *testing.T) {
	m := newTestManager()

	if _, err := m.Create("chan-1"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := m.Create("chan-1")
	if !errors.Is(err, ErrChannelBusy) {
		t.Errorf("Expected ErrChannelBusy, got %v", err)
	}

	// A different channel is unaffected.
	if _, err := m.Create("chan-2"); err != nil {
		t.Errorf("Create on second channel failed: %v", err)
	}
}

func TestManager_GetMissing(t *testing.T) {
	m := newTestManager()

	_, err := m.Get("nope")
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("Expected ErrNoSession, got %v", err)
	}
}

func TestManager_Delete(t *testing.T) {
	m := newTestManager()

	created, err := m.Create("chan-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	removed, err := m.Delete("chan-1")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed != created {
		t.Error("Delete returned a different session")
	}

	if _, err := m.Get("chan-1"); !errors.Is(err, ErrNoSession) {
		t.Errorf("Expected ErrNoSession after delete, got %v", err)
	}

	// Channel is free again.
	if _, err := m.Create("chan-1"); err != nil {
		t.Errorf("Create after delete failed: %v", err)
	}

	if _, err := m.Delete("nope"); !errors.Is(err, ErrNoSession) {
		t.Errorf("Expected ErrNoSession for unknown channel, got %v", err)
	}
}
