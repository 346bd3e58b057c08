package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

func newTestArchive(t *testing.T) *RedisArchive {
	t.Helper()
	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	archive := NewRedisArchive(mr.Addr(), logger)
	t.Cleanup(func() {
		if err := archive.Close(); err != nil {
			t.Errorf("Failed to close archive: %v", err)
		}
	})
	return archive
}

func testResult(channelID string) GameResult {
	return GameResult{
		SessionID:  uuid.New(),
		ChannelID:  channelID,
		WinnerID:   "p1",
		WinnerName: "Alice",
		Reason:     "last survivor",
		Rounds:     3,
		Players: []PlayerResult{
			{ID: "p1", Name: "Alice", Active: true},
			{ID: "p2", Name: "Bob", Active: false},
		},
		FinishedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestRedisArchive_SaveAndGet(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	if err := archive.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	result := testResult("chan-1")
	if err := archive.SaveResult(ctx, result); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	loaded, err := archive.GetResult(ctx, result.SessionID)
	if err != nil {
		t.Fatalf("GetResult failed: %v", err)
	}

	if loaded.ChannelID != result.ChannelID {
		t.Errorf("Expected channel %q, got %q", result.ChannelID, loaded.ChannelID)
	}
	if loaded.WinnerID != "p1" || loaded.WinnerName != "Alice" {
		t.Errorf("Unexpected winner: %q / %q", loaded.WinnerID, loaded.WinnerName)
	}
	if len(loaded.Players) != 2 {
		t.Fatalf("Expected 2 players, got %d", len(loaded.Players))
	}
	if loaded.Players[1].Active {
		t.Error("Exiled player should not be active")
	}
}

func TestRedisArchive_GetNotFound(t *testing.T) {
	archive := newTestArchive(t)

	_, err := archive.GetResult(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRedisArchive_ListChannelResults(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	first := testResult("chan-list")
	second := testResult("chan-list")
	other := testResult("chan-other")

	for _, r := range []GameResult{first, second, other} {
		if err := archive.SaveResult(ctx, r); err != nil {
			t.Fatalf("SaveResult failed: %v", err)
		}
	}

	results, err := archive.ListChannelResults(ctx, "chan-list")
	if err != nil {
		t.Fatalf("ListChannelResults failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	// Most recent first.
	if results[0].SessionID != second.SessionID {
		t.Errorf("Expected most recent result first, got %s", results[0].SessionID)
	}
	if results[1].SessionID != first.SessionID {
		t.Errorf("Expected oldest result last, got %s", results[1].SessionID)
	}

	empty, err := archive.ListChannelResults(ctx, "chan-empty")
	if err != nil {
		t.Fatalf("ListChannelResults on empty channel failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no results, got %d", len(empty))
	}
}

func TestRedisArchive_PingFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	archive := NewRedisArchive(mr.Addr(), logger)
	defer func() {
		_ = archive.Close()
	}()

	mr.Close()

	if err := archive.Ping(context.Background()); err == nil {
		t.Error("Expected ping to fail after server shutdown")
	}
}
