package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bunkerhq/bunker-engine/internal/services"
	"github.com/bunkerhq/bunker-engine/internal/sessions"
	"github.com/bunkerhq/bunker-engine/internal/storage"
	"github.com/bunkerhq/bunker-engine/pkg/game"
)

func TestHealthHandler_Healthy(t *testing.T) {
	logger := testLogger()
	manager := sessions.NewManager(&services.MockNarrative{}, game.DefaultRules(), logger)
	archive := storage.NewMockArchive()
	handler := NewHealthHandler(archive, manager, logger)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Expected status 'healthy', got %q", resp.Status)
	}
	if resp.Components["archive"] != "healthy" {
		t.Errorf("Expected healthy archive, got %v", resp.Components["archive"])
	}
}

func TestHealthHandler_DegradedArchive(t *testing.T) {
	logger := testLogger()
	manager := sessions.NewManager(&services.MockNarrative{}, game.DefaultRules(), logger)
	archive := storage.NewMockArchive()
	archive.SetPingError(errors.New("connection refused"))
	handler := NewHealthHandler(archive, manager, logger)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rr.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("Expected status 'degraded', got %q", resp.Status)
	}
}

func TestHealthHandler_NoArchive(t *testing.T) {
	logger := testLogger()
	manager := sessions.NewManager(&services.MockNarrative{}, game.DefaultRules(), logger)
	handler := NewHealthHandler(nil, manager, logger)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Components["archive"] != "disabled" {
		t.Errorf("Expected disabled archive, got %v", resp.Components["archive"])
	}
}
