package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bunkerhq/bunker-engine/internal/sessions"
	"github.com/bunkerhq/bunker-engine/internal/storage"
)

type HealthResponse struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Service    string                 `json:"service"`
	Components map[string]interface{} `json:"components"`
}

type HealthHandler struct {
	archive  storage.Archive
	sessions *sessions.Manager
	logger   *slog.Logger
}

// NewHealthHandler creates the health endpoint. The archive may be nil
// when the server runs without one.
func NewHealthHandler(archive storage.Archive, sessions *sessions.Manager, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		archive:  archive,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	h.logger.Debug("Health check requested",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	components := make(map[string]interface{})
	overallStatus := "healthy"

	components["sessions"] = h.sessions.Count()

	if h.archive == nil {
		components["archive"] = "disabled"
	} else if err := h.archive.Ping(ctx); err != nil {
		h.logger.Warn("Archive health check failed", "error", err)
		components["archive"] = "unhealthy"
		overallStatus = "degraded"
	} else {
		components["archive"] = "healthy"
	}

	response := HealthResponse{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Service:    "bunker-engine",
		Components: components,
	}

	statusCode := http.StatusOK
	if overallStatus != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding health response",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}
