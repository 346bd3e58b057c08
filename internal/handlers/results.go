package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/bunkerhq/bunker-engine/internal/storage"
)

// ResultsHandler serves archived finished games.
type ResultsHandler struct {
	archive storage.Archive
	logger  *slog.Logger
}

func NewResultsHandler(archive storage.Archive, logger *slog.Logger) *ResultsHandler {
	return &ResultsHandler{
		archive: archive,
		logger:  logger,
	}
}

// ServeHTTP handles HTTP requests for archived game results
// Routes:
// GET /v1/results/{channel}              - List a channel's finished games
// GET /v1/results/{channel}/{session_id} - One finished game
func (h *ResultsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	writeError := func(status int, msg string) {
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
	}

	if r.Method != http.MethodGet {
		writeError(http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}
	if h.archive == nil {
		writeError(http.StatusNotFound, "Archive is not configured")
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/results"), "/")
	if path == "" {
		writeError(http.StatusBadRequest, "Channel ID is required")
		return
	}
	parts := strings.Split(path, "/")

	switch len(parts) {
	case 1:
		results, err := h.archive.ListChannelResults(r.Context(), parts[0])
		if err != nil {
			h.logger.Error("Failed to list results", "channel_id", parts[0], "error", err)
			writeError(http.StatusInternalServerError, "Failed to list results")
			return
		}
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(results); err != nil {
			h.logger.Error("Failed to encode results response", "error", err)
		}

	case 2:
		sessionID, err := uuid.Parse(parts[1])
		if err != nil {
			writeError(http.StatusBadRequest, "Invalid session ID format")
			return
		}
		result, err := h.archive.GetResult(r.Context(), sessionID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(http.StatusNotFound, "Game result not found")
				return
			}
			h.logger.Error("Failed to load result", "session_id", sessionID, "error", err)
			writeError(http.StatusInternalServerError, "Failed to load result")
			return
		}
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(result); err != nil {
			h.logger.Error("Failed to encode result response", "error", err)
		}

	default:
		writeError(http.StatusNotFound, "Unknown route")
	}
}
