package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bunkerhq/bunker-engine/internal/services"
	"github.com/bunkerhq/bunker-engine/internal/sessions"
	"github.com/bunkerhq/bunker-engine/internal/storage"
	"github.com/bunkerhq/bunker-engine/pkg/game"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// SessionHandler serves every game operation under /v1/sessions.
type SessionHandler struct {
	sessions *sessions.Manager
	archive  storage.Archive
	logger   *slog.Logger
}

// NewSessionHandler creates the session endpoint. The archive may be
// nil; finished games are then simply not recorded.
func NewSessionHandler(manager *sessions.Manager, archive storage.Archive, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: manager,
		archive:  archive,
		logger:   logger,
	}
}

func (h *SessionHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *SessionHandler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, ErrorResponse{Error: msg})
}

// statusForError maps domain errors onto HTTP status codes. Unknown
// errors are treated as internal.
func statusForError(err error) int {
	switch {
	case errors.Is(err, sessions.ErrNoSession),
		errors.Is(err, game.ErrPlayerNotFound):
		return http.StatusNotFound

	case errors.Is(err, game.ErrUnknownAttribute),
		errors.Is(err, game.ErrInvalidVoter),
		errors.Is(err, game.ErrInvalidTarget):
		return http.StatusBadRequest

	case errors.Is(err, sessions.ErrChannelBusy),
		errors.Is(err, game.ErrAlreadyJoined),
		errors.Is(err, game.ErrSessionFull),
		errors.Is(err, game.ErrNotWaiting),
		errors.Is(err, game.ErrNotEnoughPlayers),
		errors.Is(err, game.ErrAlreadyStarted),
		errors.Is(err, game.ErrNotRunning),
		errors.Is(err, game.ErrFinished),
		errors.Is(err, game.ErrTooFewActive),
		errors.Is(err, game.ErrNoVoteOpen),
		errors.Is(err, game.ErrVoteAlreadyOpen),
		errors.Is(err, game.ErrAlreadyVoted),
		errors.Is(err, game.ErrVoteResolved),
		errors.Is(err, game.ErrNoVotes):
		return http.StatusConflict
	}

	var genErr *services.GenerationError
	if errors.As(err, &genErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (h *SessionHandler) writeGameError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Unexpected error", "error", err)
		h.writeError(w, status, "Internal server error")
		return
	}
	h.writeError(w, status, err.Error())
}

// ServeHTTP handles HTTP requests for game session operations
// Routes:
// POST /v1/sessions                                - Create a session for a channel
// GET /v1/sessions/{channel}                       - Public session summary
// DELETE /v1/sessions/{channel}                    - End, archive and remove the session
// POST /v1/sessions/{channel}/start                - Start the game
// POST /v1/sessions/{channel}/players              - Join the roster
// DELETE /v1/sessions/{channel}/players/{id}       - Leave or kick
// GET /v1/sessions/{channel}/players/{id}/card     - Character card (?view=self|public)
// POST /v1/sessions/{channel}/rounds               - Advance the round counter
// GET /v1/sessions/{channel}/votes                 - Tally of the open vote
// POST /v1/sessions/{channel}/votes                - Open an exile vote
// POST /v1/sessions/{channel}/votes/ballots        - Cast a ballot
// POST /v1/sessions/{channel}/votes/resolve        - Force-resolve the open vote
// POST /v1/sessions/{channel}/reveals              - Reveal one attribute
// GET /v1/sessions/{channel}/bunker                - Bunker briefing
// POST /v1/sessions/{channel}/analysis             - Survival analysis of the survivors
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST")
			return
		}
		h.handleCreate(w, r)
		return
	}

	parts := strings.Split(path, "/")
	channelID := parts[0]
	rest := parts[1:]

	if len(rest) == 0 {
		switch r.Method {
		case http.MethodGet:
			h.handleSummary(w, channelID)
		case http.MethodDelete:
			h.handleDelete(w, r, channelID)
		default:
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
		}
		return
	}

	s, err := h.sessions.Get(channelID)
	if err != nil {
		h.writeGameError(w, err)
		return
	}

	switch rest[0] {
	case "start":
		if len(rest) != 1 || r.Method != http.MethodPost {
			break
		}
		h.handleStart(w, r, s)
		return

	case "players":
		switch {
		case len(rest) == 1 && r.Method == http.MethodPost:
			h.handleJoin(w, r, s)
			return
		case len(rest) == 2 && r.Method == http.MethodDelete:
			h.handleLeave(w, r, s, rest[1])
			return
		case len(rest) == 3 && rest[2] == "card" && r.Method == http.MethodGet:
			h.handleCard(w, r, s, rest[1])
			return
		}

	case "rounds":
		if len(rest) != 1 || r.Method != http.MethodPost {
			break
		}
		h.handleAdvanceRound(w, s)
		return

	case "votes":
		switch {
		case len(rest) == 1 && r.Method == http.MethodGet:
			h.handleVoteTally(w, s)
			return
		case len(rest) == 1 && r.Method == http.MethodPost:
			h.handleOpenVote(w, s)
			return
		case len(rest) == 2 && rest[1] == "ballots" && r.Method == http.MethodPost:
			h.handleCastVote(w, r, s)
			return
		case len(rest) == 2 && rest[1] == "resolve" && r.Method == http.MethodPost:
			h.handleResolveVote(w, r, s)
			return
		}

	case "reveals":
		if len(rest) != 1 || r.Method != http.MethodPost {
			break
		}
		h.handleReveal(w, r, s)
		return

	case "bunker":
		if len(rest) != 1 || r.Method != http.MethodGet {
			break
		}
		h.handleBunker(w, s)
		return

	case "analysis":
		if len(rest) != 1 || r.Method != http.MethodPost {
			break
		}
		h.handleAnalysis(w, r, s)
		return
	}

	h.writeError(w, http.StatusNotFound, "Unknown route")
}

// archiveFinished records the finished game and frees its channel for a
// new one. Archive failure is logged, never surfaced; the game already
// ended and the channel is released either way.
func (h *SessionHandler) archiveFinished(ctx context.Context, s *game.Session) {
	if s.Status() != game.StatusFinished {
		return
	}
	if h.archive != nil {
		result := storage.ResultFromSession(s)
		if err := h.archive.SaveResult(ctx, result); err != nil {
			h.logger.Warn("Failed to archive finished game", "session_id", s.ID, "error", err)
		} else {
			h.logger.Info("Game archived", "session_id", s.ID, "channel_id", s.ChannelID)
		}
	}
	// The DELETE route removes the session before cancelling it, so a
	// miss here is expected on that path.
	if _, err := h.sessions.Delete(s.ChannelID); err == nil {
		h.logger.Info("Channel released", "channel_id", s.ChannelID)
	}
}

// CreateSessionRequest defines the request body for creating a session
type CreateSessionRequest struct {
	ChannelID string `json:"channel_id"`
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.ChannelID == "" {
		h.writeError(w, http.StatusBadRequest, "channel_id field is required")
		return
	}

	s, err := h.sessions.Create(req.ChannelID)
	if err != nil {
		h.writeGameError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, s.Summary())
}

func (h *SessionHandler) handleSummary(w http.ResponseWriter, channelID string) {
	s, err := h.sessions.Get(channelID)
	if err != nil {
		h.writeGameError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, s.Summary())
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, channelID string) {
	s, err := h.sessions.Delete(channelID)
	if err != nil {
		h.writeGameError(w, err)
		return
	}

	// A running game is cancelled first so the final reveal happens
	// and the archived record carries an end reason.
	if endErr := s.End("game cancelled"); endErr == nil {
		h.archiveFinished(r.Context(), s)
	}

	h.writeJSON(w, http.StatusOK, s.Summary())
}

func (h *SessionHandler) handleStart(w http.ResponseWriter, r *http.Request, s *game.Session) {
	if err := s.Start(r.Context()); err != nil {
		h.writeGameError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, s.Summary())
}

// JoinRequest defines the request body for joining the roster
type JoinRequest struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

func (h *SessionHandler) handleJoin(w http.ResponseWriter, r *http.Request, s *game.Session) {
	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.PlayerID == "" || req.Name == "" {
		h.writeError(w, http.StatusBadRequest, "player_id and name fields are required")
		return
	}

	if _, err := s.AddPlayer(req.PlayerID, req.Name); err != nil {
		h.writeGameError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, s.Summary())
}

func (h *SessionHandler) handleLeave(w http.ResponseWriter, r *http.Request, s *game.Session, playerID string) {
	if !s.RemovePlayer(playerID) {
		h.writeGameError(w, game.ErrPlayerNotFound)
		return
	}
	// Removal can end a running game by leaving one survivor.
	h.archiveFinished(r.Context(), s)
	h.writeJSON(w, http.StatusOK, s.Summary())
}

// CardResponse carries one rendered character card
type CardResponse struct {
	PlayerID string `json:"player_id"`
	View     string `json:"view"`
	Card     string `json:"card"`
}

func (h *SessionHandler) handleCard(w http.ResponseWriter, r *http.Request, s *game.Session, playerID string) {
	p, ok := s.Player(playerID)
	if !ok {
		h.writeGameError(w, game.ErrPlayerNotFound)
		return
	}

	view := r.URL.Query().Get("view")
	cardView := game.CardPublic
	if view == "self" {
		cardView = game.CardSelf
	} else {
		view = "public"
	}

	h.writeJSON(w, http.StatusOK, CardResponse{
		PlayerID: playerID,
		View:     view,
		Card:     p.Card(cardView),
	})
}

func (h *SessionHandler) handleAdvanceRound(w http.ResponseWriter, s *game.Session) {
	round, err := s.AdvanceRound()
	if err != nil {
		h.writeGameError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"round": round})
}

// VoteTallyResponse reports the open round's progress
type VoteTallyResponse struct {
	Tally    map[string]int `json:"tally"`
	Cast     int            `json:"cast"`
	Expected int            `json:"expected"`
}

func (h *SessionHandler) handleVoteTally(w http.ResponseWriter, s *game.Session) {
	tally, err := s.VoteTally()
	if err != nil {
		h.writeGameError(w, err)
		return
	}
	cast, expected, _ := s.VoteProgress()
	h.writeJSON(w, http.StatusOK, VoteTallyResponse{
		Tally:    tally,
		Cast:     cast,
		Expected: expected,
	})
}

func (h *SessionHandler) handleOpenVote(w http.ResponseWriter, s *game.Session) {
	if err := s.OpenVote(); err != nil {
		h.writeGameError(w, err)
		return
	}
	_, expected, _ := s.VoteProgress()
	h.writeJSON(w, http.StatusCreated, map[string]int{"expected": expected})
}

// BallotRequest defines the request body for casting a ballot
type BallotRequest struct {
	VoterID  string `json:"voter_id"`
	TargetID string `json:"target_id"`
}

// BallotResponse reports the ballot's effect. Outcome is set only when
// this ballot completed the round and triggered resolution.
type BallotResponse struct {
	Cast     int           `json:"cast"`
	Expected int           `json:"expected"`
	Resolved bool          `json:"resolved"`
	Outcome  *game.Outcome `json:"outcome,omitempty"`
}

func (h *SessionHandler) handleCastVote(w http.ResponseWriter, r *http.Request, s *game.Session) {
	var req BallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.VoterID == "" || req.TargetID == "" {
		h.writeError(w, http.StatusBadRequest, "voter_id and target_id fields are required")
		return
	}

	complete, err := s.CastVote(req.VoterID, req.TargetID)
	if err != nil {
		h.writeGameError(w, err)
		return
	}

	resp := BallotResponse{}
	if complete {
		outcome, err := s.ResolveVote()
		if err != nil {
			h.writeGameError(w, err)
			return
		}
		resp.Resolved = true
		resp.Outcome = &outcome
		h.archiveFinished(r.Context(), s)
	} else {
		resp.Cast, resp.Expected, _ = s.VoteProgress()
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) handleResolveVote(w http.ResponseWriter, r *http.Request, s *game.Session) {
	outcome, err := s.ResolveVote()
	if err != nil {
		h.writeGameError(w, err)
		return
	}
	h.archiveFinished(r.Context(), s)
	h.writeJSON(w, http.StatusOK, outcome)
}

// RevealRequest defines the request body for revealing an attribute
type RevealRequest struct {
	PlayerID  string `json:"player_id"`
	Attribute string `json:"attribute"`
}

// RevealResponse reports the revealed value
type RevealResponse struct {
	PlayerID  string `json:"player_id"`
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
	Changed   bool   `json:"changed"`
}

func (h *SessionHandler) handleReveal(w http.ResponseWriter, r *http.Request, s *game.Session) {
	var req RevealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	attr, err := game.ParseAttribute(req.Attribute)
	if err != nil {
		h.writeGameError(w, err)
		return
	}

	changed, err := s.RevealAttribute(req.PlayerID, attr)
	if err != nil {
		h.writeGameError(w, err)
		return
	}

	p, _ := s.Player(req.PlayerID)
	h.writeJSON(w, http.StatusOK, RevealResponse{
		PlayerID:  req.PlayerID,
		Attribute: attr.String(),
		Value:     p.Revealed(attr),
		Changed:   changed,
	})
}

// BunkerResponse carries the shared shelter briefing
type BunkerResponse struct {
	Briefing string       `json:"briefing"`
	Bunker   *game.Bunker `json:"bunker"`
}

func (h *SessionHandler) handleBunker(w http.ResponseWriter, s *game.Session) {
	b := s.Bunker()
	if b == nil {
		h.writeGameError(w, game.ErrNotRunning)
		return
	}
	h.writeJSON(w, http.StatusOK, BunkerResponse{
		Briefing: b.Briefing(),
		Bunker:   b,
	})
}

// AnalysisResponse carries the generated survival verdict
type AnalysisResponse struct {
	Analysis string `json:"analysis"`
}

func (h *SessionHandler) handleAnalysis(w http.ResponseWriter, r *http.Request, s *game.Session) {
	analysis, err := s.SurvivalAnalysis(r.Context())
	if err != nil {
		h.writeGameError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, AnalysisResponse{Analysis: analysis})
}
