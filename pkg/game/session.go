package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bunkerhq/bunker-engine/pkg/chat"
	"github.com/bunkerhq/bunker-engine/pkg/prompts"
	"github.com/bunkerhq/bunker-engine/pkg/textfilter"
)

// Status is the lifecycle state of a session. Transitions only move
// forward: waiting -> running -> finished.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusRunning  Status = "running"
	StatusFinished Status = "finished"
)

// NarrativeClient is the abstract text/image generation capability the
// session depends on. Implementations own their own timeout and retry
// policy; the session only treats calls as fallible.
type NarrativeClient interface {
	GenerateText(ctx context.Context, messages []chat.Message) (string, error)
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// Rules are the per-session gameplay knobs.
type Rules struct {
	MinPlayers int `json:"min_players"`
	MaxPlayers int `json:"max_players"`

	// ExileOnTie switches the tie policy from "no exile, re-vote" to
	// exiling a random candidate among the tied leaders.
	ExileOnTie bool `json:"exile_on_tie"`

	GenerateBiographies bool `json:"generate_biographies"`
	GenerateDisaster    bool `json:"generate_disaster"`
	GenerateInterior    bool `json:"generate_interior"`
	GenerateImage       bool `json:"generate_image"`
}

// DefaultRules returns the standard game setup.
func DefaultRules() Rules {
	return Rules{
		MinPlayers:          2,
		MaxPlayers:          16,
		GenerateBiographies: true,
		GenerateDisaster:    true,
		GenerateInterior:    true,
		GenerateImage:       true,
	}
}

// Session is one bunker game, owned by one chat channel. It exclusively
// owns its roster, bunker and current vote round; all mutation is
// serialized through one mutex, so near-simultaneous platform callbacks
// (two voters clicking at once) cannot double-count.
type Session struct {
	ID        uuid.UUID `json:"id"`
	ChannelID string    `json:"channel_id"`
	CreatedAt time.Time `json:"created_at"`

	mu        sync.Mutex
	status    Status
	rules     Rules
	players   []*Player
	bunker    *Bunker
	round     int
	vote      *VoteRound
	winner    *Player
	endReason string

	narrative NarrativeClient
	rng       *rand.Rand
	logger    *slog.Logger
}

// Option customizes a new session.
type Option func(*Session)

// WithRand injects a deterministic random source, used by tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithLogger attaches a logger; defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a session in the waiting state.
func NewSession(channelID string, narrative NarrativeClient, rules Rules, opts ...Option) *Session {
	s := &Session{
		ID:        uuid.New(),
		ChannelID: channelID,
		CreatedAt: time.Now(),
		status:    StatusWaiting,
		rules:     rules,
		narrative: narrative,
		rng:       newRand(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("channel_id", channelID, "session_id", s.ID)
	return s
}

// Status returns the lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Rules returns the session's gameplay knobs.
func (s *Session) Rules() Rules {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules
}

// Round returns the current round counter.
func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// Players returns the roster in join order.
func (s *Session) Players() []*Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Player, len(s.players))
	copy(out, s.players)
	return out
}

// Player finds a roster entry by id.
func (s *Session) Player(id string) (*Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findPlayer(id)
}

// ActivePlayers returns the players still in contention, in join order.
func (s *Session) ActivePlayers() []*Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activePlayers()
}

// Bunker returns the session's bunker, nil before the game starts.
func (s *Session) Bunker() *Bunker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bunker
}

// Winner returns the sole survivor, or nil.
func (s *Session) Winner() *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.winner
}

// EndReason returns the reason recorded when the session finished.
func (s *Session) EndReason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endReason
}

func (s *Session) findPlayer(id string) (*Player, bool) {
	for _, p := range s.players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (s *Session) activePlayers() []*Player {
	var out []*Player
	for _, p := range s.players {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out
}

// AddPlayer appends a new roster entry. Joining is only allowed while
// the session is waiting.
func (s *Session) AddPlayer(id, name string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusWaiting {
		return nil, ErrNotWaiting
	}
	if _, ok := s.findPlayer(id); ok {
		return nil, ErrAlreadyJoined
	}
	if len(s.players) >= s.rules.MaxPlayers {
		return nil, ErrSessionFull
	}

	p := NewPlayer(id, name)
	s.players = append(s.players, p)
	s.logger.Info("player joined", "player_id", id, "player_name", name, "roster_size", len(s.players))
	return p, nil
}

// RemovePlayer deactivates a roster entry (voluntary withdrawal or
// admin kick). The entry stays in the roster. Allowed while waiting or
// running; while running the session may finish as a side effect if the
// removal leaves one or zero active players.
func (s *Session) RemovePlayer(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findPlayer(id)
	if !ok || s.status == StatusFinished || !p.Active() {
		return false
	}
	p.deactivate()
	s.logger.Info("player removed", "player_id", id)

	if s.status == StatusRunning {
		s.checkSurvivors()
	}
	return true
}

// checkSurvivors finishes the game when at most one active player
// remains. Callers hold the lock.
func (s *Session) checkSurvivors() {
	active := s.activePlayers()
	switch len(active) {
	case 0:
		s.finish(nil, "no players remaining")
	case 1:
		s.finish(active[0], "sole survivor")
	}
}

// finish moves the session to the terminal state and runs the full
// reveal: every attribute of every player becomes visible, win or
// forced stop. Callers hold the lock.
func (s *Session) finish(winner *Player, reason string) {
	if s.status == StatusFinished {
		return
	}
	s.status = StatusFinished
	s.winner = winner
	s.endReason = reason
	s.vote = nil
	for _, p := range s.players {
		p.RevealAll()
	}
	if winner != nil {
		s.logger.Info("game finished", "reason", reason, "winner", winner.ID)
	} else {
		s.logger.Info("game finished", "reason", reason)
	}
}

// Start moves the session from waiting to running. It rolls the bunker,
// generates the disaster/interior narratives and the optional image,
// then rolls and narrates every player's character. Narrative and image
// failures are recoverable: the affected free-text field stays empty,
// the structured attributes are untouched and the game proceeds.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusWaiting {
		return ErrAlreadyStarted
	}
	if len(s.players) < s.rules.MinPlayers {
		return fmt.Errorf("%w: have %d, need %d", ErrNotEnoughPlayers, len(s.players), s.rules.MinPlayers)
	}

	s.bunker = RollBunker(s.rng)
	s.generateBunkerNarratives(ctx)

	for _, p := range s.players {
		p.Character = RollCharacter(s.rng)
		if s.rules.GenerateBiographies {
			bio, err := s.narrative.GenerateText(ctx, prompts.CharacterBiography(p.Character.Sheet()))
			if err != nil {
				s.logger.Warn("biography generation failed", "player_id", p.ID, "error", err)
			} else {
				p.Character.Biography = textfilter.Clean(bio)
			}
		}
	}

	s.status = StatusRunning
	s.logger.Info("game started", "players", len(s.players), "theme", s.bunker.Theme)
	return nil
}

func (s *Session) generateBunkerNarratives(ctx context.Context) {
	b := s.bunker

	if s.rules.GenerateDisaster {
		disaster, err := s.narrative.GenerateText(ctx, prompts.Disaster(b.Theme))
		if err != nil {
			s.logger.Warn("disaster generation failed", "error", err)
		} else {
			b.Disaster = textfilter.Clean(disaster)
		}
	}

	if s.rules.GenerateInterior {
		interior, err := s.narrative.GenerateText(ctx, prompts.BunkerInterior(b.Size, b.Food, b.Items))
		if err != nil {
			s.logger.Warn("interior generation failed", "error", err)
		} else {
			b.Interior = textfilter.Clean(interior)
		}
	}

	// The whole image path is best-effort.
	if s.rules.GenerateImage {
		disaster := b.Disaster
		if disaster == "" {
			disaster = b.Theme
		}
		prompt, err := s.narrative.GenerateText(ctx, prompts.ImagePrompt(disaster))
		if err != nil {
			s.logger.Warn("image prompt generation failed", "error", err)
			return
		}
		prompt = textfilter.Clean(prompt)
		b.ImagePrompt = prompt
		img, err := s.narrative.GenerateImage(ctx, prompt)
		if err != nil {
			s.logger.Warn("image generation failed", "error", err)
			return
		}
		b.Image = img
	}
}

// AdvanceRound increments and returns the round counter.
func (s *Session) AdvanceRound() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning {
		return s.round, ErrNotRunning
	}
	s.round++
	s.logger.Info("round advanced", "round", s.round)
	return s.round, nil
}

// OpenVote starts a fresh exile vote among the currently active
// players. At most one round is open at a time.
func (s *Session) OpenVote() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning {
		return ErrNotRunning
	}
	if s.vote != nil && !s.vote.Resolved() {
		return ErrVoteAlreadyOpen
	}

	active := s.activePlayers()
	if len(active) < 2 {
		return ErrTooFewActive
	}

	ids := make([]string, 0, len(active))
	for _, p := range active {
		ids = append(ids, p.ID)
	}
	s.vote = NewVoteRound(ids)
	s.logger.Info("vote opened", "eligible", len(ids))
	return nil
}

// CastVote records one ballot in the open round. The returned flag
// reports whether every eligible voter has now voted; the caller
// decides synchronously whether to resolve.
func (s *Session) CastVote(voterID, targetID string) (complete bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning {
		return false, ErrNotRunning
	}
	if s.vote == nil {
		return false, ErrNoVoteOpen
	}
	// Eligibility is rechecked against the live roster; a player
	// removed after the round opened can neither vote nor be voted.
	if p, ok := s.findPlayer(voterID); !ok || !p.Active() {
		return false, ErrInvalidVoter
	}
	if p, ok := s.findPlayer(targetID); !ok || !p.Active() {
		return false, ErrInvalidTarget
	}
	return s.vote.Cast(voterID, targetID)
}

// VoteTally returns the current per-target counts of the open round.
func (s *Session) VoteTally() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vote == nil {
		return nil, ErrNoVoteOpen
	}
	return s.vote.Tally(), nil
}

// VoteProgress reports ballots cast and expected for the open round.
func (s *Session) VoteProgress() (cast, expected int, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vote == nil || s.vote.Resolved() {
		return 0, 0, false
	}
	return len(s.vote.ballots), s.vote.expected, true
}

// ResolveVote seals the open round and applies its outcome. A single
// leader is exiled; a tie exiles nobody under the default policy (the
// platform layer opens a fresh round), or a random tied candidate when
// Rules.ExileOnTie is set. After an exile the session finishes if one
// active player remains. The round is discarded either way.
func (s *Session) ResolveVote() (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning {
		return Outcome{}, ErrNotRunning
	}
	if s.vote == nil {
		return Outcome{}, ErrNoVoteOpen
	}

	outcome, err := s.vote.Resolve()
	if err != nil {
		// NoVotes keeps the round open for a later force-resolve.
		return Outcome{}, err
	}
	s.vote = nil

	if outcome.Tied() && s.rules.ExileOnTie {
		exiled := uniformChoice(s.rng, outcome.Candidates)
		outcome = Outcome{Exiled: exiled, Votes: outcome.Votes}
	}

	if outcome.Tied() {
		s.logger.Info("vote tied", "candidates", outcome.Candidates, "votes", outcome.Votes)
		return outcome, nil
	}

	if p, ok := s.findPlayer(outcome.Exiled); ok {
		p.deactivate()
	}
	s.logger.Info("player exiled", "player_id", outcome.Exiled, "votes", outcome.Votes)
	s.checkSurvivors()
	return outcome, nil
}

// End forces the session into the finished state from any non-terminal
// state, running the full reveal.
func (s *Session) End(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusFinished {
		return ErrFinished
	}
	s.finish(nil, reason)
	return nil
}

// RevealAttribute makes one attribute of one player visible to the
// table. Returns whether this call changed state; revealing an already
// revealed attribute is a no-op, not an error.
func (s *Session) RevealAttribute(playerID string, a Attribute) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning {
		return false, ErrNotRunning
	}
	p, ok := s.findPlayer(playerID)
	if !ok {
		return false, ErrPlayerNotFound
	}
	changed := p.Reveal(a)
	if changed {
		s.logger.Info("attribute revealed", "player_id", playerID, "attribute", a.String())
	}
	return changed, nil
}

// SurvivalAnalysis asks the narrative provider to judge the surviving
// group against the bunker. The prompt is built under the lock; the
// provider call runs outside it, so a slow model does not block votes.
// Failure leaves the game state untouched.
func (s *Session) SurvivalAnalysis(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.status == StatusWaiting {
		s.mu.Unlock()
		return "", ErrNotRunning
	}
	active := s.activePlayers()
	if len(active) == 0 {
		s.mu.Unlock()
		return "", ErrTooFewActive
	}
	briefing := s.bunker.Briefing()
	cards := make([]string, 0, len(active))
	for _, p := range active {
		cards = append(cards, fmt.Sprintf("**Survivor %s**\n%s", p.Name, p.Character.Sheet()))
	}
	s.mu.Unlock()

	analysis, err := s.narrative.GenerateText(ctx, prompts.SurvivalAnalysis(briefing, cards))
	if err != nil {
		return "", err
	}
	return textfilter.Clean(analysis), nil
}
