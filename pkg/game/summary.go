package game

import "github.com/google/uuid"

// PlayerSummary is the publicly visible view of one roster entry.
// Revealed carries only attributes the table is allowed to see.
type PlayerSummary struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Active   bool              `json:"active"`
	Revealed map[string]string `json:"revealed,omitempty"`
}

// Summary is a point-in-time public snapshot of a session, shaped for
// the platform layer to deliver. It never exposes unrevealed values.
type Summary struct {
	SessionID       uuid.UUID       `json:"session_id"`
	ChannelID       string          `json:"channel_id"`
	Status          Status          `json:"status"`
	Round           int             `json:"round"`
	Players         []PlayerSummary `json:"players"`
	VoteOpen        bool            `json:"vote_open"`
	BallotsCast     int             `json:"ballots_cast,omitempty"`
	BallotsExpected int             `json:"ballots_expected,omitempty"`
	WinnerID        string          `json:"winner_id,omitempty"`
	EndReason       string          `json:"end_reason,omitempty"`
}

// Summary builds the public snapshot.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{
		SessionID: s.ID,
		ChannelID: s.ChannelID,
		Status:    s.status,
		Round:     s.round,
		EndReason: s.endReason,
	}
	if s.winner != nil {
		sum.WinnerID = s.winner.ID
	}
	if s.vote != nil && !s.vote.Resolved() {
		sum.VoteOpen = true
		sum.BallotsCast = len(s.vote.ballots)
		sum.BallotsExpected = s.vote.expected
	}

	for _, p := range s.players {
		ps := PlayerSummary{
			ID:     p.ID,
			Name:   p.Name,
			Active: p.Active(),
		}
		for _, a := range Attributes() {
			if !p.IsRevealed(a) {
				continue
			}
			// Cards skip the empty ability slot; the summary does too.
			if a == AttrAbility && p.Character.Ability == "" {
				continue
			}
			if ps.Revealed == nil {
				ps.Revealed = make(map[string]string)
			}
			ps.Revealed[a.String()] = p.Character.Attribute(a)
		}
		sum.Players = append(sum.Players, ps)
	}
	return sum
}
