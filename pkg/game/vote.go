package game

import "sort"

// VoteRound collects one exile ballot per eligible voter. A round is
// created fresh for every vote and discarded after resolution; resolved
// rounds reject all further mutation. VoteRound does not lock anything
// itself: all access goes through the owning session's mutex.
type VoteRound struct {
	eligible map[string]struct{}
	ballots  map[string]string // voter id -> target id
	expected int
	resolved bool
}

// NewVoteRound opens a round for the given eligible voter ids. The
// expected ballot count is captured at open time; the owning session
// additionally rejects ballots from or against players that dropped out
// mid-round, so a round with dropouts only finishes through a forced
// resolve.
func NewVoteRound(eligibleIDs []string) *VoteRound {
	eligible := make(map[string]struct{}, len(eligibleIDs))
	for _, id := range eligibleIDs {
		eligible[id] = struct{}{}
	}
	return &VoteRound{
		eligible: eligible,
		ballots:  make(map[string]string, len(eligibleIDs)),
		expected: len(eligible),
	}
}

// Cast records one ballot. Re-votes are rejected, not overwritten. The
// returned flag reports whether every expected ballot is now in, which
// is the caller's cue to resolve synchronously.
func (v *VoteRound) Cast(voterID, targetID string) (complete bool, err error) {
	if v.resolved {
		return false, ErrVoteResolved
	}
	if _, ok := v.ballots[voterID]; ok {
		return false, ErrAlreadyVoted
	}
	if _, ok := v.eligible[voterID]; !ok {
		return false, ErrInvalidVoter
	}
	if _, ok := v.eligible[targetID]; !ok {
		return false, ErrInvalidTarget
	}
	v.ballots[voterID] = targetID
	return v.Complete(), nil
}

// Complete reports whether every expected ballot has been cast.
func (v *VoteRound) Complete() bool {
	return len(v.ballots) == v.expected
}

// Resolved reports whether the round has been resolved.
func (v *VoteRound) Resolved() bool {
	return v.resolved
}

// Tally counts ballots per target. Pure; callable mid-round for
// diagnostics.
func (v *VoteRound) Tally() map[string]int {
	counts := make(map[string]int, len(v.ballots))
	for _, target := range v.ballots {
		counts[target]++
	}
	return counts
}

// Outcome is the result of a resolved vote round. A tie names every
// candidate that shared the maximum and exiles nobody.
type Outcome struct {
	Exiled     string   `json:"exiled,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
	Votes      int      `json:"votes"`
}

// Tied reports whether the round ended without a single maximum.
func (o Outcome) Tied() bool {
	return o.Exiled == ""
}

// Resolve determines the outcome and seals the round. With zero ballots
// it fails with ErrNoVotes and the round stays open.
func (v *VoteRound) Resolve() (Outcome, error) {
	if v.resolved {
		return Outcome{}, ErrVoteResolved
	}
	if len(v.ballots) == 0 {
		return Outcome{}, ErrNoVotes
	}

	counts := v.Tally()
	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}

	var leaders []string
	for target, n := range counts {
		if n == max {
			leaders = append(leaders, target)
		}
	}
	sort.Strings(leaders)

	v.resolved = true
	if len(leaders) == 1 {
		return Outcome{Exiled: leaders[0], Votes: max}, nil
	}
	return Outcome{Candidates: leaders, Votes: max}, nil
}
