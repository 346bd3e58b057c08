package game

import "errors"

// Structural and state errors. These are contract violations the caller
// should have prevented; none of them leaves the session mutated.
var (
	ErrAlreadyJoined    = errors.New("player already joined")
	ErrSessionFull      = errors.New("session is full")
	ErrNotWaiting       = errors.New("session is no longer accepting players")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrAlreadyStarted   = errors.New("session already started")
	ErrNotRunning       = errors.New("session is not running")
	ErrFinished         = errors.New("session is finished")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrTooFewActive     = errors.New("too few active players for a vote")
	ErrNoVoteOpen       = errors.New("no vote is open")
	ErrVoteAlreadyOpen  = errors.New("a vote is already open")
	ErrAlreadyVoted     = errors.New("voter has already cast a ballot")
	ErrInvalidVoter     = errors.New("voter is not an active player")
	ErrInvalidTarget    = errors.New("target is not an active player")
	ErrNoVotes          = errors.New("no ballots were cast")
	ErrVoteResolved     = errors.New("vote round is already resolved")
)
