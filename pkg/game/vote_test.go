package game

import (
	"errors"
	"testing"
)

func TestVoteRound_TallyAndExile(t *testing.T) {
	v := NewVoteRound([]string{"1", "2", "3", "A", "B"})

	for _, ballot := range [][2]string{{"1", "A"}, {"2", "A"}} {
		if _, err := v.Cast(ballot[0], ballot[1]); err != nil {
			t.Fatalf("Cast(%v): %v", ballot, err)
		}
	}
	complete, err := v.Cast("3", "B")
	if err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if complete {
		t.Error("round complete with 3 of 5 ballots")
	}

	tally := v.Tally()
	if tally["A"] != 2 || tally["B"] != 1 {
		t.Errorf("tally = %v, want A:2 B:1", tally)
	}

	outcome, err := v.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if outcome.Tied() || outcome.Exiled != "A" || outcome.Votes != 2 {
		t.Errorf("outcome = %+v, want Exiled A with 2 votes", outcome)
	}
}

func TestVoteRound_Tie(t *testing.T) {
	v := NewVoteRound([]string{"1", "2"})

	if _, err := v.Cast("1", "2"); err != nil {
		t.Fatal(err)
	}
	complete, err := v.Cast("2", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !complete {
		t.Error("expected completion after all ballots")
	}

	outcome, err := v.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !outcome.Tied() {
		t.Fatalf("outcome = %+v, want tie", outcome)
	}
	if len(outcome.Candidates) != 2 || outcome.Votes != 1 {
		t.Errorf("tie outcome = %+v, want two candidates with 1 vote each", outcome)
	}
}

func TestVoteRound_DoubleVoteRejected(t *testing.T) {
	v := NewVoteRound([]string{"1", "2", "3"})

	if _, err := v.Cast("1", "2"); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Cast("1", "3"); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("second cast err = %v, want ErrAlreadyVoted", err)
	}

	// The rejected ballot must not change the tally.
	if tally := v.Tally(); tally["2"] != 1 || tally["3"] != 0 {
		t.Errorf("tally after rejected re-vote = %v", tally)
	}
}

func TestVoteRound_InvalidIDs(t *testing.T) {
	v := NewVoteRound([]string{"1", "2"})

	if _, err := v.Cast("ghost", "1"); !errors.Is(err, ErrInvalidVoter) {
		t.Errorf("err = %v, want ErrInvalidVoter", err)
	}
	if _, err := v.Cast("1", "ghost"); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("err = %v, want ErrInvalidTarget", err)
	}
	if len(v.Tally()) != 0 {
		t.Error("failed casts must not mutate the ballots")
	}
}

func TestVoteRound_NoVotes(t *testing.T) {
	v := NewVoteRound([]string{"1", "2"})

	if _, err := v.Resolve(); !errors.Is(err, ErrNoVotes) {
		t.Fatalf("err = %v, want ErrNoVotes", err)
	}
	if v.Resolved() {
		t.Error("round must stay open after a NoVotes resolution attempt")
	}

	// Still usable after the failed resolve.
	if _, err := v.Cast("1", "2"); err != nil {
		t.Errorf("cast after failed resolve: %v", err)
	}
}

func TestVoteRound_ResolvedIsImmutable(t *testing.T) {
	v := NewVoteRound([]string{"1", "2"})
	if _, err := v.Cast("1", "2"); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Resolve(); err != nil {
		t.Fatal(err)
	}

	if _, err := v.Cast("2", "1"); !errors.Is(err, ErrVoteResolved) {
		t.Errorf("cast on resolved round err = %v, want ErrVoteResolved", err)
	}
	if _, err := v.Resolve(); !errors.Is(err, ErrVoteResolved) {
		t.Errorf("second resolve err = %v, want ErrVoteResolved", err)
	}
}
