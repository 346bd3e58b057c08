package game

import (
	"strings"
	"testing"
)

func TestBunker_Title(t *testing.T) {
	b := &Bunker{Theme: "Nuclear winter"}
	if got := b.Title(); got != "Nuclear winter" {
		t.Errorf("title without disaster = %q, want the theme", got)
	}

	b.Disaster = "the reactors failed one by one\n\nAsh fell for a week."
	if got := b.Title(); got != "The Reactors Failed One By One" {
		t.Errorf("title = %q", got)
	}
}

func TestBunker_BriefingStartsWithTitle(t *testing.T) {
	b := RollBunker(testRand(11))
	briefing := b.Briefing()
	if !strings.HasPrefix(briefing, "# "+b.Title()+"\n") {
		t.Errorf("briefing does not open with the title:\n%s", briefing)
	}
	if !strings.Contains(briefing, b.Food) {
		t.Error("briefing missing food supply")
	}
}
