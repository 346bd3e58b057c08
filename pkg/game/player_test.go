package game

import (
	"strings"
	"testing"
)

func testCharacter() Character {
	return Character{
		Gender:     "Male, single (34 y.o.)",
		Body:       "Athletic (182 cm)",
		Trait:      "Natural leader",
		Profession: "Surgeon (professional)",
		Health:     "Asthma (mild)",
		Hobby:      "Chess (amateur)",
		Phobia:     "Claustrophobia",
		Gear:       "Diesel generator",
		Backpack:   "Canned food (x4), Flashlight",
		Fact:       "Knows morse code",
	}
}

func TestPlayer_RevealMonotonic(t *testing.T) {
	p := NewPlayer("1", "Alice")
	p.Character = testCharacter()

	for _, a := range Attributes() {
		if p.IsRevealed(a) {
			t.Fatalf("%s revealed before reveal", a)
		}
		if got := p.Revealed(a); got != Concealed {
			t.Fatalf("%s pre-reveal accessor leaked %q", a, got)
		}
		if !p.Reveal(a) {
			t.Fatalf("first reveal of %s returned false", a)
		}
		if p.Reveal(a) {
			t.Fatalf("second reveal of %s returned true", a)
		}
		if got := p.Revealed(a); got != p.Character.Attribute(a) {
			t.Fatalf("post-reveal accessor for %s = %q, want stored value", a, got)
		}
	}
}

func TestPlayer_RevealOutOfRange(t *testing.T) {
	p := NewPlayer("1", "Alice")
	if p.Reveal(Attribute(-1)) || p.Reveal(numAttributes) {
		t.Error("out-of-range attribute must not be revealable")
	}
	if got := p.Revealed(Attribute(99)); got != Concealed {
		t.Errorf("out-of-range accessor = %q, want sentinel", got)
	}
}

func TestPlayer_CardViews(t *testing.T) {
	p := NewPlayer("1", "Alice")
	p.Character = testCharacter()
	p.Character.Biography = "I am a wandering surgeon."
	p.Reveal(AttrProfession)

	public := p.Card(CardPublic)
	if strings.Contains(public, p.Character.Phobia) {
		t.Error("public card leaks an unrevealed attribute")
	}
	if !strings.Contains(public, p.Character.Profession) {
		t.Error("public card is missing the revealed profession")
	}
	if !strings.Contains(public, Concealed) {
		t.Error("public card should conceal hidden attributes")
	}

	self := p.Card(CardSelf)
	if !strings.Contains(self, "~~"+p.Character.Profession+"~~") {
		t.Error("self card should strike through revealed values")
	}
	if !strings.Contains(self, p.Character.Phobia) {
		t.Error("self card should show unrevealed values")
	}
	if !strings.Contains(self, "I am a wandering surgeon.") {
		t.Error("self card should include the biography")
	}
}

func TestPlayer_CardOmitsEmptyAbility(t *testing.T) {
	p := NewPlayer("1", "Alice")
	p.Character = testCharacter()
	if strings.Contains(p.Card(CardSelf), AttrAbility.Label()) {
		t.Error("card should omit the empty ability slot")
	}

	p.Character.Ability = "Can swap backpacks with another player once"
	if !strings.Contains(p.Card(CardSelf), AttrAbility.Label()) {
		t.Error("card should show a present ability")
	}
}

func TestPlayer_RevealAll(t *testing.T) {
	p := NewPlayer("1", "Alice")
	p.Character = testCharacter()
	p.RevealAll()
	for _, a := range Attributes() {
		if !p.IsRevealed(a) {
			t.Fatalf("%s not revealed after RevealAll", a)
		}
	}
}

func TestParseAttribute_RoundTrip(t *testing.T) {
	for _, a := range Attributes() {
		got, err := ParseAttribute(a.String())
		if err != nil {
			t.Fatalf("ParseAttribute(%q): %v", a.String(), err)
		}
		if got != a {
			t.Fatalf("ParseAttribute(%q) = %v, want %v", a.String(), got, a)
		}
	}
	if _, err := ParseAttribute("charisma"); err == nil {
		t.Error("expected error for unknown attribute")
	}
}
