package game

import (
	"fmt"
	"strings"
)

// Concealed is the sentinel returned for attributes that have not been
// revealed. The real value is never observable through the public
// accessors until the attribute is revealed.
const Concealed = "[hidden]"

// Player wraps a rolled character with per-attribute reveal state and
// an activity flag. Players are only ever mutated while holding their
// session's lock.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Character Character `json:"character"`

	active   bool
	revealed [numAttributes]bool
}

// NewPlayer creates a roster entry. The character is rolled later, when
// the session starts.
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		active: true,
	}
}

// Active reports whether the player is still in contention.
func (p *Player) Active() bool {
	return p.active
}

// deactivate flips the player out of contention. There is no way back
// within the life of a session.
func (p *Player) deactivate() {
	p.active = false
}

// Reveal marks one attribute as visible to all players. It returns true
// only on the call that flips the flag; reveals are monotonic.
func (p *Player) Reveal(a Attribute) bool {
	if a < 0 || a >= numAttributes || p.revealed[a] {
		return false
	}
	p.revealed[a] = true
	return true
}

// RevealAll marks every attribute revealed. Runs as part of game-end
// finalization.
func (p *Player) RevealAll() {
	for i := range p.revealed {
		p.revealed[i] = true
	}
}

// IsRevealed reports whether an attribute has been revealed.
func (p *Player) IsRevealed(a Attribute) bool {
	return a >= 0 && a < numAttributes && p.revealed[a]
}

// Revealed returns the attribute's display value if it has been
// revealed, or the Concealed sentinel otherwise. This is the
// confidentiality boundary: other players only ever see this accessor.
func (p *Player) Revealed(a Attribute) string {
	if !p.IsRevealed(a) {
		return Concealed
	}
	return p.Character.Attribute(a)
}

// CardView selects which values a character card shows.
type CardView int

const (
	// CardSelf shows every real value; revealed ones are struck
	// through so the owner knows what the table already knows.
	CardSelf CardView = iota
	// CardPublic shows only revealed values, concealing the rest.
	CardPublic
)

// Card renders the character card as markdown-ish text. The platform
// layer is free to reformat; this rendering is deterministic given the
// reveal state.
func (p *Player) Card(view CardView) string {
	var b strings.Builder
	if p.Character.Biography != "" {
		b.WriteString(p.Character.Biography)
		b.WriteString("\n\n")
	}
	for _, a := range Attributes() {
		if a == AttrAbility && p.Character.Ability == "" {
			continue
		}
		var value string
		switch view {
		case CardSelf:
			value = p.Character.Attribute(a)
			if p.revealed[a] {
				value = "~~" + value + "~~"
			}
		default:
			value = p.Revealed(a)
		}
		fmt.Fprintf(&b, "**%s**: %s\n", a.Label(), value)
	}
	return b.String()
}
