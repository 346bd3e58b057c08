package game

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/bunkerhq/bunker-engine/pkg/textfilter"
)

// Bunker is the shared shelter scenario all players are judged against.
// Structured attributes are rolled from the tables; the disaster and
// interior narratives and the image are generated exactly once, when
// the session starts, and never regenerated.
type Bunker struct {
	Theme    string   `json:"theme"`
	Size     string   `json:"size"`
	Duration string   `json:"duration"`
	Food     string   `json:"food"`
	Items    []string `json:"items"`

	Disaster string `json:"disaster,omitempty"`
	Interior string `json:"interior,omitempty"`

	// ImagePrompt is kept for diagnostics; Image is the rendered
	// payload, absent when the image path failed or is disabled.
	ImagePrompt string `json:"image_prompt,omitempty"`
	Image       []byte `json:"image,omitempty"`
}

// RollBunker generates the structured bunker attributes. Narratives and
// the image are filled in by the session afterwards.
func RollBunker(r *rand.Rand) *Bunker {
	return &Bunker{
		Theme:    uniformChoice(r, bunkerThemes),
		Size:     uniformChoice(r, bunkerSizes),
		Duration: uniformChoice(r, bunkerDurations),
		Food:     uniformChoice(r, bunkerFoodSupplies),
		Items:    sampleWithoutReplacement(r, bunkerItems, intBetween(r, 1, bunkerMaxItems)),
	}
}

// Title returns a short scenario heading, extracted from the generated
// disaster text when there is one.
func (b *Bunker) Title() string {
	if t := textfilter.Headline(b.Disaster); t != "" {
		return t
	}
	return b.Theme
}

// Briefing renders the bunker description shown to all players at game
// start and embedded in the survival-analysis prompt.
func (b *Bunker) Briefing() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", b.Title())
	sb.WriteString("**The disaster:**\n")
	if b.Disaster != "" {
		sb.WriteString(b.Disaster)
	} else {
		fmt.Fprintf(&sb, "Theme: %s", b.Theme)
	}
	sb.WriteString("\n\n")

	if b.Interior != "" {
		sb.WriteString("**The bunker:**\n")
		sb.WriteString(b.Interior)
		sb.WriteString("\n\n")
	}

	fmt.Fprintf(&sb, "**Size**: %s\n", b.Size)
	fmt.Fprintf(&sb, "**Stay duration**: %s\n", b.Duration)
	fmt.Fprintf(&sb, "**Food supply**: %s\n", b.Food)
	fmt.Fprintf(&sb, "**Inside the bunker**: %s\n", strings.Join(b.Items, ", "))

	return sb.String()
}
