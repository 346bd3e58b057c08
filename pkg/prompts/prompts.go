// Package prompts builds the conversations sent to the narrative
// provider. Builders take plain strings so the package stays free of
// game-state dependencies.
package prompts

import (
	"fmt"
	"strings"

	"github.com/bunkerhq/bunker-engine/pkg/chat"
)

// System prompts fix the provider's role per generation task. Output
// language follows the user's language except for image prompts, which
// the image backends expect in English.
const (
	biographySystemPrompt = `You are a character writer for a social deduction survival game. Always respond in the user's language. Reply with the requested text only, never with commentary about yourself.`

	disasterSystemPrompt = `You generate disaster scenarios for a bunker survival game. Always respond in the user's language. Reply with the requested text only, never with commentary about yourself.`

	interiorSystemPrompt = `You generate shelter descriptions for a bunker survival game. Always respond in the user's language. Reply with the requested text only, never with commentary about yourself.`

	imagePromptSystemPrompt = `You are an image-generation prompt writer. Always respond in English. Answer only with the prompt itself, without any other text.`

	analysisSystemPrompt = `You are a survival expert judging whether a group of people can survive together in a bunker after a catastrophe. Be thorough and weigh how the group's professions, skills, health and flaws combine. Always respond in the user's language.`
)

// CharacterBiography builds the conversation that turns a rolled
// character dossier into a short first-person biography.
func CharacterBiography(sheet string) []chat.Message {
	user := fmt.Sprintf(`Write a short biography for this character, in first person, as a single sentence.
Invent a name, eye color, hair color and skin tone for them.
Reply with the biography only.

Character dossier:
%s`, sheet)
	return chat.Conversation(biographySystemPrompt, user)
}

// Disaster builds the conversation generating the catastrophe the
// players shelter from. The disaster happens outside the bunker; the
// bunker itself must not appear in the text.
func Disaster(theme string) []chat.Message {
	user := fmt.Sprintf(`Generate a deadly catastrophe on the theme: %s.
The catastrophe is what happens OUTSIDE the bunker; do not mention the bunker itself.
Players will use it to argue who deserves a place in the bunker.
Name the catastrophe, describe it, and describe what awaits anyone left outside.
Reply with the description only.`, theme)
	return chat.Conversation(disasterSystemPrompt, user)
}

// BunkerInterior builds the conversation describing the shelter's
// rooms, derived from its rolled attributes.
func BunkerInterior(size, food string, items []string) []chat.Message {
	user := fmt.Sprintf(`Write a brief description of a survival bunker from its characteristics.
Invent which rooms it has, fitting its size and contents.
Reply with the description only.

Size: %s
Food supply: %s
Contents: %s`, size, food, strings.Join(items, ", "))
	return chat.Conversation(interiorSystemPrompt, user)
}

// ImagePrompt builds the conversation that derives an image-generation
// prompt from the disaster text.
func ImagePrompt(disaster string) []chat.Message {
	user := fmt.Sprintf(`Write an image-generation prompt for the following disaster: %s
Describe the landscape around the shelter without mentioning the shelter itself.
Add style tags such as "dark, atmospheric, cinematic".
Answer only with the prompt.`, disaster)
	return chat.Conversation(imagePromptSystemPrompt, user)
}

// SurvivalAnalysis builds the conversation judging the surviving group
// against the bunker scenario.
func SurvivalAnalysis(briefing string, survivorCards []string) []chat.Message {
	user := fmt.Sprintf(`Analyze this group's chances of surviving in the bunker.

DISASTER AND BUNKER:
%s

SURVIVORS (%d people):
%s

Cover the following:
1. Conflicts likely to arise between the inhabitants.
2. Strengths and weaknesses of the group and its equipment.
3. An estimated survival probability, as a percentage.`,
		briefing, len(survivorCards), strings.Join(survivorCards, "\n\n"))
	return chat.Conversation(analysisSystemPrompt, user)
}
