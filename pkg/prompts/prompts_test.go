package prompts

import (
	"strings"
	"testing"

	"github.com/bunkerhq/bunker-engine/pkg/chat"
)

func requireSystemUser(t *testing.T, messages []chat.Message) {
	t.Helper()
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want system+user", len(messages))
	}
	if messages[0].Role != chat.RoleSystem || messages[1].Role != chat.RoleUser {
		t.Fatalf("roles = %s, %s", messages[0].Role, messages[1].Role)
	}
}

func TestCharacterBiography(t *testing.T) {
	sheet := "Gender: Male, single (34 y.o.)\nProfession: Surgeon (professional)"
	messages := CharacterBiography(sheet)
	requireSystemUser(t, messages)
	if !strings.Contains(messages[1].Content, sheet) {
		t.Error("user message must embed the character dossier")
	}
}

func TestDisaster(t *testing.T) {
	messages := Disaster("Nuclear war")
	requireSystemUser(t, messages)
	if !strings.Contains(messages[1].Content, "Nuclear war") {
		t.Error("user message must embed the theme")
	}
}

func TestBunkerInterior(t *testing.T) {
	messages := BunkerInterior("Modest (100 m²)", "Well stocked", []string{"Medical bay", "Chapel"})
	requireSystemUser(t, messages)
	content := messages[1].Content
	for _, want := range []string{"Modest (100 m²)", "Well stocked", "Medical bay, Chapel"} {
		if !strings.Contains(content, want) {
			t.Errorf("user message missing %q", want)
		}
	}
}

func TestImagePrompt_EnglishSystem(t *testing.T) {
	messages := ImagePrompt("A firestorm sweeps the plains.")
	requireSystemUser(t, messages)
	if !strings.Contains(messages[0].Content, "English") {
		t.Error("image prompts must be pinned to English")
	}
}

func TestSurvivalAnalysis(t *testing.T) {
	cards := []string{"**Survivor A**\nProfession: Cook", "**Survivor B**\nProfession: Nurse"}
	messages := SurvivalAnalysis("Size: Vast", cards)
	requireSystemUser(t, messages)
	content := messages[1].Content
	if !strings.Contains(content, "(2 people)") {
		t.Errorf("analysis prompt should state the group size:\n%s", content)
	}
	for _, card := range cards {
		if !strings.Contains(content, card) {
			t.Errorf("analysis prompt missing card %q", card)
		}
	}
}
