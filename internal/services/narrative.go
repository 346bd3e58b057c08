package services

import (
	"context"
	"fmt"

	"github.com/bunkerhq/bunker-engine/pkg/chat"
)

// NarrativeService is the external text/image generation capability the
// game engine depends on. Implementations own timeout and retry policy;
// callers only treat the calls as fallible.
type NarrativeService interface {
	// GenerateText turns a role-tagged conversation into generated text.
	GenerateText(ctx context.Context, messages []chat.Message) (string, error)

	// GenerateImage renders an image for a text prompt and returns the
	// raw payload.
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// GenerationError wraps a provider failure so callers can distinguish
// recoverable narrative failures from game-state errors.
type GenerationError struct {
	Provider string
	Op       string // "text" or "image"
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s %s generation failed: %v", e.Provider, e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
