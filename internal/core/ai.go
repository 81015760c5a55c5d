package core

import (
	"context"

	"github.com/markdave123-py/docchat/internal/models"
)

// LLMProvider answers the last user turn given the conversation that precedes it.
// An empty reply with a nil error means the model returned no usable text.
type LLMProvider interface {
	Generate(ctx context.Context, history []models.ChatMessage, prompt string) (string, error)
}
