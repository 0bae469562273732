package repository

import (
	"context"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
)

// AIRepository LLM completion provider
type AIRepository interface {
	// GenerateResponse returns the whole completion for prompt
	GenerateResponse(ctx context.Context, prompt entity.Prompt) (string, error)

	// StreamResponse calls onChunk for every piece of the completion as it arrives.
	// An error returned by onChunk stops the stream and is returned as is.
	StreamResponse(ctx context.Context, prompt entity.Prompt, onChunk func(chunk string) error) error
}
