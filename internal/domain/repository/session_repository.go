package repository

import (
	"context"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
)

// SessionRepository remembers the last successful lookup of each chat session
type SessionRepository interface {
	// SaveLookup records result as the latest lookup of sessionID
	SaveLookup(ctx context.Context, sessionID string, result entity.LookupResult) error

	// LastLookup returns the latest lookup of sessionID, false if there is none
	LastLookup(ctx context.Context, sessionID string) (entity.LookupResult, bool, error)
}
