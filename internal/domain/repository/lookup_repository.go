package repository

import (
	"context"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
)

// LookupRepository is the gateway's view of the lookup service.
// Transport failures are reported inside the result, never as an error.
type LookupRepository interface {
	Query(ctx context.Context, term string, category entity.Category) entity.LookupResult
}
