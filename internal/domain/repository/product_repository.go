package repository

import (
	"context"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
)

// ProductRepository product store of the lookup service
type ProductRepository interface {
	// SaveMany stores products, keeping their order
	SaveMany(ctx context.Context, products []entity.Product) error

	// FindFirst returns the first product (store order) whose name or code
	// contains term, case-insensitively. Returns ErrProductNotFound otherwise.
	FindFirst(ctx context.Context, term string) (*entity.Product, error)

	// GetAll returns every product in store order
	GetAll(ctx context.Context) ([]entity.Product, error)

	// Close releases the store
	Close() error
}
