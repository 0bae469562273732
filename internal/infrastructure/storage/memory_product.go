package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
	"github.com/yourusername/shop-chatbot/internal/domain/repository"
)

type memoryProductRepository struct {
	mu       sync.RWMutex
	products []entity.Product // insertion order is the search order
	byCode   map[string]int   // lowercased code -> index in products
}

// NewMemoryProductRepository in-memory product repository
func NewMemoryProductRepository() repository.ProductRepository {
	return &memoryProductRepository{
		byCode: make(map[string]int),
	}
}

// SaveMany appends products; a product whose code already exists replaces it in place
func (m *memoryProductRepository) SaveMany(ctx context.Context, products []entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range products {
		key := strings.ToLower(strings.TrimSpace(p.Code))
		if key == "" {
			return fmt.Errorf("product %q has no code", p.Name)
		}
		if idx, ok := m.byCode[key]; ok {
			m.products[idx] = p
			continue
		}
		m.byCode[key] = len(m.products)
		m.products = append(m.products, p)
	}
	return nil
}

// FindFirst first product whose name or code contains term
func (m *memoryProductRepository) FindFirst(ctx context.Context, term string) (*entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, repository.ErrProductNotFound
	}

	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Code), term) {
			found := p
			return &found, nil
		}
	}

	return nil, repository.ErrProductNotFound
}

// GetAll every product in insertion order
func (m *memoryProductRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]entity.Product, len(m.products))
	copy(products, m.products)
	return products, nil
}

func (m *memoryProductRepository) Close() error {
	return nil
}
