package repository

import (
	"context"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
)

// ExcelParser reads a product catalog from an .xlsx workbook
type ExcelParser interface {
	// ParseProducts reads the file at filePath
	ParseProducts(ctx context.Context, filePath string) ([]entity.Product, error)
}
