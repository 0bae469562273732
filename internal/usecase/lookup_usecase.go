package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/shop-chatbot/internal/apperr"
	"github.com/yourusername/shop-chatbot/internal/domain/entity"
	"github.com/yourusername/shop-chatbot/internal/domain/repository"
)

// LookupUseCase answers product questions from the product store
type LookupUseCase interface {
	// Query finds the first product matching term and formats the requested fact.
	// A missing product is a NotFound result, not an error.
	Query(ctx context.Context, term string, category entity.Category) (entity.LookupResult, error)

	// Seed fills the store from the workbook at catalogPath, or from the
	// built-in catalog when catalogPath is empty
	Seed(ctx context.Context, catalogPath string) (entity.ProductCatalog, error)
}

type lookupUseCase struct {
	productRepo repository.ProductRepository
	parser      repository.ExcelParser
	currency    string
	logger      *slog.Logger
}

// NewLookupUseCase creates a LookupUseCase
func NewLookupUseCase(
	productRepo repository.ProductRepository,
	parser repository.ExcelParser,
	currency string,
	logger *slog.Logger,
) LookupUseCase {
	return &lookupUseCase{
		productRepo: productRepo,
		parser:      parser,
		currency:    currency,
		logger:      logger,
	}
}

func (u *lookupUseCase) Query(ctx context.Context, term string, category entity.Category) (entity.LookupResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return entity.LookupResult{}, apperr.ErrEmptyQuery
	}
	if !category.Lookupable() {
		return entity.LookupResult{}, apperr.ErrInvalidCategory
	}

	product, err := u.productRepo.FindFirst(ctx, term)
	if errors.Is(err, repository.ErrProductNotFound) {
		u.logger.DebugContext(ctx, "no product matched", slog.String("term", term))
		return entity.NotFound(), nil
	}
	if err != nil {
		return entity.LookupResult{}, apperr.ErrStore.WrapParent(err).WithMsg("find product %q", term)
	}

	return entity.Found(u.format(*product, category)), nil
}

func (u *lookupUseCase) format(p entity.Product, category entity.Category) string {
	switch category {
	case entity.CategoryPrice:
		return fmt.Sprintf("Price of %s is %s%s", p.Name, u.currency, p.Price.StringFixed(2))
	case entity.CategoryStock:
		return fmt.Sprintf("Stock of %s currently available: %d units", p.Name, p.Stock)
	default:
		return fmt.Sprintf("Details of %s: %s", p.Name, p.Description)
	}
}

func (u *lookupUseCase) Seed(ctx context.Context, catalogPath string) (entity.ProductCatalog, error) {
	catalog := DefaultCatalog()
	if catalogPath != "" {
		products, err := u.parser.ParseProducts(ctx, catalogPath)
		if err != nil {
			return entity.ProductCatalog{}, fmt.Errorf("parse catalog: %w", err)
		}
		if len(products) == 0 {
			return entity.ProductCatalog{}, fmt.Errorf("catalog %s has no products", catalogPath)
		}
		catalog = entity.ProductCatalog{Products: products, Source: catalogPath}
	}

	if err := u.productRepo.SaveMany(ctx, catalog.Products); err != nil {
		return entity.ProductCatalog{}, apperr.ErrStore.WrapParent(err).WithMsg("save catalog")
	}

	// rows sharing a code collapse into one, so report what the store holds
	stored, err := u.productRepo.GetAll(ctx)
	if err != nil {
		return entity.ProductCatalog{}, apperr.ErrStore.WrapParent(err).WithMsg("list catalog")
	}
	catalog.Products = stored

	u.logger.InfoContext(ctx, "product store seeded",
		slog.String("source", catalog.Source),
		slog.Int("products", len(catalog.Products)),
	)
	for _, p := range catalog.Products {
		u.logger.InfoContext(ctx, "product",
			slog.String("code", p.Code),
			slog.String("name", p.Name),
			slog.String("price", u.currency+p.Price.StringFixed(2)),
			slog.Int("stock", p.Stock),
		)
	}

	return catalog, nil
}

// DefaultCatalog is the sample catalog used when no workbook is configured.
func DefaultCatalog() entity.ProductCatalog {
	return entity.ProductCatalog{
		Source: "builtin",
		Products: []entity.Product{
			{
				Code:        "PROD001",
				Name:        "Produk A",
				Price:       decimal.RequireFromString("1200.00"),
				Stock:       50,
				Description: "Produk A adalah barang elektronik berkualitas tinggi.",
			},
			{
				Code:        "LAPTOPX",
				Name:        "Laptop Gaming X",
				Price:       decimal.RequireFromString("15000.00"),
				Stock:       15,
				Description: "Laptop Gaming X memiliki RAM 16GB, SSD 512GB, dan RTX 3060.",
			},
			{
				Code:        "SMARTZ",
				Name:        "Smartphone Z",
				Price:       decimal.RequireFromString("800.00"),
				Stock:       120,
				Description: "Smartphone Z dilengkapi kamera 108MP dan baterai tahan lama.",
			},
			{
				Code:        "HPWPRO",
				Name:        "Headphone Wireless Pro",
				Price:       decimal.RequireFromString("250.00"),
				Stock:       75,
				Description: "Headphone Wireless Pro menawarkan kualitas suara superior dan noise cancellation.",
			},
		},
	}
}
