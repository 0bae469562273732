package parser

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
	"github.com/yourusername/shop-chatbot/internal/domain/repository"
)

type excelParser struct {
	logger *slog.Logger
}

// NewExcelParser catalog parser for .xlsx files
func NewExcelParser(logger *slog.Logger) repository.ExcelParser {
	return &excelParser{logger: logger.With(slog.String("component", "excel_parser"))}
}

// ParseProducts reads the workbook at filePath
func (e *excelParser) ParseProducts(ctx context.Context, filePath string) ([]entity.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return e.parseExcelFile(ctx, f, filePath)
}

// parseExcelFile reads the first sheet. The first row must be a header naming
// at least the code, name and price columns.
func (e *excelParser) parseExcelFile(ctx context.Context, f *excelize.File, source string) ([]entity.Product, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("excel file has no data rows")
	}

	cols := mapColumns(rows[0])
	for _, required := range []string{"code", "name", "price"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("excel header has no %s column", required)
		}
	}
	e.logger.DebugContext(ctx, "excel columns mapped", slog.String("source", source), slog.Any("columns", cols))

	var products []entity.Product
	for i, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		code := cell(row, cols, "code")
		name := cell(row, cols, "name")
		if code == "" || name == "" {
			e.logger.WarnContext(ctx, "row skipped: missing code or name", slog.Int("row", i+2))
			continue
		}

		price, err := parsePrice(cell(row, cols, "price"))
		if err != nil {
			e.logger.WarnContext(ctx, "row skipped: invalid price", slog.Int("row", i+2), slog.Any("error", err))
			continue
		}

		stock := 0
		if raw := cell(row, cols, "stock"); raw != "" {
			stock, err = strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
			if err != nil {
				e.logger.WarnContext(ctx, "row skipped: invalid stock", slog.Int("row", i+2), slog.String("stock", raw))
				continue
			}
		}

		products = append(products, entity.Product{
			Code:        code,
			Name:        name,
			Price:       price,
			Stock:       stock,
			Description: cell(row, cols, "description"),
		})
	}

	e.logger.InfoContext(ctx, "catalog parsed", slog.String("source", source), slog.Int("products", len(products)))
	return products, nil
}

// mapColumns maps header cells to product fields. Indonesian and English
// header names are recognised.
func mapColumns(header []string) map[string]int {
	columnMap := make(map[string]int)

	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		var field string

		// code is checked before name so "product_code" is not taken as a name
		switch {
		case contains(name, "code", "kode", "sku"):
			field = "code"
		case contains(name, "price", "harga"):
			field = "price"
		case contains(name, "stock", "stok", "qty", "jumlah"):
			field = "stock"
		case contains(name, "description", "deskripsi", "keterangan", "detail"):
			field = "description"
		case contains(name, "name", "nama", "produk", "product"):
			field = "name"
		default:
			continue
		}

		if _, taken := columnMap[field]; !taken {
			columnMap[field] = i
		}
	}

	return columnMap
}

func cell(row []string, cols map[string]int, field string) string {
	idx, ok := cols[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func contains(str string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(str, keyword) {
			return true
		}
	}
	return false
}

// parsePrice accepts plain numbers with optional thousands separators and a
// currency marker ("$1,200.00", "Rp 1200", "1200 USD").
func parsePrice(raw string) (decimal.Decimal, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty price")
	}

	s = strings.NewReplacer(",", "", " ", "", "$", "", "€", "", "rp", "", "usd", "", "idr", "").Replace(s)

	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price format: %s", raw)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price: %s", raw)
	}
	return price, nil
}
