package entity

import "github.com/shopspring/decimal"

// Product is one record of the lookup store
type Product struct {
	Code        string // unique product code, e.g. PROD001
	Name        string
	Price       decimal.Decimal
	Stock       int
	Description string
}

// ProductCatalog a batch of products with the place they came from
type ProductCatalog struct {
	Products []Product
	Source   string // xlsx file name or "builtin"
}
