package model

import "github.com/shopspring/decimal"

// Product is a catalog item a sale can optionally reference. Stock is
// decremented at sale time and never goes negative.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int64           `json:"stock"`
	Category string          `json:"category"`
}
