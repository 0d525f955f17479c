package model

import "github.com/shopspring/decimal"

// Customer is a store-credit (fiado) account. Balance is a cached
// projection of the transaction log: +amount for each credit sale to this
// customer, -amount for each collection from them. It is updated in the
// same step that appends the transaction and must never drift from that
// sum.
type Customer struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}
