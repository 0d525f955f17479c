package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxType classifies a ledger transaction.
type TxType string

const (
	TxSale       TxType = "sale"
	TxExpense    TxType = "expense"
	TxCollection TxType = "collection" // payment against a customer's credit balance
)

// PayMethod is how money moved (or didn't, for credit sales).
type PayMethod string

const (
	MethodCash    PayMethod = "cash"
	MethodDigital PayMethod = "digital"
	MethodCredit  PayMethod = "credit" // fiado; only valid on sales
)

// Transaction is a single row in the append-only ledger. Rows are never
// mutated or deleted after creation; the one exception is Category, which
// follows category rename and delete cascades so historical reports stay
// classified.
type Transaction struct {
	ID         string          `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	Type       TxType          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Method     PayMethod       `json:"method"`
	Category   string          `json:"category,omitempty"` // sales only
	Note       string          `json:"note,omitempty"`     // expense detail
	CustomerID string          `json:"customer_id,omitempty"`
	ProductID  string          `json:"product_id,omitempty"`
	Quantity   int64           `json:"quantity,omitempty"`
}

// BalanceDelta returns the signed change this transaction applies to its
// customer's credit balance, or zero when no customer is involved.
func (t Transaction) BalanceDelta() decimal.Decimal {
	switch {
	case t.Type == TxSale && t.Method == MethodCredit:
		return t.Amount
	case t.Type == TxCollection:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}
