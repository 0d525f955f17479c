package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caja-dev/caja/internal/id"
	"github.com/caja-dev/caja/internal/model"
)

// Service validates and records ledger transactions against a Store. It
// holds no ledger state of its own.
type Service struct {
	store *Store
	ids   id.Generator
	now   func() time.Time
}

// NewService creates a Service recording into store. The ID generator is
// seeded from the newest logged transaction so IDs stay unique across
// process restarts within the same second.
func NewService(store *Store) *Service {
	s := &Service{store: store, now: time.Now}
	if txs := store.transactions; len(txs) > 0 {
		if ts, seq, err := id.Parse(txs[0].ID); err == nil {
			s.ids.Seed(ts, seq)
		}
	}
	return s
}

// TransactionInput is the raw, unvalidated input for one transaction.
// Amount arrives as the string the user typed; both "12.50" and "12,50"
// are accepted.
type TransactionInput struct {
	Amount     string
	Method     model.PayMethod
	Category   string // sales only
	Note       string // expense detail
	CustomerID string // required for credit sales and collections
	ProductID  string // optional catalog reference, sales only
	Quantity   int64  // units sold when ProductID is set; defaults to 1
}

// Record validates input, appends the resulting transaction to the log
// and applies its side effects (customer balance, product stock) as one
// atomic step. Validation happens before any mutation, so a failure
// leaves the store exactly as it was.
func (s *Service) Record(txType model.TxType, in TransactionInput) (model.Transaction, error) {
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return model.Transaction{}, err
	}

	switch in.Method {
	case model.MethodCash, model.MethodDigital, model.MethodCredit:
	default:
		return model.Transaction{}, fmt.Errorf("recording %s: unknown payment method %q", txType, in.Method)
	}
	if in.Method == model.MethodCredit && txType != model.TxSale {
		return model.Transaction{}, fmt.Errorf("method %q is only valid for sales", in.Method)
	}

	creditSale := txType == model.TxSale && in.Method == model.MethodCredit
	if creditSale || txType == model.TxCollection {
		if in.CustomerID == "" {
			return model.Transaction{}, fmt.Errorf("recording %s: %w", txType, ErrMissingCustomer)
		}
		if _, ok := s.store.Customer(in.CustomerID); !ok {
			return model.Transaction{}, fmt.Errorf("recording %s for customer %q: %w", txType, in.CustomerID, ErrMissingCustomer)
		}
	}

	tx := model.Transaction{
		Timestamp: s.now(),
		Type:      txType,
		Amount:    amount,
		Method:    in.Method,
	}
	tx.ID = s.ids.Next(tx.Timestamp)

	switch txType {
	case model.TxSale:
		tx.Category = in.Category
		if strings.TrimSpace(tx.Category) == "" {
			tx.Category = s.store.FallbackCategory()
		}
	case model.TxExpense:
		tx.Note = in.Note
	}
	if creditSale || txType == model.TxCollection {
		tx.CustomerID = in.CustomerID
	}

	if txType == model.TxSale && in.ProductID != "" {
		qty := in.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return model.Transaction{}, fmt.Errorf("recording sale: quantity %d: %w", qty, ErrInvalidAmount)
		}
		p, ok := s.store.Product(in.ProductID)
		if !ok {
			return model.Transaction{}, fmt.Errorf("recording sale of product %q: %w", in.ProductID, ErrNotFound)
		}
		if p.Stock < qty {
			return model.Transaction{}, fmt.Errorf("recording sale of %q (stock %d, want %d): %w", p.Name, p.Stock, qty, ErrInsufficientStock)
		}
		tx.ProductID = in.ProductID
		tx.Quantity = qty
	}

	if err := s.store.commitTransaction(tx); err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

// ParseAmount parses a user-entered monetary amount. Dot and comma are
// both accepted as the decimal separator. Amounts must be positive with
// at most two decimal places.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("parsing amount: %w", ErrInvalidAmount)
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", raw, ErrInvalidAmount)
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("amount %q: %w", raw, ErrInvalidAmount)
	}

	// Money is tracked to the cent; reject sub-cent precision.
	cents := amount.Mul(decimal.NewFromInt(100))
	if !cents.Equal(cents.Floor()) {
		return decimal.Decimal{}, fmt.Errorf("amount %q has more than 2 decimal places: %w", raw, ErrInvalidAmount)
	}
	return amount, nil
}
