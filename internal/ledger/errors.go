package ledger

import "errors"

// Validation and referential-integrity failures. Every mutating operation
// returns one of these (wrapped with context) instead of partially
// applying; infrastructure failures from the storage layer pass through
// unchanged.
var (
	ErrInvalidAmount     = errors.New("amount must be a positive number")
	ErrMissingCustomer   = errors.New("customer required and not found")
	ErrEmptyName         = errors.New("name must not be blank")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)
