package ledger

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caja-dev/caja/internal/model"
	"github.com/caja-dev/caja/internal/storage"
)

// Storage keys, one independently persisted collection each.
const (
	keyTransactions = "transactions"
	keyCustomers    = "customers"
	keyCategories   = "categories"
	keyProducts     = "products"
)

// schemaVersion tags every persisted blob for future migration.
const schemaVersion = 1

// Store owns the three ledger collections plus the product catalog and is
// the single source of truth. Every successful mutation is persisted
// before the call returns (write-through); a failed validation leaves
// both memory and disk untouched.
//
// The store is not safe for concurrent use. There is one logical writer
// (the shopkeeper at the till); a second process on the same data dir can
// lose an update, which is an accepted constraint of the design.
type Store struct {
	kv storage.KV

	transactions []model.Transaction // newest first
	customers    []model.Customer
	categories   []string
	products     []model.Product

	fallbackCategory string
}

// Open loads all collections from kv. Absent keys start empty; a missing
// categories key is seeded with defaultCategories. fallbackCategory is
// where sales of a deleted category are reassigned.
func Open(kv storage.KV, defaultCategories []string, fallbackCategory string) (*Store, error) {
	s := &Store{kv: kv, fallbackCategory: fallbackCategory}

	if err := s.load(keyTransactions, &s.transactions); err != nil {
		return nil, err
	}
	if err := s.load(keyCustomers, &s.customers); err != nil {
		return nil, err
	}
	if err := s.load(keyProducts, &s.products); err != nil {
		return nil, err
	}

	found, err := s.loadOptional(keyCategories, &s.categories)
	if err != nil {
		return nil, err
	}
	if !found {
		s.categories = append([]string(nil), defaultCategories...)
		if err := s.persist(keyCategories, s.categories); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// FallbackCategory returns the category deleted-category sales are
// reassigned to.
func (s *Store) FallbackCategory() string {
	return s.fallbackCategory
}

// Transactions returns a copy of the log, newest first.
func (s *Store) Transactions() []model.Transaction {
	return append([]model.Transaction(nil), s.transactions...)
}

// Customers returns a copy of the customer list.
func (s *Store) Customers() []model.Customer {
	return append([]model.Customer(nil), s.customers...)
}

// Categories returns a copy of the ordered category list.
func (s *Store) Categories() []string {
	return append([]string(nil), s.categories...)
}

// Products returns a copy of the product catalog.
func (s *Store) Products() []model.Product {
	return append([]model.Product(nil), s.products...)
}

// Customer looks a customer up by ID.
func (s *Store) Customer(custID string) (model.Customer, bool) {
	for _, c := range s.customers {
		if c.ID == custID {
			return c, true
		}
	}
	return model.Customer{}, false
}

// Product looks a product up by ID.
func (s *Store) Product(prodID string) (model.Product, bool) {
	for _, p := range s.products {
		if p.ID == prodID {
			return p, true
		}
	}
	return model.Product{}, false
}

// HasCategory reports whether name is in the category list (exact,
// case-sensitive match).
func (s *Store) HasCategory(name string) bool {
	for _, c := range s.categories {
		if c == name {
			return true
		}
	}
	return false
}

// AddCustomer creates a customer with a zero balance. Names are display
// labels, not a uniqueness key; only the ID is unique.
func (s *Store) AddCustomer(name string) (model.Customer, error) {
	if strings.TrimSpace(name) == "" {
		return model.Customer{}, fmt.Errorf("adding customer: %w", ErrEmptyName)
	}

	c := model.Customer{ID: uuid.NewString(), Name: name, Balance: decimal.Zero}
	s.customers = append(s.customers, c)
	if err := s.persist(keyCustomers, s.customers); err != nil {
		s.customers = s.customers[:len(s.customers)-1]
		return model.Customer{}, err
	}
	return c, nil
}

// AddCategory appends a category name to the list.
func (s *Store) AddCategory(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("adding category: %w", ErrEmptyName)
	}
	if s.HasCategory(name) {
		return fmt.Errorf("adding category %q: %w", name, ErrDuplicateCategory)
	}

	s.categories = append(s.categories, name)
	if err := s.persist(keyCategories, s.categories); err != nil {
		s.categories = s.categories[:len(s.categories)-1]
		return err
	}
	return nil
}

// RenameCategory replaces old with new in the category list and rewrites
// every transaction labeled old so historical reports stay categorized.
func (s *Store) RenameCategory(oldName, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return fmt.Errorf("renaming category: %w", ErrEmptyName)
	}
	if !s.HasCategory(oldName) {
		return fmt.Errorf("renaming category %q: %w", oldName, ErrNotFound)
	}
	if s.HasCategory(newName) {
		return fmt.Errorf("renaming category to %q: %w", newName, ErrDuplicateCategory)
	}

	categories := s.Categories()
	for i, c := range categories {
		if c == oldName {
			categories[i] = newName
		}
	}
	transactions := s.Transactions()
	for i := range transactions {
		if transactions[i].Category == oldName {
			transactions[i].Category = newName
		}
	}

	// Rewritten rows first: a crash after this write leaves a stale
	// category list, not sales labeled with a removed name.
	if err := s.persist(keyTransactions, transactions); err != nil {
		return err
	}
	if err := s.persist(keyCategories, categories); err != nil {
		return err
	}
	s.categories = categories
	s.transactions = transactions
	return nil
}

// DeleteCategory removes name from the list and reassigns its sales to
// the fallback category, appending the fallback to the list if it is not
// already there. A transaction never points at a category that no longer
// exists.
func (s *Store) DeleteCategory(name string) error {
	if !s.HasCategory(name) {
		return fmt.Errorf("deleting category %q: %w", name, ErrNotFound)
	}

	fallback := s.fallbackCategory
	categories := make([]string, 0, len(s.categories))
	for _, c := range s.categories {
		if c != name {
			categories = append(categories, c)
		}
	}

	transactions := s.Transactions()
	reassigned := false
	for i := range transactions {
		if transactions[i].Category == name {
			transactions[i].Category = fallback
			reassigned = true
		}
	}
	// Create the fallback implicitly if needed. Deleting the fallback
	// itself keeps it alive as long as transactions reference it.
	if reassigned && !contains(categories, fallback) {
		categories = append(categories, fallback)
	}

	// Rows before the list, same as in RenameCategory.
	if reassigned {
		if err := s.persist(keyTransactions, transactions); err != nil {
			return err
		}
	}
	if err := s.persist(keyCategories, categories); err != nil {
		return err
	}
	s.categories = categories
	s.transactions = transactions
	return nil
}

// AddProduct creates a catalog item.
func (s *Store) AddProduct(name string, price decimal.Decimal, stock int64, category string) (model.Product, error) {
	if strings.TrimSpace(name) == "" {
		return model.Product{}, fmt.Errorf("adding product: %w", ErrEmptyName)
	}
	if price.IsNegative() || stock < 0 {
		return model.Product{}, fmt.Errorf("adding product %q: %w", name, ErrInvalidAmount)
	}

	p := model.Product{ID: uuid.NewString(), Name: name, Price: price, Stock: stock, Category: category}
	s.products = append(s.products, p)
	if err := s.persist(keyProducts, s.products); err != nil {
		s.products = s.products[:len(s.products)-1]
		return model.Product{}, err
	}
	return p, nil
}

// Restock increases a product's stock by qty.
func (s *Store) Restock(prodID string, qty int64) (model.Product, error) {
	if qty <= 0 {
		return model.Product{}, fmt.Errorf("restocking: %w", ErrInvalidAmount)
	}
	for i, p := range s.products {
		if p.ID != prodID {
			continue
		}
		products := s.Products()
		products[i].Stock += qty
		if err := s.persist(keyProducts, products); err != nil {
			return model.Product{}, err
		}
		s.products = products
		return products[i], nil
	}
	return model.Product{}, fmt.Errorf("restocking product %q: %w", prodID, ErrNotFound)
}

// commitTransaction appends tx to the log and applies its side effects
// (customer balance delta, product stock decrement) as one step, then
// persists the affected collections. The caller has already validated
// the input, so no failure path here leaves partial in-memory state.
func (s *Store) commitTransaction(tx model.Transaction) error {
	transactions := append([]model.Transaction{tx}, s.transactions...)

	customers := s.customers
	delta := tx.BalanceDelta()
	customersChanged := tx.CustomerID != "" && !delta.IsZero()
	if customersChanged {
		customers = s.Customers()
		for i := range customers {
			if customers[i].ID == tx.CustomerID {
				customers[i].Balance = customers[i].Balance.Add(delta)
			}
		}
	}

	products := s.products
	productsChanged := tx.ProductID != "" && tx.Type == model.TxSale
	if productsChanged {
		products = s.Products()
		for i := range products {
			if products[i].ID == tx.ProductID {
				products[i].Stock -= tx.Quantity
			}
		}
	}

	// Log first, projections after: the log is authoritative and the
	// balance is recomputable from it after a crash between writes.
	if err := s.persist(keyTransactions, transactions); err != nil {
		return err
	}
	if customersChanged {
		if err := s.persist(keyCustomers, customers); err != nil {
			return err
		}
	}
	if productsChanged {
		if err := s.persist(keyProducts, products); err != nil {
			return err
		}
	}

	s.transactions = transactions
	s.customers = customers
	s.products = products
	return nil
}

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

func (s *Store) load(key string, into any) error {
	_, err := s.loadOptional(key, into)
	return err
}

func (s *Store) loadOptional(key string, into any) (bool, error) {
	raw, ok, err := s.kv.Load(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	if env.Version > schemaVersion {
		return false, fmt.Errorf("decoding %s: schema version %d newer than supported %d", key, env.Version, schemaVersion)
	}
	if err := json.Unmarshal(env.Data, into); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) persist(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	raw, err := json.Marshal(envelope{Version: schemaVersion, Data: data})
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.kv.Save(key, raw); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
