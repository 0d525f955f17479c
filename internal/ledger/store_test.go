package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caja-dev/caja/internal/model"
	"github.com/caja-dev/caja/internal/storage"
)

func TestOpen_SeedsDefaultCategories(t *testing.T) {
	kv := storage.NewMemoryKV()
	store, err := Open(kv, testCategories, "Otros")
	require.NoError(t, err)
	assert.Equal(t, testCategories, store.Categories())

	// The seed is persisted, not just in memory.
	reopened, err := Open(kv, nil, "Otros")
	require.NoError(t, err)
	assert.Equal(t, testCategories, reopened.Categories())
}

func TestAddCustomer(t *testing.T) {
	store := newTestStore(t)

	c, err := store.AddCustomer("Ana")
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Ana", c.Name)
	assert.True(t, c.Balance.IsZero())

	// Names are not a uniqueness key.
	c2, err := store.AddCustomer("Ana")
	require.NoError(t, err)
	assert.NotEqual(t, c.ID, c2.ID)
	assert.Len(t, store.Customers(), 2)
}

func TestAddCustomer_EmptyName(t *testing.T) {
	store := newTestStore(t)
	for _, name := range []string{"", "   "} {
		_, err := store.AddCustomer(name)
		require.ErrorIs(t, err, ErrEmptyName, "name: %q", name)
	}
	assert.Empty(t, store.Customers())
}

func TestAddCategory(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.AddCategory("Limpieza"))
	assert.Equal(t, append(append([]string(nil), testCategories...), "Limpieza"), store.Categories())

	err := store.AddCategory("Limpieza")
	require.ErrorIs(t, err, ErrDuplicateCategory)

	// Case-sensitive exact match: a different casing is a new category.
	require.NoError(t, store.AddCategory("limpieza"))
}

func TestAddCategory_EmptyName(t *testing.T) {
	store := newTestStore(t)
	err := store.AddCategory("  ")
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestRenameCategory_Cascades(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store)

	for i := 0; i < 3; i++ {
		_, err := svc.Record(model.TxSale, TransactionInput{Amount: "10", Method: model.MethodCash, Category: "Pan"})
		require.NoError(t, err)
	}
	_, err := svc.Record(model.TxSale, TransactionInput{Amount: "5", Method: model.MethodCash, Category: "Kiosco"})
	require.NoError(t, err)

	require.NoError(t, store.RenameCategory("Pan", "Bakery"))

	assert.False(t, store.HasCategory("Pan"))
	assert.True(t, store.HasCategory("Bakery"))

	var pan, bakery int
	for _, tx := range store.Transactions() {
		switch tx.Category {
		case "Pan":
			pan++
		case "Bakery":
			bakery++
		}
	}
	assert.Zero(t, pan, "no transaction may keep the old name")
	assert.Equal(t, 3, bakery)
}

func TestRenameCategory_Errors(t *testing.T) {
	store := newTestStore(t)

	err := store.RenameCategory("Nope", "Algo")
	require.ErrorIs(t, err, ErrNotFound)

	err = store.RenameCategory("Pan", "Kiosco")
	require.ErrorIs(t, err, ErrDuplicateCategory)

	err = store.RenameCategory("Pan", " ")
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestDeleteCategory_Reassigns(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store)

	for i := 0; i < 3; i++ {
		_, err := svc.Record(model.TxSale, TransactionInput{Amount: "10", Method: model.MethodCash, Category: "Kiosco"})
		require.NoError(t, err)
	}

	require.NoError(t, store.DeleteCategory("Kiosco"))

	assert.False(t, store.HasCategory("Kiosco"))
	var reassigned int
	for _, tx := range store.Transactions() {
		require.NotEqual(t, "Kiosco", tx.Category)
		if tx.Category == "Otros" {
			reassigned++
		}
	}
	assert.Equal(t, 3, reassigned)
}

func TestDeleteCategory_CreatesFallbackImplicitly(t *testing.T) {
	kv := storage.NewMemoryKV()
	store, err := Open(kv, []string{"Pan"}, "Otros")
	require.NoError(t, err)
	svc := NewService(store)

	_, err = svc.Record(model.TxSale, TransactionInput{Amount: "10", Method: model.MethodCash, Category: "Pan"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteCategory("Pan"))
	assert.True(t, store.HasCategory("Otros"), "fallback must be created when transactions need it")
}

// failingKV fails Save for one key, standing in for a crash between the
// writes of a multi-key operation.
type failingKV struct {
	*storage.MemoryKV
	failKey string
}

func (f *failingKV) Save(key string, data []byte) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.MemoryKV.Save(key, data)
}

func TestDeleteCategory_InterruptedWriteKeepsReferencesValid(t *testing.T) {
	kv := &failingKV{MemoryKV: storage.NewMemoryKV()}
	store, err := Open(kv, testCategories, "Otros")
	require.NoError(t, err)
	svc := NewService(store)

	for i := 0; i < 2; i++ {
		_, err := svc.Record(model.TxSale, TransactionInput{Amount: "10", Method: model.MethodCash, Category: "Kiosco"})
		require.NoError(t, err)
	}

	// The rows are rewritten before the list, so losing the list write
	// must not leave a persisted sale labeled with an unlisted name.
	kv.failKey = keyCategories
	require.Error(t, store.DeleteCategory("Kiosco"))

	kv.failKey = ""
	reopened, err := Open(kv, nil, "Otros")
	require.NoError(t, err)
	for _, tx := range reopened.Transactions() {
		assert.True(t, reopened.HasCategory(tx.Category), "persisted sale references unlisted category %q", tx.Category)
	}
}

func TestDeleteCategory_NotFound(t *testing.T) {
	store := newTestStore(t)
	err := store.DeleteCategory("Nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWriteThroughPersistence(t *testing.T) {
	kv := storage.NewMemoryKV()
	store, err := Open(kv, testCategories, "Otros")
	require.NoError(t, err)
	svc := NewService(store)

	ana, err := store.AddCustomer("Ana")
	require.NoError(t, err)
	_, err = svc.Record(model.TxSale, TransactionInput{
		Amount:     "100",
		Method:     model.MethodCredit,
		Category:   "Pan",
		CustomerID: ana.ID,
	})
	require.NoError(t, err)
	_, err = store.AddProduct("Yerba", decimal.RequireFromString("4500"), 6, "Almacén")
	require.NoError(t, err)

	// A fresh store over the same KV sees everything: each mutation was
	// durably written before its call returned.
	reopened, err := Open(kv, nil, "Otros")
	require.NoError(t, err)

	require.Len(t, reopened.Transactions(), 1)
	tx := reopened.Transactions()[0]
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("100")))
	assert.Equal(t, "Pan", tx.Category)

	got, ok := reopened.Customer(ana.ID)
	require.True(t, ok)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("100")))

	require.Len(t, reopened.Products(), 1)
	assert.Equal(t, int64(6), reopened.Products()[0].Stock)
}

func TestAddProduct_Validation(t *testing.T) {
	store := newTestStore(t)

	_, err := store.AddProduct(" ", decimal.RequireFromString("10"), 1, "Pan")
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = store.AddProduct("Pan flauta", decimal.RequireFromString("-1"), 1, "Pan")
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = store.AddProduct("Pan flauta", decimal.RequireFromString("10"), -1, "Pan")
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestRestock(t *testing.T) {
	store := newTestStore(t)

	p, err := store.AddProduct("Yerba", decimal.RequireFromString("4500"), 2, "Almacén")
	require.NoError(t, err)

	got, err := store.Restock(p.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(12), got.Stock)

	_, err = store.Restock(p.ID, 0)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = store.Restock("no-such-product", 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAccessorsReturnCopies(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store)

	_, err := svc.Record(model.TxSale, TransactionInput{Amount: "10", Method: model.MethodCash, Category: "Pan"})
	require.NoError(t, err)

	txs := store.Transactions()
	txs[0].Category = "tampered"
	assert.Equal(t, "Pan", store.Transactions()[0].Category)

	cats := store.Categories()
	cats[0] = "tampered"
	assert.Equal(t, "Pan", store.Categories()[0])
}
