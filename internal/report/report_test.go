package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caja-dev/caja/internal/model"
)

func sale(amount, category string, method model.PayMethod, at time.Time) model.Transaction {
	return model.Transaction{
		Timestamp: at,
		Type:      model.TxSale,
		Amount:    decimal.RequireFromString(amount),
		Method:    method,
		Category:  category,
	}
}

func day(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.Local)
}

func TestBuild_RangeIsInclusiveToEndOfDay(t *testing.T) {
	txs := []model.Transaction{
		sale("10", "Pan", model.MethodCash, day(2024, 1, 1, 23, 59)),
		sale("20", "Pan", model.MethodCash, day(2024, 1, 2, 0, 1)),
	}

	r := Build(txs, day(2024, 1, 1, 0, 0), day(2024, 1, 1, 0, 0))

	require.Len(t, r.Transactions, 1)
	assert.True(t, r.Transactions[0].Amount.Equal(decimal.RequireFromString("10")))
}

func TestBuild_SalesByMethod(t *testing.T) {
	at := day(2024, 2, 10, 12, 0)
	txs := []model.Transaction{
		sale("100", "Pan", model.MethodCash, at),
		sale("50", "Kiosco", model.MethodDigital, at),
		sale("30", "Pan", model.MethodCredit, at),
		{Timestamp: at, Type: model.TxCollection, Amount: decimal.RequireFromString("25"), Method: model.MethodCash},
		{Timestamp: at, Type: model.TxExpense, Amount: decimal.RequireFromString("99"), Method: model.MethodCash, Note: "flete"},
	}

	r := Build(txs, day(2024, 2, 10, 0, 0), day(2024, 2, 10, 0, 0))

	assert.True(t, r.SalesByMethod[model.MethodCash].Equal(decimal.RequireFromString("100")), "collections and expenses must not count as sales")
	assert.True(t, r.SalesByMethod[model.MethodDigital].Equal(decimal.RequireFromString("50")))
	assert.True(t, r.SalesByMethod[model.MethodCredit].Equal(decimal.RequireFromString("30")))
	assert.True(t, r.CollectionsTotal.Equal(decimal.RequireFromString("25")))
}

func TestBuild_CategoryBreakdownSortedDescending(t *testing.T) {
	at := day(2024, 2, 10, 12, 0)
	txs := []model.Transaction{
		sale("10", "Pan", model.MethodCash, at),
		sale("200", "Fiambres", model.MethodCash, at),
		sale("40", "Pan", model.MethodCash, at),
		sale("5", "Kiosco", model.MethodDigital, at),
	}

	r := Build(txs, day(2024, 2, 10, 0, 0), day(2024, 2, 10, 0, 0))

	require.Len(t, r.Categories, 3)
	assert.Equal(t, "Fiambres", r.Categories[0].Category)
	assert.Equal(t, "Pan", r.Categories[1].Category)
	assert.True(t, r.Categories[1].Total.Equal(decimal.RequireFromString("50")))
	assert.Equal(t, "Kiosco", r.Categories[2].Category)
}

func TestBuild_TiesKeepFirstEncounteredOrder(t *testing.T) {
	at := day(2024, 2, 10, 12, 0)
	txs := []model.Transaction{
		sale("10", "Golosinas", model.MethodCash, at),
		sale("10", "Bebidas", model.MethodCash, at),
	}

	r := Build(txs, day(2024, 2, 10, 0, 0), day(2024, 2, 10, 0, 0))

	require.Len(t, r.Categories, 2)
	assert.Equal(t, "Golosinas", r.Categories[0].Category)
	assert.Equal(t, "Bebidas", r.Categories[1].Category)
}

func TestBuild_EmptyRange(t *testing.T) {
	txs := []model.Transaction{
		sale("10", "Pan", model.MethodCash, day(2024, 5, 1, 12, 0)),
	}

	r := Build(txs, day(2024, 6, 1, 0, 0), day(2024, 6, 30, 0, 0))

	assert.Empty(t, r.Transactions)
	assert.Empty(t, r.Categories)
	assert.True(t, r.CollectionsTotal.IsZero())
	assert.True(t, r.SalesByMethod[model.MethodCash].IsZero())
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	txs := []model.Transaction{
		sale("10", "Pan", model.MethodCash, day(2024, 5, 1, 12, 0)),
	}

	_ = Build(txs, day(2024, 5, 1, 0, 0), day(2024, 5, 1, 0, 0))
	_ = Build(txs, day(2024, 4, 1, 0, 0), day(2024, 4, 30, 0, 0))

	assert.Equal(t, "Pan", txs[0].Category)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("10")))
}
