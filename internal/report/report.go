// Package report selects transactions within a date range and produces
// the projections dashboards and exports are built from. Build is a pure
// function; the store is never touched.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caja-dev/caja/internal/model"
)

// CategoryTotal is one slice of the sales-by-category breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Report is the projection for one date range.
type Report struct {
	Start time.Time
	End   time.Time // extended to end of day

	// SalesByMethod covers strict sales only; fiado collections are
	// reported separately in CollectionsTotal.
	SalesByMethod    map[model.PayMethod]decimal.Decimal
	CollectionsTotal decimal.Decimal

	// Categories is the sale breakdown, descending by total; ties keep
	// first-encountered order.
	Categories []CategoryTotal

	// Transactions holds the rows in range, in log order (newest first).
	Transactions []model.Transaction
}

// Build filters txs to the inclusive range [start, end-of-day(end)] and
// aggregates them. Safe to call repeatedly with different ranges.
func Build(txs []model.Transaction, start, end time.Time) Report {
	r := Report{
		Start:            start,
		End:              endOfDay(end),
		CollectionsTotal: decimal.Zero,
		SalesByMethod: map[model.PayMethod]decimal.Decimal{
			model.MethodCash:    decimal.Zero,
			model.MethodDigital: decimal.Zero,
			model.MethodCredit:  decimal.Zero,
		},
	}

	byCategory := make(map[string]decimal.Decimal)
	var categoryOrder []string

	for _, tx := range txs {
		if tx.Timestamp.Before(r.Start) || tx.Timestamp.After(r.End) {
			continue
		}
		r.Transactions = append(r.Transactions, tx)

		switch tx.Type {
		case model.TxSale:
			r.SalesByMethod[tx.Method] = r.SalesByMethod[tx.Method].Add(tx.Amount)
			if _, seen := byCategory[tx.Category]; !seen {
				categoryOrder = append(categoryOrder, tx.Category)
			}
			byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
		case model.TxCollection:
			r.CollectionsTotal = r.CollectionsTotal.Add(tx.Amount)
		}
	}

	r.Categories = make([]CategoryTotal, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		r.Categories = append(r.Categories, CategoryTotal{Category: cat, Total: byCategory[cat]})
	}
	sort.SliceStable(r.Categories, func(i, j int) bool {
		return r.Categories[i].Total.GreaterThan(r.Categories[j].Total)
	})

	return r
}

// endOfDay extends t to 23:59:59.999 of its local calendar day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.Local)
}
