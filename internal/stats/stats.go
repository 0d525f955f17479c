// Package stats derives the dashboard snapshot from the transaction log
// and customer balances. Everything here is a pure function of its
// inputs; nothing is cached or mutated.
package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/caja-dev/caja/internal/model"
)

// Snapshot is the point-in-time dashboard view. The "today" figures are
// scoped to the local calendar day of the reference time; outstanding
// credit is a live total over all customers.
type Snapshot struct {
	CashInToday     decimal.Decimal
	DigitalInToday  decimal.Decimal
	CashOutToday    decimal.Decimal
	DigitalOutToday decimal.Decimal

	NetCashToday    decimal.Decimal
	NetDigitalToday decimal.Decimal

	// RealCashToday is the reconciled cash position for the day: all
	// inflows minus all outflows, credit excluded.
	RealCashToday decimal.Decimal

	OutstandingCredit decimal.Decimal
	TotalCapital      decimal.Decimal
}

// Compute builds a Snapshot for the calendar day containing ref.
func Compute(txs []model.Transaction, customers []model.Customer, ref time.Time) Snapshot {
	var s Snapshot
	s.CashInToday = decimal.Zero
	s.DigitalInToday = decimal.Zero
	s.CashOutToday = decimal.Zero
	s.DigitalOutToday = decimal.Zero
	s.OutstandingCredit = decimal.Zero

	for _, tx := range txs {
		if !sameDay(tx.Timestamp, ref) {
			continue
		}
		switch tx.Type {
		case model.TxSale, model.TxCollection:
			switch tx.Method {
			case model.MethodCash:
				s.CashInToday = s.CashInToday.Add(tx.Amount)
			case model.MethodDigital:
				s.DigitalInToday = s.DigitalInToday.Add(tx.Amount)
			}
		case model.TxExpense:
			switch tx.Method {
			case model.MethodCash:
				s.CashOutToday = s.CashOutToday.Add(tx.Amount)
			case model.MethodDigital:
				s.DigitalOutToday = s.DigitalOutToday.Add(tx.Amount)
			}
		}
	}

	for _, c := range customers {
		s.OutstandingCredit = s.OutstandingCredit.Add(c.Balance)
	}

	s.NetCashToday = s.CashInToday.Sub(s.CashOutToday)
	s.NetDigitalToday = s.DigitalInToday.Sub(s.DigitalOutToday)
	s.RealCashToday = s.NetCashToday.Add(s.NetDigitalToday)
	s.TotalCapital = s.RealCashToday.Add(s.OutstandingCredit)
	return s
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Local().Date()
	y2, m2, d2 := b.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
