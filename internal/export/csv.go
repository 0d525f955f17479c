// Package export renders report projections as delimited text. This is
// pure presentation over the report and customer data; nothing here
// touches the store.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/caja-dev/caja/internal/model"
	"github.com/caja-dev/caja/internal/report"
)

// TransactionsHeader is the CSV header for a transaction report.
const TransactionsHeader = "date,type,detail,method,amount"

// BalancesHeader is the CSV header for a customer balance report.
const BalancesHeader = "customer,balance"

const timeFormat = "2006-01-02 15:04"

// WriteTransactions renders the report's transactions, one CSV row each.
// The detail column carries the category for sales, the customer name for
// collections and the note for expenses.
func WriteTransactions(w io.Writer, r report.Report, customers []model.Customer) error {
	names := make(map[string]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(TransactionsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, tx := range r.Transactions {
		if err := cw.Write(marshalTransaction(tx, names)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// WriteCustomerBalances renders the outstanding credit balance per
// customer.
func WriteCustomerBalances(w io.Writer, customers []model.Customer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(BalancesHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, c := range customers {
		row := []string{c.Name, c.Balance.StringFixed(2)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func marshalTransaction(tx model.Transaction, names map[string]string) []string {
	detail := ""
	switch tx.Type {
	case model.TxSale:
		detail = tx.Category
	case model.TxCollection:
		detail = names[tx.CustomerID]
	case model.TxExpense:
		detail = tx.Note
	}
	return []string{
		tx.Timestamp.Format(timeFormat),
		string(tx.Type),
		detail,
		string(tx.Method),
		tx.Amount.StringFixed(2),
	}
}
