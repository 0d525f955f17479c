package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caja-dev/caja/internal/ledger"
	"github.com/caja-dev/caja/internal/model"
)

func newExpenseCommand() *cobra.Command {
	var method string
	var note string

	cmd := &cobra.Command{
		Use:   "expense AMOUNT",
		Short: "Record an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}

			m, err := parseMethod(method)
			if err != nil {
				return err
			}

			svc := ledger.NewService(e.store)
			tx, err := svc.Record(model.TxExpense, ledger.TransactionInput{
				Amount: args[0],
				Method: m,
				Note:   note,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Expense %s: $%s (%s)\n", tx.ID, tx.Amount.StringFixed(2), tx.Note)
			return e.commit(fmt.Sprintf("expense: %s %s (%s)", tx.Amount.StringFixed(2), tx.Method, tx.Note))
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "cash", "payment method: cash or digital")
	cmd.Flags().StringVarP(&note, "note", "n", "", "supplier or expense detail")

	return cmd
}
