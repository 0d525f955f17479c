package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caja-dev/caja/internal/ledger"
	"github.com/caja-dev/caja/internal/model"
)

func newCollectCommand() *cobra.Command {
	var method string
	var customer string

	cmd := &cobra.Command{
		Use:   "collect AMOUNT",
		Short: "Record a payment against a customer's fiado balance",
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
			c, err := resolveCustomer(e.store, customer)
			if err != nil {
				return err
			}

			svc := ledger.NewService(e.store)
			tx, err := svc.Record(model.TxCollection, ledger.TransactionInput{
				Amount:     args[0],
				Method:     m,
				CustomerID: c.ID,
			})
			if err != nil {
				return err
			}

			updated, _ := e.store.Customer(c.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Collected $%s from %s (balance now $%s)\n",
				tx.Amount.StringFixed(2), c.Name, updated.Balance.StringFixed(2))
			return e.commit(fmt.Sprintf("collect: %s from %s", tx.Amount.StringFixed(2), c.Name))
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "cash", "payment method: cash or digital")
	cmd.Flags().StringVar(&customer, "customer", "", "customer name or ID (required)")
	_ = cmd.MarkFlagRequired("customer")

	return cmd
}
