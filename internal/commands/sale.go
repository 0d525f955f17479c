package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caja-dev/caja/internal/ledger"
	"github.com/caja-dev/caja/internal/model"
)

func newSaleCommand() *cobra.Command {
	var method string
	var category string
	var customer string
	var product string
	var qty int64

	cmd := &cobra.Command{
		Use:   "sale AMOUNT",
		Short: "Record a sale",
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

			in := ledger.TransactionInput{
				Amount:   args[0],
				Method:   m,
				Category: category,
				Quantity: qty,
			}
			if m == model.MethodCredit {
				if customer == "" {
					return fmt.Errorf("credit sale: %w", ledger.ErrMissingCustomer)
				}
				c, err := resolveCustomer(e.store, customer)
				if err != nil {
					return err
				}
				in.CustomerID = c.ID
			}
			if product != "" {
				in.ProductID = product
			}

			svc := ledger.NewService(e.store)
			tx, err := svc.Record(model.TxSale, in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sale %s: $%s (%s, %s)\n", tx.ID, tx.Amount.StringFixed(2), tx.Category, tx.Method)
			return e.commit(fmt.Sprintf("sale: %s %s (%s)", tx.Amount.StringFixed(2), tx.Method, tx.Category))
		},
	}

	cmd.Flags().StringVarP(&method, "method", "m", "cash", "payment method: cash, digital or credit")
	cmd.Flags().StringVarP(&category, "category", "c", "", "sale category (defaults to the fallback category)")
	cmd.Flags().StringVar(&customer, "customer", "", "customer name or ID (required for credit sales)")
	cmd.Flags().StringVar(&product, "product", "", "product ID to decrement stock for")
	cmd.Flags().Int64Var(&qty, "qty", 0, "units sold when --product is set (default 1)")

	return cmd
}
