package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caja-dev/caja/internal/auditlog"
	"github.com/caja-dev/caja/internal/export"
	"github.com/caja-dev/caja/internal/model"
)

func newCustomerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage fiado customers",
	}
	cmd.AddCommand(newCustomerAddCommand(), newCustomerListCommand(), newCustomerHistoryCommand())
	return cmd
}

func newCustomerAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}

			c, err := e.store.AddCustomer(args[0])
			if err != nil {
				return err
			}
			if err := auditlog.Record(e.dir, "customer_add", c.Name, c.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added customer %s (%s)\n", c.Name, c.ID)
			return e.commit("customer: add " + c.Name)
		},
	}
}

func newCustomerListCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers and their fiado balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			customers := e.store.Customers()

			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				if err := export.WriteCustomerBalances(f, customers); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d balances to %s\n", len(customers), out)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBALANCE\tID")
			for _, c := range customers {
				fmt.Fprintf(w, "%s\t$%s\t%s\n", c.Name, c.Balance.StringFixed(2), c.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write balances as CSV to this file")
	return cmd
}

func newCustomerHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history CUSTOMER",
		Short: "Show a customer's fiado movements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			c, err := resolveCustomer(e.store, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: balance $%s\n", c.Name, c.Balance.StringFixed(2))
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT")
			for _, tx := range e.store.Transactions() {
				if tx.CustomerID != c.ID {
					continue
				}
				sign := "+"
				if tx.Type == model.TxCollection {
					sign = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s$%s\n",
					tx.Timestamp.Format("2006-01-02 15:04"), tx.Type, sign, tx.Amount.StringFixed(2))
			}
			return w.Flush()
		},
	}
}
