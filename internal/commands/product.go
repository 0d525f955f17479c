package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caja-dev/caja/internal/auditlog"
	"github.com/caja-dev/caja/internal/ledger"
)

func newProductCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the product catalog",
	}
	cmd.AddCommand(newProductAddCommand(), newProductListCommand(), newProductRestockCommand())
	return cmd
}

func newProductAddCommand() *cobra.Command {
	var price string
	var stock int64
	var category string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}

			priceDec, err := ledger.ParseAmount(price)
			if err != nil {
				return err
			}
			if category == "" {
				category = e.store.FallbackCategory()
			}

			p, err := e.store.AddProduct(args[0], priceDec, stock, category)
			if err != nil {
				return err
			}
			if err := auditlog.Record(e.dir, "product_add", p.Name, p.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added product %s at $%s, stock %d (%s)\n",
				p.Name, p.Price.StringFixed(2), p.Stock, p.ID)
			return e.commit("product: add " + p.Name)
		},
	}

	cmd.Flags().StringVarP(&price, "price", "p", "", "unit price (required)")
	_ = cmd.MarkFlagRequired("price")
	cmd.Flags().Int64VarP(&stock, "stock", "s", 0, "initial stock")
	cmd.Flags().StringVarP(&category, "category", "c", "", "sale category for this product")

	return cmd
}

func newProductListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products and stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPRICE\tSTOCK\tCATEGORY\tID")
			for _, p := range e.store.Products() {
				fmt.Fprintf(w, "%s\t$%s\t%d\t%s\t%s\n",
					p.Name, p.Price.StringFixed(2), p.Stock, p.Category, p.ID)
			}
			return w.Flush()
		},
	}
}

func newProductRestockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restock ID QTY",
		Short: "Add stock to a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}

			var qty int64
			if _, err := fmt.Sscanf(args[1], "%d", &qty); err != nil {
				return fmt.Errorf("parsing quantity %q: %w", args[1], err)
			}

			p, err := e.store.Restock(args[0], qty)
			if err != nil {
				return err
			}
			if err := auditlog.Record(e.dir, "product_restock", fmt.Sprintf("%s +%d", p.Name, qty), p.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Restocked %s: now %d units\n", p.Name, p.Stock)
			return e.commit(fmt.Sprintf("product: restock %s +%d", p.Name, qty))
		},
	}
}
