package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/caja-dev/caja/internal/export"
	"github.com/caja-dev/caja/internal/model"
	"github.com/caja-dev/caja/internal/report"
)

const dateFormat = "2006-01-02"

func newReportCommand() *cobra.Command {
	var from, to, out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a date range and optionally export it as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}

			now := time.Now()
			start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
			end := now
			if from != "" {
				if start, err = time.ParseInLocation(dateFormat, from, time.Local); err != nil {
					return fmt.Errorf("parsing --from %q: %w", from, err)
				}
			}
			if to != "" {
				if end, err = time.ParseInLocation(dateFormat, to, time.Local); err != nil {
					return fmt.Errorf("parsing --to %q: %w", to, err)
				}
			}

			r := report.Build(e.store.Transactions(), start, end)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %s to %s\n\n", e.cfg.Business.Name,
				start.Format(dateFormat), end.Format(dateFormat))
			fmt.Fprintf(w, "Sales (cash):    $%s\n", r.SalesByMethod[model.MethodCash].StringFixed(2))
			fmt.Fprintf(w, "Sales (digital): $%s\n", r.SalesByMethod[model.MethodDigital].StringFixed(2))
			fmt.Fprintf(w, "Sales (fiado):   $%s\n", r.SalesByMethod[model.MethodCredit].StringFixed(2))
			fmt.Fprintf(w, "Collections:     $%s\n", r.CollectionsTotal.StringFixed(2))

			if len(r.Categories) > 0 {
				fmt.Fprintln(w, "\nSales by category:")
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				for _, ct := range r.Categories {
					fmt.Fprintf(tw, "  %s\t$%s\n", ct.Category, ct.Total.StringFixed(2))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				if err := export.WriteTransactions(f, r, e.store.Customers()); err != nil {
					return err
				}
				fmt.Fprintf(w, "\nWrote %d transactions to %s\n", len(r.Transactions), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "range start YYYY-MM-DD (default: first of this month)")
	cmd.Flags().StringVar(&to, "to", "", "range end YYYY-MM-DD, inclusive (default: today)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the transactions as CSV to this file")

	return cmd
}
