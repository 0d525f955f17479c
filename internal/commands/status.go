package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/caja-dev/caja/internal/stats"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's cash position and outstanding fiado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}

			s := stats.Compute(e.store.Transactions(), e.store.Customers(), time.Now())

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s, %s\n\n", e.cfg.Business.Name, time.Now().Format("2006-01-02"))
			fmt.Fprintf(w, "Cash in today:      $%s\n", s.CashInToday.StringFixed(2))
			fmt.Fprintf(w, "Cash out today:     $%s\n", s.CashOutToday.StringFixed(2))
			fmt.Fprintf(w, "Digital in today:   $%s\n", s.DigitalInToday.StringFixed(2))
			fmt.Fprintf(w, "Digital out today:  $%s\n", s.DigitalOutToday.StringFixed(2))
			fmt.Fprintf(w, "Net cash today:     $%s\n", s.NetCashToday.StringFixed(2))
			fmt.Fprintf(w, "Net digital today:  $%s\n", s.NetDigitalToday.StringFixed(2))
			fmt.Fprintf(w, "Real cash today:    $%s\n", s.RealCashToday.StringFixed(2))
			fmt.Fprintf(w, "Fiado outstanding:  $%s\n", s.OutstandingCredit.StringFixed(2))
			fmt.Fprintf(w, "Total capital:      $%s\n", s.TotalCapital.StringFixed(2))
			return nil
		},
	}
}
