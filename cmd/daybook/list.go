package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/report"
	"github.com/daybook-app/daybook/internal/service"
)

func listCmd() *cobra.Command {
	var (
		from string
		to   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded expenses, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter service.ExpenseFilter
			if from != "" {
				start, err := parseDate(from)
				if err != nil {
					return err
				}
				start = report.StartOfDay(start)
				filter.Start = &start
			}
			if to != "" {
				end, err := parseDate(to)
				if err != nil {
					return err
				}
				end = report.EndOfDay(end)
				filter.End = &end
			}

			cfg, store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := newLedger(cfg, store)
			expenses, err := svc.Expenses(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if len(expenses) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No expenses recorded."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, cli.HeaderStyle.Render("DATE")+"\t"+
				cli.HeaderStyle.Render("TITLE")+"\t"+
				cli.HeaderStyle.Render("CATEGORY")+"\t"+
				cli.HeaderStyle.Render("AMOUNT")+"\t"+
				cli.HeaderStyle.Render("ID"))
			for _, e := range expenses {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.Timestamp.Format("2006-01-02 15:04"),
					e.Title,
					e.Category,
					formatCurrency(e.Amount),
					cli.SubtleStyle.Render(e.ID))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\n%d expense(s), total %s\n",
				len(expenses), cli.TitleStyle.Render(formatCurrency(report.Sum(expenses))))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")

	return cmd
}
