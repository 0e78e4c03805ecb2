package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/internal/budget"
	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/report"
	"github.com/daybook-app/daybook/internal/service"
)

func budgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "budget",
		Short: "Budget balances for today, this week, and this month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := newLedger(cfg, store)
			settings, err := svc.Settings(cmd.Context())
			if err != nil {
				return err
			}

			expenses, err := svc.Expenses(cmd.Context(), service.ExpenseFilter{})
			if err != nil {
				return err
			}

			now := time.Now()
			spentToday := report.Sum(report.FilterByRange(expenses, report.StartOfDay(now), report.EndOfDay(now)))
			spentWeek := report.Sum(report.FilterByRange(expenses, report.StartOfWeek(now), report.EndOfWeek(now)))
			spentMonth := report.Sum(report.FilterByRange(expenses, report.StartOfMonth(now), report.EndOfMonth(now)))

			fmt.Println(cli.TitleStyle.Render("Budget"))
			printBalance("Today", settings.DailyBudget, spentToday,
				budget.DailyBalance(settings, spentToday))
			printBalance("This week", budget.WeeklyBudget(settings), spentWeek,
				budget.WeeklyBalance(settings, spentWeek))
			printBalance("This month", budget.MonthlyBudget(settings, now), spentMonth,
				budget.MonthlyBalance(settings, spentMonth, now))
			return nil
		},
	}
}

func printBalance(label string, limit, spent, balance float64) {
	rendered := formatCurrency(balance)
	if balance < 0 {
		rendered = cli.NegativeStyle.Render(rendered)
	} else {
		rendered = cli.SuccessStyle.Render(rendered)
	}
	fmt.Printf("  %-11s budget %s, spent %s, remaining %s\n",
		label, formatCurrency(limit), formatCurrency(spent), rendered)
}
