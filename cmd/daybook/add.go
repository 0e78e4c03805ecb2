package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/internal/cli"
)

func addCmd() *cobra.Command {
	var (
		title    string
		category string
		date     string
	)

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record a new expense",
		Long: `Record a new expense in the ledger.

The amount must be at least 1. An empty title defaults to "默认", and an
unknown category falls back to the first registered one. The expense is
stamped with the given date (default today) combined with the current
time of day.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}

			day := time.Now()
			if date != "" {
				day, err = parseDate(date)
				if err != nil {
					return err
				}
			}

			cfg, store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := newLedger(cfg, store)
			expense, err := svc.AddExpense(cmd.Context(), title, amount, day, category)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Recorded %s (%s) under %s",
				formatCurrency(expense.Amount), expense.Title, expense.Category)))
			fmt.Println(cli.SubtleStyle.Render("  id: " + expense.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "expense title")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name")
	cmd.Flags().StringVarP(&date, "date", "d", "", "calendar date (YYYY-MM-DD, default today)")

	return cmd
}
