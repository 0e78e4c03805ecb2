package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/internal/cli"
)

func editCmd() *cobra.Command {
	var (
		title    string
		amount   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an expense's title, amount, or category",
		Long: `Edit an existing ledger entry in place. Fields not given keep their
current value; the id and timestamp never change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := newLedger(cfg, store)
			current, err := svc.Expense(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			newTitle := current.Title
			if cmd.Flags().Changed("title") {
				newTitle = title
			}
			newAmount := current.Amount
			if cmd.Flags().Changed("amount") {
				newAmount, err = strconv.ParseFloat(amount, 64)
				if err != nil {
					return fmt.Errorf("invalid amount %q", amount)
				}
			}
			newCategory := current.Category
			if cmd.Flags().Changed("category") {
				newCategory = category
			}

			updated, err := svc.EditExpense(cmd.Context(), args[0], newTitle, newAmount, newCategory)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Updated %s (%s) under %s",
				formatCurrency(updated.Amount), updated.Title, updated.Category)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "new amount")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Move an expense to the trash",
		Long:  `Move a ledger entry to the trash. Trashed entries can be restored or purged with the trash subcommands.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := newLedger(cfg, store)
			if err := svc.SoftDelete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Moved to trash: " + args[0]))
			return nil
		},
	}
}
