package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/internal/cli"
)

func trashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "Inspect and manage trashed expenses",
	}

	cmd.AddCommand(trashListCmd())
	cmd.AddCommand(trashRestoreCmd())
	cmd.AddCommand(trashPurgeCmd())

	return cmd
}

func trashListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trashed expenses, most recently deleted first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := newLedger(cfg, store)
			records, err := svc.Trash(cmd.Context())
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println(cli.SubtleStyle.Render("Trash is empty."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, cli.HeaderStyle.Render("DELETED")+"\t"+
				cli.HeaderStyle.Render("TITLE")+"\t"+
				cli.HeaderStyle.Render("CATEGORY")+"\t"+
				cli.HeaderStyle.Render("AMOUNT")+"\t"+
				cli.HeaderStyle.Render("ID"))
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.DeletedAt.Format("2006-01-02 15:04"),
					r.Title,
					r.Category,
					formatCurrency(r.Amount),
					cli.SubtleStyle.Render(r.ID))
			}
			return w.Flush()
		},
	}
}

func trashRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a trashed expense to the ledger",
		Long: `Restore a trashed expense with its original fields. If its category was
removed in the meantime, the expense is reassigned to the first
registered category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := newLedger(cfg, store)
			expense, err := svc.Restore(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Restored %s (%s) under %s",
				formatCurrency(expense.Amount), expense.Title, expense.Category)))
			return nil
		},
	}
}

func trashPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge <id>",
		Short: "Permanently remove a trashed expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := newLedger(cfg, store)
			if err := svc.Purge(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Println(cli.WarningStyle.Render("✓ Permanently removed: " + args[0]))
			return nil
		},
	}
}
