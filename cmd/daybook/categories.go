package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage expense categories",
	}

	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())
	cmd.AddCommand(categoriesRenameCmd())
	cmd.AddCommand(categoriesMoveCmd())
	cmd.AddCommand(categoriesRemoveCmd())

	return cmd
}

func categoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories in display order with usage counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := newLedger(cfg, store)
			categories, err := svc.Categories(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, cli.HeaderStyle.Render("#")+"\t"+
				cli.HeaderStyle.Render("NAME")+"\t"+
				cli.HeaderStyle.Render("COLOR")+"\t"+
				cli.HeaderStyle.Render("IN USE"))
			for i, cat := range categories {
				usage, err := svc.UsageCount(cmd.Context(), cat.Name)
				if err != nil {
					return err
				}
				swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render("●")
				fmt.Fprintf(w, "%d\t%s\t%s %s\t%d\n", i, cat.Name, swatch, cat.Color, usage)
			}
			return w.Flush()
		},
	}
}

func categoriesAddCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := newLedger(cfg, store)
			cat, err := svc.AddCategory(cmd.Context(), args[0], color)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added category %s (%s)", cat.Name, cat.Color)))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", model.DefaultColor, "hex color for the category")

	return cmd
}

func categoriesRenameCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "rename <old-name> <new-name>",
		Short: "Rename a category, cascading to all expenses and trash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := newLedger(cfg, store)
			if err := svc.RenameCategory(cmd.Context(), args[0], args[1], color); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Renamed %s to %s", args[0], args[1])))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "new hex color (default: keep current)")

	return cmd
}

func categoriesMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <index> <delta>",
		Short: "Move a category within the display order",
		Long: `Move the category at the given zero-based index by delta positions.
A move whose target falls outside the list does nothing.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid delta %q", args[1])
			}

			cfg, store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := newLedger(cfg, store)
			if err := svc.ReorderCategory(cmd.Context(), index, delta); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Reordered categories"))
			return nil
		},
	}
}

func categoriesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove an unused category",
		Long: `Remove the category at the given zero-based index. The last remaining
category cannot be removed, nor can one still referenced by any expense
in the ledger or trash.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q", args[0])
			}

			cfg, store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := newLedger(cfg, store)
			if err := svc.RemoveCategory(cmd.Context(), index); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Removed category"))
			return nil
		},
	}
}
