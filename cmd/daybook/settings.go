package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/internal/cli"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change budget settings",
	}

	cmd.AddCommand(settingsShowCmd())
	cmd.AddCommand(settingsSetCmd())

	return cmd
}

func settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current budget settings",
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

			fmt.Println(cli.TitleStyle.Render("Settings"))
			fmt.Printf("  Daily budget:   %s\n", formatCurrency(settings.DailyBudget))
			if settings.MonthlyBudget > 0 {
				fmt.Printf("  Monthly budget: %s\n", formatCurrency(settings.MonthlyBudget))
			} else {
				fmt.Printf("  Monthly budget: %s\n", cli.SubtleStyle.Render("derived from daily budget"))
			}
			return nil
		},
	}
}

func settingsSetCmd() *cobra.Command {
	var (
		daily   string
		monthly string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change budget settings",
		Long: `Change budget settings. A non-positive daily budget resets to the
default of 30; a monthly budget of 0 means "derive from the daily
budget and month length".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("daily") && !cmd.Flags().Changed("monthly") {
				return fmt.Errorf("nothing to set: pass --daily and/or --monthly")
			}

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

			if cmd.Flags().Changed("daily") {
				settings.DailyBudget, err = strconv.ParseFloat(daily, 64)
				if err != nil {
					return fmt.Errorf("invalid daily budget %q", daily)
				}
			}
			if cmd.Flags().Changed("monthly") {
				settings.MonthlyBudget, err = strconv.ParseFloat(monthly, 64)
				if err != nil {
					return fmt.Errorf("invalid monthly budget %q", monthly)
				}
			}

			if err := svc.UpdateSettings(cmd.Context(), settings); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Settings updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&daily, "daily", "", "daily budget amount")
	cmd.Flags().StringVar(&monthly, "monthly", "", "monthly budget amount (0 to derive from daily)")

	return cmd
}
