package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/report"
	"github.com/daybook-app/daybook/internal/service"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Spending reports and trends",
	}

	cmd.AddCommand(reportSummaryCmd())
	cmd.AddCommand(reportTrendCmd())
	cmd.AddCommand(reportMonthlyCmd())
	cmd.AddCommand(reportYearlyCmd())
	cmd.AddCommand(reportWeeklyCmd())
	cmd.AddCommand(reportBoardCmd())

	return cmd
}

// loadAllExpenses pulls the full ledger for in-memory aggregation.
func loadAllExpenses(cmd *cobra.Command) ([]model.Expense, func(), error) {
	cfg, store, err := initStorage()
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = store.Close() }

	svc := newLedger(cfg, store)
	expenses, err := svc.Expenses(cmd.Context(), service.ExpenseFilter{})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return expenses, closeFn, nil
}

func reportSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Today, this week, and this month at a glance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			expenses, closeFn, err := loadAllExpenses(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			now := time.Now()
			today := report.Sum(report.FilterByRange(expenses, report.StartOfDay(now), report.EndOfDay(now)))
			week := report.Sum(report.FilterByRange(expenses, report.StartOfWeek(now), report.EndOfWeek(now)))
			month := report.Sum(report.FilterByRange(expenses, report.StartOfMonth(now), report.EndOfMonth(now)))

			fmt.Println(cli.TitleStyle.Render("Spending Summary"))
			fmt.Printf("  Today:      %s\n", formatCurrency(today))
			fmt.Printf("  This week:  %s\n", formatCurrency(week))
			fmt.Printf("  This month: %s\n", formatCurrency(month))

			byCategory := report.GroupByCategory(
				report.FilterByRange(expenses, report.StartOfMonth(now), report.EndOfMonth(now)))
			if len(byCategory) == 0 {
				return nil
			}

			names := make([]string, 0, len(byCategory))
			for name := range byCategory {
				names = append(names, name)
			}
			sort.Slice(names, func(i, j int) bool { return byCategory[names[i]] > byCategory[names[j]] })

			fmt.Println()
			fmt.Println(cli.HeaderStyle.Render("This month by category:"))
			for _, name := range names {
				fmt.Printf("  %-12s %s\n", name, formatCurrency(byCategory[name]))
			}
			return nil
		},
	}
}

func reportTrendCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Daily spending over a recent window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days <= 0 {
				return fmt.Errorf("invalid window: %d days", days)
			}

			expenses, closeFn, err := loadAllExpenses(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			points := report.DailyTrend(expenses, days, time.Now())

			var peak float64
			for _, p := range points {
				if p.Amount > peak {
					peak = p.Amount
				}
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Daily Trend (%d days)", days)))
			for _, p := range points {
				bar := ""
				if peak > 0 {
					bar = strings.Repeat("█", int(p.Amount/peak*30))
				}
				fmt.Printf("  %s  %10s  %s\n", p.Label, formatCurrency(p.Amount), cli.InfoStyle.Render(bar))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 7, "window length in days")

	return cmd
}

func reportMonthlyCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Monthly totals for a year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if year == 0 {
				year = time.Now().Year()
			}

			expenses, closeFn, err := loadAllExpenses(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			totals := report.MonthlyTotals(expenses, year)

			fmt.Println(cli.TitleStyle.Render(strconv.Itoa(year) + " Monthly Totals"))
			var yearTotal float64
			for _, mt := range totals {
				fmt.Printf("  %-10s %s\n", mt.Month.String(), formatCurrency(mt.Amount))
				yearTotal += mt.Amount
			}
			fmt.Printf("\n  %-10s %s\n", "Total", cli.HeaderStyle.Render(formatCurrency(yearTotal)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "year (default current)")

	return cmd
}

func reportYearlyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "yearly",
		Short: "Yearly totals across all recorded years",
		RunE: func(cmd *cobra.Command, _ []string) error {
			expenses, closeFn, err := loadAllExpenses(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			totals := report.YearlyTotals(expenses, time.Now())

			fmt.Println(cli.TitleStyle.Render("Yearly Totals"))
			for _, yt := range totals {
				fmt.Printf("  %d  %s\n", yt.Year, formatCurrency(yt.Amount))
			}
			return nil
		},
	}
}

func reportWeeklyCmd() *cobra.Command {
	var (
		month   string
		byMonth bool
	)

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Spending by week segment",
		Long: `Show spending segments. By default the four Monday-aligned calendar
weeks ending with the current week; with --month, the fixed day bands
(1-7, 8-14, 15-21, 22-end) of a given month.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			expenses, closeFn, err := loadAllExpenses(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			var segments []report.Segment
			if byMonth || month != "" {
				ref := time.Now()
				if month != "" {
					ref, err = time.ParseInLocation("2006-01", month, time.Local)
					if err != nil {
						return fmt.Errorf("invalid month %q (expected YYYY-MM)", month)
					}
				}
				segments = report.MonthSegments(expenses, ref.Year(), ref.Month())
			} else {
				segments = report.RecentWeekSegments(expenses, time.Now())
			}

			fmt.Println(cli.TitleStyle.Render("Weekly Segments"))
			for _, seg := range segments {
				fmt.Printf("  %-12s %s\n", seg.Label, formatCurrency(seg.Amount))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month to segment (YYYY-MM)")
	cmd.Flags().BoolVar(&byMonth, "by-month", false, "use current month's day bands")

	return cmd
}

func reportBoardCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Extreme days and records for a month",
		Long: `Show the smallest and largest spending days of a month, plus the
smallest and largest single records of the trailing year.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref := time.Now()
			if month != "" {
				var err error
				ref, err = time.ParseInLocation("2006-01", month, time.Local)
				if err != nil {
					return fmt.Errorf("invalid month %q (expected YYYY-MM)", month)
				}
			}

			expenses, closeFn, err := loadAllExpenses(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			extremes := report.ComputeExtremes(expenses,
				report.StartOfMonth(ref), report.EndOfMonth(ref), time.Now())

			fmt.Println(cli.TitleStyle.Render(ref.Format("2006-01") + " Board"))
			fmt.Printf("  Month total: %s\n\n", formatCurrency(extremes.WindowTotal))

			printDay := func(label string, day *report.DayExtreme) {
				if day == nil {
					fmt.Printf("  %-12s %s\n", label, cli.SubtleStyle.Render("no activity"))
					return
				}
				fmt.Printf("  %-12s %s  %s (%d entries)\n",
					label, day.Date.Format("01-02"), formatCurrency(day.Total), len(day.Entries))
			}
			printDay("Lowest day:", extremes.MinDay)
			printDay("Highest day:", extremes.MaxDay)

			fmt.Println()
			printRecord := func(label string, e *model.Expense) {
				if e == nil {
					fmt.Printf("  %-16s %s\n", label, cli.SubtleStyle.Render("no records"))
					return
				}
				fmt.Printf("  %-16s %s  %s (%s)\n",
					label, e.Timestamp.Format("2006-01-02"), formatCurrency(e.Amount), e.Title)
			}
			printRecord("Smallest record:", extremes.MinExpense)
			printRecord("Largest record:", extremes.MaxExpense)
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month to inspect (YYYY-MM, default current)")

	return cmd
}
