package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/report"
)

func exportCmd() *cobra.Command {
	var (
		format string
		out    string
		from   string
		to     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recorded data",
		Long: `Export data as a JSON snapshot or an Excel-compatible tabular file.

The JSON form captures the full state: expenses, trash, categories, and
settings. The tabular form covers only ledger expenses inside the given
date range (default: start of the current month through today) and adds
per-day summary rows.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if format == "" {
				format = cfg.ExportFormat
			}

			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			svc := newSnapshot(store)

			switch format {
			case "json":
				if err := svc.ExportJSON(cmd.Context(), w); err != nil {
					return err
				}
			case "tabular":
				now := time.Now()
				start := report.StartOfMonth(now)
				end := report.EndOfDay(now)
				if from != "" {
					day, err := parseDate(from)
					if err != nil {
						return err
					}
					start = report.StartOfDay(day)
				}
				if to != "" {
					day, err := parseDate(to)
					if err != nil {
						return err
					}
					end = report.EndOfDay(day)
				}
				if err := svc.ExportTabular(cmd.Context(), w, start, end); err != nil {
					return err
				}
			default:
				return fmt.Errorf("invalid export format: %s", format)
			}

			if out != "" {
				fmt.Fprintln(os.Stderr, cli.SuccessStyle.Render("✓ Exported to "+out))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "export format (json, tabular; default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&from, "from", "", "tabular range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "tabular range end (YYYY-MM-DD)")

	return cmd
}
