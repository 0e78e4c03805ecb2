package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/daybook-app/daybook/internal/cli"
	"github.com/daybook-app/daybook/internal/snapshot"
)

func importCmd() *cobra.Command {
	var (
		format string
		policy string
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a previously exported file",
		Long: `Import expenses from a JSON snapshot or an Excel-compatible tabular
file. The format is detected from the file extension unless --format is
given.

The replace policy swaps the existing data for the imported set. The
date-merge policy rewrites only the calendar days present in the import
and leaves all other days untouched. Either way the import is atomic: a
malformed file changes nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := initStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if policy == "" {
				policy = cfg.ImportMergePolicy
			}
			mergePolicy, err := snapshot.ParseMergePolicy(policy)
			if err != nil {
				return err
			}

			if format == "" || format == "auto" {
				switch strings.ToLower(filepath.Ext(args[0])) {
				case ".json":
					format = "json"
				case ".xls", ".xml":
					format = "tabular"
				default:
					return fmt.Errorf("cannot detect format of %s, pass --format", args[0])
				}
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer func() { _ = f.Close() }()

			svc := newSnapshot(store)

			var result snapshot.ImportResult
			switch format {
			case "json":
				result, err = svc.ImportJSON(cmd.Context(), f, mergePolicy)
			case "tabular":
				var bar *progressbar.ProgressBar
				result, err = svc.ImportTabular(cmd.Context(), f, mergePolicy, func(done, total int) {
					if bar == nil {
						bar = progressbar.NewOptions(total,
							progressbar.OptionSetDescription("Importing rows"),
							progressbar.OptionSetWriter(os.Stderr),
							progressbar.OptionClearOnFinish(),
						)
					}
					_ = bar.Set(done)
				})
			default:
				return fmt.Errorf("invalid import format: %s", format)
			}
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("✓ Imported %d expense(s) across %d day(s)", result.Imported, result.Days)
			if result.Skipped > 0 {
				msg += fmt.Sprintf(", skipped %d row(s)", result.Skipped)
			}
			fmt.Println(cli.SuccessStyle.Render(msg))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", "import format (auto, json, tabular)")
	cmd.Flags().StringVarP(&policy, "policy", "p", "", "merge policy (replace, date-merge; default from config)")

	return cmd
}
