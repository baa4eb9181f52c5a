package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/alexanderramin/shopfloor/internal/repository"
)

func newExportCmd(app *App) *cobra.Command {
	var out, kind, since, until string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter repository.EntryFilter
			now := app.now()
			if kind != "" {
				k, err := parseKind(kind)
				if err != nil {
					return err
				}
				filter.Kind = k
			}
			if since != "" {
				t, err := parseDay(since, now)
				if err != nil {
					return err
				}
				filter.Since = t
			}
			if until != "" {
				t, err := parseDay(until, now)
				if err != nil {
					return err
				}
				filter.Until = t.AddDate(0, 0, 1)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			n, err := app.Report.Export(cmd.Context(), f, filter)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				_ = os.Remove(out)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", n, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "shopfloor.xlsx", "Output file")
	cmd.Flags().StringVar(&kind, "kind", "", "Only this kind")
	cmd.Flags().StringVar(&since, "since", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "Last day, inclusive (YYYY-MM-DD)")

	return cmd
}

func newSummaryCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Labor totals per day and kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				days = 1
			}
			since := startOfDay(app.now()).AddDate(0, 0, -(days - 1))
			rows, err := app.Report.Summary(cmd.Context(), since)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(fmt.Sprintf("Last %d days", days)))
			fmt.Fprint(out, formatter.FormatSummary(rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days including today")

	return cmd
}
