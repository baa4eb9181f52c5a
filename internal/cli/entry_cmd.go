package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/service"
	"github.com/alexanderramin/shopfloor/internal/worktime"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entry",
		Aliases: []string{"e"},
		Short:   "Record and submit man-time entries",
	}

	cmd.AddCommand(
		newEntryAddCmd(app),
		newEntryListCmd(app),
		newEntryRemoveCmd(app),
		newEntrySubmitCmd(app),
	)

	return cmd
}

func newEntryAddCmd(app *App) *cobra.Command {
	var kind, begin, end, note string
	e := &domain.WorkTimeEntry{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a man-time entry",
		Example: `  shopfloor entry add --craft C01 --begin 08:00 --end 11:30
  shopfloor entry add --kind workpiece --craft W02 --machine MC1 --mould M-100 --begin 13:00 --end 17:00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKind(kind)
			if err != nil {
				return err
			}
			if (begin == "" || end == "") && app.interactive() {
				if err := intervalForm(&begin, &end).Run(); err != nil {
					return err
				}
			}
			if begin == "" || end == "" {
				return fmt.Errorf("--begin and --end are required")
			}
			b, en, err := parseInterval(begin, end, app.now())
			if err != nil {
				return err
			}

			e.Kind = k
			e.BeginAt = b
			e.EndAt = en
			e.Note = note
			if err := app.WorkTime.Record(cmd.Context(), e); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s entry %s: %s → %s, %s labor\n",
				e.Kind, formatter.TruncID(e.ID),
				worktime.FormatDateTime(e.BeginAt, ""), worktime.FormatDateTime(e.EndAt, ""),
				formatter.FormatMinutes(e.LaborMin))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&kind, "kind", string(domain.KindAuxiliary), "Entry kind: auxiliary, workpiece or qiandiao")
	f.StringVar(&e.CraftCode, "craft", "", "Craft code")
	f.StringVar(&e.CraftName, "craft-name", "", "Craft name")
	f.StringVar(&e.MachineCode, "machine", "", "Machine code")
	f.StringVar(&e.MouldCode, "mould", "", "Mould code")
	f.StringVar(&e.PartCode, "part", "", "Imported part code")
	f.StringVar(&e.OrderType, "order-type", "", "Order type")
	f.StringVar(&e.OrderID, "order", "", "Parts order ID (qiandiao)")
	f.StringVar(&e.PlineCode, "pline", "", "Production line code")
	f.StringVar(&e.Operator, "operator", "", "Operator user name")
	f.StringVar(&begin, "begin", "", "Begin time (HH:mm or YYYY-MM-DD HH:mm[:ss])")
	f.StringVar(&end, "end", "", "End time (HH:mm or YYYY-MM-DD HH:mm[:ss])")
	f.StringVar(&note, "note", "", "Remark")
	_ = cmd.MarkFlagRequired("craft")

	return cmd
}

func newEntryListCmd(app *App) *cobra.Command {
	var kind, status, since string
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter repository.EntryFilter
			if kind != "" {
				k, err := parseKind(kind)
				if err != nil {
					return err
				}
				filter.Kind = k
			}
			if status != "" {
				filter.Status = domain.EntryStatus(status)
			}
			if since != "" {
				t, err := parseDay(since, app.now())
				if err != nil {
					return err
				}
				filter.Since = t
			}
			filter.Limit = limit

			entries, err := app.WorkTime.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries found.")
				return nil
			}

			headers := []string{"ID", "KIND", "CRAFT", "BEGIN", "END", "LABOR", "STATUS", "UPDATED", "NOTE"}
			rows := make([][]string, 0, len(entries))
			now := app.now()
			for _, e := range entries {
				rows = append(rows, []string{
					formatter.TruncID(e.ID),
					formatter.KindBadge(e.Kind),
					domain.CodeNameText(e.CraftCode, e.CraftName),
					worktime.FormatDateTime(e.BeginAt, ""),
					worktime.FormatDateTime(e.EndAt, "HH:mm"),
					formatter.FormatMinutes(e.LaborMin),
					formatter.EntryStatusPill(e.Status),
					formatter.EntryActivity(e, now),
					formatter.Truncate(domain.CoalesceStr(e.LastError, e.Note), 40),
				})
			}
			fmt.Fprint(out, formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status: pending, submitted or failed")
	cmd.Flags().StringVar(&since, "since", "", "Only entries beginning on or after this day (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum rows (0 for all)")

	return cmd
}

func newEntryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an entry that has not been submitted",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEntryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkTime.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newEntrySubmitCmd(app *App) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit pending and failed entries of a kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKind(kind)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			res, err := app.WorkTime.SubmitPending(cmd.Context(), k)
			if errors.Is(err, service.ErrEmptyBatch) {
				fmt.Fprintf(out, "Nothing to submit for %s.\n", k)
				return nil
			}
			if res != nil {
				fmt.Fprintf(out, "Submitted %d %s entries (%s labor)",
					res.Submitted, k, formatter.FormatMinutes(res.LaborMin))
				if res.Failed > 0 {
					fmt.Fprint(out, formatter.StyleRed.Render(fmt.Sprintf(", %d failed", res.Failed)))
				}
				fmt.Fprintln(out)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(domain.KindAuxiliary), "Entry kind to submit")

	return cmd
}
