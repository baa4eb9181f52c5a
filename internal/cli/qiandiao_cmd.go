package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/alexanderramin/shopfloor/internal/domain"
)

func newQiandiaoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "qiandiao",
		Aliases: []string{"qd"},
		Short:   "Tooling-change feedback against parts orders",
	}

	cmd.AddCommand(
		newQiandiaoOrdersCmd(app),
		newQiandiaoShowCmd(app),
		newQiandiaoSubmitCmd(app),
		newQiandiaoUserCmd(app),
	)

	return cmd
}

func newQiandiaoOrdersCmd(app *App) *cobra.Command {
	var q domain.OrderQuery
	var shiftChange bool

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List parts orders waiting for feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("shift-change") {
				q.ShiftChange = domain.ShiftChangeNo
				if shiftChange {
					q.ShiftChange = domain.ShiftChangeYes
				}
			}
			page, err := app.Qiandiao.Orders(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(page.Rows) == 0 {
				fmt.Fprintln(out, "No orders waiting.")
				return nil
			}

			headers := []string{"ID", "MOULD", "PART", "MAKE ORDER", "CRAFT", "LINE"}
			rows := make([][]string, 0, len(page.Rows))
			for _, o := range page.Rows {
				rows = append(rows, []string{
					o.ID,
					o.MoldCode,
					formatter.OrDash(o.ImportPartCode),
					formatter.OrDash(o.MouldMakeOrder),
					domain.CodeNameText(o.CraftCode, o.CraftName),
					formatter.OrDash(o.PlineCode),
				})
			}
			fmt.Fprint(out, formatter.RenderTable(headers, rows))
			fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%d of %d orders", len(page.Rows), page.Total)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&q.MoldCode, "mould", "", "Filter by mould code")
	f.StringVar(&q.ImportPartCode, "part", "", "Filter by imported part code")
	f.StringVar(&q.MouldMakeOrder, "make-order", "", "Filter by mould make order")
	f.BoolVar(&shiftChange, "shift-change", false, "Filter by shift-change flag")
	f.IntVar(&q.PageNum, "page", 1, "Page number")
	f.IntVar(&q.PageSize, "size", 10, "Page size")

	return cmd
}

func newQiandiaoShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one parts order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := app.Qiandiao.Order(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var b strings.Builder
			fmt.Fprintf(&b, "%s %s\n", formatter.Dim("Mould:"), o.MoldCode)
			fmt.Fprintf(&b, "%s %s\n", formatter.Dim("Part:"), formatter.OrDash(o.ImportPartCode))
			fmt.Fprintf(&b, "%s %s\n", formatter.Dim("Make order:"), formatter.OrDash(o.MouldMakeOrder))
			fmt.Fprintf(&b, "%s %s\n", formatter.Dim("Craft:"), domain.CodeNameText(o.CraftCode, o.CraftName))
			fmt.Fprintf(&b, "%s %s", formatter.Dim("Line:"), formatter.OrDash(o.PlineCode))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("order "+o.ID, b.String()))
			return nil
		},
	}
}

func newQiandiaoSubmitCmd(app *App) *cobra.Command {
	var begin, end string
	e := &domain.WorkTimeEntry{}

	cmd := &cobra.Command{
		Use:   "submit <order-id>",
		Short: "Record and submit feedback for a parts order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			e.BeginAt = b
			e.EndAt = en

			got, err := app.Qiandiao.Submit(cmd.Context(), args[0], e)
			if got != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Order %s: %s labor, %s\n",
					args[0], formatter.FormatMinutes(got.LaborMin), formatter.EntryStatusPill(got.Status))
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&begin, "begin", "", "Begin time (HH:mm or YYYY-MM-DD HH:mm[:ss])")
	f.StringVar(&end, "end", "", "End time (HH:mm or YYYY-MM-DD HH:mm[:ss])")
	f.StringVar(&e.CraftCode, "craft", "", "Craft code (defaults to the order's)")
	f.StringVar(&e.MachineCode, "machine", "", "Machine code")
	f.StringVar(&e.Operator, "operator", "", "Operator user name")
	f.StringVar(&e.Note, "note", "", "Remark")

	return cmd
}

func newQiandiaoUserCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "user",
		Short: "Show the department, line and operator for feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Qiandiao.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u.Label())
			return nil
		},
	}
}
