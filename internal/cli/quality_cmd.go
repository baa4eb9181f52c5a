package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/alexanderramin/shopfloor/internal/domain"
)

func newQualityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quality",
		Aliases: []string{"q"},
		Short:   "Quality-exception reports",
	}

	cmd.AddCommand(
		newQualityNewCmd(app),
		newQualitySubmitCmd(app),
		newQualityListCmd(app),
	)

	return cmd
}

func newQualityNewCmd(app *App) *cobra.Command {
	r := &domain.QualityReport{}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Draft a quality-exception report",
		RunE: func(cmd *cobra.Command, args []string) error {
			got, err := app.Quality.NewReport(cmd.Context(), r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Drafted report %s (%s)\n", formatter.Bold(got.OrderNo), formatter.TruncID(got.ID))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&r.MouldCode, "mould", "", "Mould code")
	f.StringVar(&r.ReasonCode, "reason", "", "Exception reason code")
	f.StringVar(&r.DeptID, "dept", "", "Responsible department ID")
	f.BoolVar(&r.NeedTechSupport, "tech-support", false, "Request technical support")
	f.StringVar(&r.Description, "description", "", "What went wrong")
	f.StringSliceVar(&r.Images, "image", nil, "Image URL (repeatable)")
	f.StringVar(&r.Remedy, "remedy", "", "Temporary remedy")
	_ = cmd.MarkFlagRequired("mould")
	_ = cmd.MarkFlagRequired("reason")
	_ = cmd.MarkFlagRequired("dept")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newQualitySubmitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id|order-no>",
		Short: "Submit a drafted report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveReportID(ctx, app, args[0])
			if err != nil {
				return err
			}
			r, err := app.Quality.Submit(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted report %s\n", formatter.Bold(r.OrderNo))
			return nil
		},
	}
}

func newQualityListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List quality reports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := app.Quality.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(reports) == 0 {
				fmt.Fprintln(out, "No reports found.")
				return nil
			}

			headers := []string{"ORDER NO", "MOULD", "REASON", "DEPT", "SUPPORT", "STATUS", "DESCRIPTION"}
			rows := make([][]string, 0, len(reports))
			for _, r := range reports {
				support := "no"
				if r.NeedTechSupport {
					support = formatter.StyleYellow.Render("yes")
				}
				rows = append(rows, []string{
					r.OrderNo,
					r.MouldCode,
					r.ReasonCode,
					r.DeptID,
					support,
					formatter.ReportStatusPill(r.Status),
					formatter.Truncate(r.Description, 40),
				})
			}
			fmt.Fprint(out, formatter.RenderTable(headers, rows))
			return nil
		},
	}
}
