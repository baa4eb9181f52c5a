package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
)

func newCalcCmd(app *App) *cobra.Command {
	var begin, end string
	var rests bool

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute labor minutes for an interval",
		Long: `Compute labor minutes for an interval, excluding the lunch (12:00-13:30),
evening (17:30-18:00) and night (23:30-00:30) rest periods.`,
		Example: `  shopfloor calc --begin 11:30 --end 14:00
  shopfloor calc --begin "2025-03-10 22:00" --end "2025-03-11 02:00" --rests`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, e, err := parseInterval(begin, end, app.now())
			if err != nil {
				return err
			}
			breakdown := app.WorkTime.Compute(cmd.Context(), b, e)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBreakdown(breakdown, rests))
			return nil
		},
	}

	cmd.Flags().StringVar(&begin, "begin", "", "Begin time (HH:mm or YYYY-MM-DD HH:mm[:ss])")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:mm or YYYY-MM-DD HH:mm[:ss])")
	cmd.Flags().BoolVar(&rests, "rests", false, "Show the overlap with each rest period")
	_ = cmd.MarkFlagRequired("begin")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
