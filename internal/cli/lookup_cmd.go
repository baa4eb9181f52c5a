package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/mes"
	"github.com/alexanderramin/shopfloor/internal/service"
)

func newLookupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Browse backend option lists",
	}

	var cq service.CraftQuery
	crafts := &cobra.Command{
		Use:   "crafts",
		Short: "List crafts, by big type or production line",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := app.Lookup.Crafts(cmd.Context(), cq)
			return printOptions(cmd, opts, err)
		},
	}
	crafts.Flags().StringVar(&cq.BigType, "big-type", "", "Craft big type")
	crafts.Flags().StringVar(&cq.PlineCode, "pline", "", "Production line code")

	machines := &cobra.Command{
		Use:   "machines",
		Short: "List machines",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := app.Lookup.Machines(cmd.Context())
			return printOptions(cmd, opts, err)
		},
	}

	var mq mes.MouldQuery
	moulds := &cobra.Command{
		Use:   "moulds",
		Short: "Search moulds",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := app.Lookup.Moulds(cmd.Context(), mq)
			return printOptions(cmd, opts, err)
		},
	}
	moulds.Flags().StringVar(&mq.PlineCode, "pline", "", "Production line code")
	moulds.Flags().StringVar(&mq.Keyword, "keyword", "", "Filter by mould code")

	parts := &cobra.Command{
		Use:   "parts <mould-code>",
		Short: "List imported part codes of a mould",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := app.Lookup.Parts(cmd.Context(), args[0])
			return printOptions(cmd, opts, err)
		},
	}

	dicts := &cobra.Command{
		Use:   "dicts <type>",
		Short: "List a system dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := app.Lookup.Dicts(cmd.Context(), args[0])
			return printOptions(cmd, opts, err)
		},
	}

	cmd.AddCommand(crafts, machines, moulds, parts, dicts)
	return cmd
}

func printOptions(cmd *cobra.Command, opts []domain.Option, err error) error {
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(opts) == 0 {
		fmt.Fprintln(out, "No options.")
		return nil
	}
	rows := make([][]string, 0, len(opts))
	for _, o := range opts {
		rows = append(rows, []string{o.Value, o.Text})
	}
	fmt.Fprint(out, formatter.RenderTable([]string{"VALUE", "TEXT"}, rows))
	return nil
}
