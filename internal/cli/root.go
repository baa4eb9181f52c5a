package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shopfloor/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Auth     service.AuthService
	WorkTime service.WorkTimeService
	Qiandiao service.QiandiaoService
	Quality  service.QualityService
	Lookup   service.LookupService
	Report   service.ReportService

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool
	// Now is the clock used to resolve bare HH:mm times. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "shopfloor" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "shopfloor",
		Short:         "Shop-floor man-time recording and reporting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCalcCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newEntryCmd(app),
		newQiandiaoCmd(app),
		newQualityCmd(app),
		newLookupCmd(app),
		newExportCmd(app),
		newSummaryCmd(app),
	)

	return root
}
