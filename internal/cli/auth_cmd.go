package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/alexanderramin/shopfloor/internal/domain"
)

func newLoginCmd(app *App) *cobra.Command {
	var username, password string
	var remember, saved bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the MES backend",
		Long: `Log in to the MES backend. With --saved the remembered login is used.
Missing credentials are prompted for on an interactive terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if saved {
				info, err := app.Auth.LoginRemembered(ctx)
				if err != nil {
					return err
				}
				printWelcome(cmd, info)
				return nil
			}

			if username == "" || password == "" {
				if !app.interactive() {
					return fmt.Errorf("--username and --password are required when not running interactively")
				}
				if username == "" {
					if remembered, err := app.Auth.RememberedLogin(ctx); err == nil {
						username = remembered.Username
						remember = remember || remembered.RememberMe
					}
				}
				if err := loginForm(&username, &password, &remember).Run(); err != nil {
					return err
				}
			}

			info, err := app.Auth.Login(ctx, username, password, remember)
			if err != nil {
				return err
			}
			printWelcome(cmd, info)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	cmd.Flags().BoolVar(&remember, "remember", false, "Remember the login on this machine")
	cmd.Flags().BoolVar(&saved, "saved", false, "Log in with the remembered credentials")

	return cmd
}

func printWelcome(cmd *cobra.Command, info *domain.UserInfo) {
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", formatter.Bold(displayName(info)))
}

func displayName(info *domain.UserInfo) string {
	if info == nil {
		return "unknown"
	}
	return domain.CoalesceStr(info.NickName, info.UserName)
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the remembered login",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := app.Auth.Whoami(cmd.Context())
			if err != nil {
				return err
			}
			var b strings.Builder
			fmt.Fprintf(&b, "%s %s\n", formatter.Dim("User:"), info.UserName)
			fmt.Fprintf(&b, "%s %s\n", formatter.Dim("Name:"), formatter.OrDash(info.NickName))
			fmt.Fprintf(&b, "%s %s\n", formatter.Dim("Dept:"), formatter.OrDash(info.DeptName))
			fmt.Fprintf(&b, "%s %s", formatter.Dim("Roles:"), strings.Join(info.Roles, ", "))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("whoami", b.String()))
			return nil
		},
	}
}
