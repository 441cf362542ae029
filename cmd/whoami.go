package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.ensureSession(cmd.Context())

			user, ok := app.session.User()
			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (id %s)\n", user.Name, user.Email, user.ID)
			if expiry, ok := app.session.TokenExpiry(); ok {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "token expires %s\n", expiry.Local().Format("Jan 02, 2006 15:04"))
			}

			return nil
		},
	}
}
