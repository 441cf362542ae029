package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newRemindersCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Subscription-expiry reminder batch",
	}

	cmd.AddCommand(newRemindersTriggerCmd(app))

	return cmd
}

func newRemindersTriggerCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Fire the server-side SMS reminder batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireAuth(cmd, app); err != nil {
				return err
			}

			var message string
			err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Triggering reminders...", func(ctx context.Context) error {
				var err error
				message, err = app.directory.TriggerReminders(ctx)
				return err
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}
}
