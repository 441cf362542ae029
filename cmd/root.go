package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "crm",
		Short:         "CRM CLI: manage clients and subscription reminders",
		Long:          "crm talks to the CRM REST API from the terminal: sign in, list and edit clients, and trigger subscription-expiry SMS reminders.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newClientsCmd(app),
		newRemindersCmd(app),
	)

	return rootCmd
}
