package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nuvora-hq/crm-cli/internal/domain"
)

func newLoginCmd(app *app) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if errs := domain.LoginRules().Evaluate(map[string]string{
				"email":    email,
				"password": password,
			}); errs != nil {
				return errs
			}

			app.ensureSession(cmd.Context())

			if err := app.session.Login(cmd.Context(), email, password); err != nil {
				if message := app.session.Err(); message != "" {
					return errors.New(message)
				}
				return err
			}

			user, _ := app.session.User()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newRegisterCmd(app *app) *cobra.Command {
	var email string
	var password string
	var confirm string
	var name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if errs := domain.RegisterRules(confirm).Evaluate(map[string]string{
				"name":     name,
				"email":    email,
				"password": password,
			}); errs != nil {
				return errs
			}

			app.ensureSession(cmd.Context())

			if err := app.session.Register(cmd.Context(), email, password, name); err != nil {
				if message := app.session.Err(); message != "" {
					return errors.New(message)
				}
				return err
			}

			user, _ := app.session.User()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Registered as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "Password confirmation")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
