package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	renderclients "github.com/nuvora-hq/crm-cli/internal/adapters/render/clients"
	"github.com/nuvora-hq/crm-cli/internal/domain"
)

const dateFlagFormat = "2006-01-02"

func newClientsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"client"},
		Short:   "Manage the client list",
	}

	cmd.AddCommand(
		newClientsListCmd(app),
		newClientsGetCmd(app),
		newClientsCreateCmd(app),
		newClientsUpdateCmd(app),
		newClientsDeleteCmd(app),
	)

	return cmd
}

func newClientsListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireAuth(cmd, app); err != nil {
				return err
			}

			var list []domain.Client
			fetch := func(ctx context.Context) error {
				var err error
				list, err = app.directory.Clients(ctx)
				return err
			}

			if asJSON {
				if err := fetch(cmd.Context()); err != nil {
					return err
				}
				return writeJSON(cmd, list)
			}

			if err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching clients...", fetch); err != nil {
				return err
			}

			output, err := renderclients.RenderList(list, app.renderOptions())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newClientsGetCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(cmd, app); err != nil {
				return err
			}

			id := domain.ClientID(args[0])
			client, err := app.directory.Client(cmd.Context(), id)
			if err != nil {
				if errors.Is(err, domain.ErrClientNotFound) {
					return fmt.Errorf("client %s: %w", id, domain.ErrClientNotFound)
				}
				return err
			}

			if asJSON {
				return writeJSON(cmd, client)
			}

			output, err := renderclients.RenderDetails(client, app.renderOptions())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newClientsCreateCmd(app *app) *cobra.Command {
	flags := &clientFieldFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireAuth(cmd, app); err != nil {
				return err
			}

			fields, err := flags.fields()
			if err != nil {
				return err
			}

			client, err := app.directory.CreateClient(cmd.Context(), fields)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created client %s (%s)\n", client.Name, client.ID)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newClientsUpdateCmd(app *app) *cobra.Command {
	flags := &clientFieldFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a client's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(cmd, app); err != nil {
				return err
			}

			fields, err := flags.fields()
			if err != nil {
				return err
			}

			id := domain.ClientID(args[0])
			client, err := app.directory.UpdateClient(cmd.Context(), id, fields)
			if err != nil {
				if errors.Is(err, domain.ErrClientNotFound) {
					return fmt.Errorf("client %s: %w", id, domain.ErrClientNotFound)
				}
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated client %s (%s)\n", client.Name, client.ID)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newClientsDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(cmd, app); err != nil {
				return err
			}

			id := domain.ClientID(args[0])
			if err := app.directory.DeleteClient(cmd.Context(), id); err != nil {
				// A repeated delete reports not-found; that is
				// "already gone", not a failure.
				if errors.Is(err, domain.ErrClientNotFound) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Client %s already deleted\n", id)
					return nil
				}
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted client %s\n", id)
			return nil
		},
	}
}

// clientFieldFlags carries the mutable client fields for create and
// update; update is a full replace, so both commands take the same
// set.
type clientFieldFlags struct {
	name     string
	email    string
	phone    string
	company  string
	notes    string
	services []string
	start    string
	end      string
}

func (f *clientFieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Client name")
	cmd.Flags().StringVar(&f.email, "email", "", "Contact email")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&f.company, "company", "", "Company name")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
	cmd.Flags().StringSliceVar(&f.services, "services", nil, "Subscribed services (comma separated)")
	cmd.Flags().StringVar(&f.start, "start", "", "Subscription start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "Subscription end (YYYY-MM-DD)")
}

// fields validates the declared rules and assembles the request body.
// Validation failures never reach the network.
func (f *clientFieldFlags) fields() (domain.ClientFields, error) {
	if errs := domain.ClientFormRules().Evaluate(map[string]string{
		"name":              f.name,
		"email":             f.email,
		"phone":             f.phone,
		"services":          strings.Join(f.services, ","),
		"subscriptionStart": f.start,
		"subscriptionEnd":   f.end,
	}); errs != nil {
		return domain.ClientFields{}, errs
	}

	start, err := time.Parse(dateFlagFormat, f.start)
	if err != nil {
		return domain.ClientFields{}, fmt.Errorf("parse --start: %w", err)
	}
	end, err := time.Parse(dateFlagFormat, f.end)
	if err != nil {
		return domain.ClientFields{}, fmt.Errorf("parse --end: %w", err)
	}

	return domain.ClientFields{
		Name:              f.name,
		Email:             f.email,
		Phone:             f.phone,
		Company:           f.company,
		Notes:             f.notes,
		Services:          f.services,
		SubscriptionStart: start,
		SubscriptionEnd:   end,
	}, nil
}

func writeJSON(cmd *cobra.Command, value any) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}

func (a *app) renderOptions() renderclients.RenderOptions {
	return renderclients.RenderOptions{
		Now:              a.now(),
		ReminderLeadDays: a.config.leadDays,
	}
}
