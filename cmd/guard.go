package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// requireAuth evaluates the command gate after session restore and
// refuses authenticated commands when no valid session is held. The
// requested command path is captured on the decision so the refusal
// can name where the caller was headed.
func requireAuth(cmd *cobra.Command, app *app) error {
	app.ensureSession(cmd.Context())

	decision := app.guard.Evaluate(cmd.CommandPath())
	if decision.Allowed() {
		return nil
	}

	return fmt.Errorf("not logged in: run `crm %s` first", decision.RedirectTo)
}
