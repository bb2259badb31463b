package jobs

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"applytrack/cmd/client/cmd/types"
	"applytrack/internal/app/client"
	"applytrack/internal/domain/grid"
)

// JobsCmd groups the job table commands.
var JobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage the job application table",
	Long: `View and edit the job application table. Edits save to the server
when logged in, or to the local database otherwise.`,
}

func appFromContext(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return app, nil
}

func loadTable(cmd *cobra.Command) (*client.App, *grid.Table, error) {
	app, err := appFromContext(cmd)
	if err != nil {
		return nil, nil, err
	}

	table, err := app.Table(cmd.Context())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	return app, table, nil
}

// rowArg resolves a 1-based row number argument.
func rowArg(table *grid.Table, arg string) (*grid.Row, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("invalid row number %q", arg)
	}

	r := table.Row(n - 1)
	if r == nil {
		return nil, fmt.Errorf("row %d does not exist", n)
	}
	return r, nil
}
