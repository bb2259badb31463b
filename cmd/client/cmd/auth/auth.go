package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"applytrack/cmd/client/cmd/types"
	"applytrack/internal/app/client"
)

// AuthCmd groups the account commands.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Account management",
	Long:  `Register, log in and log out of the ApplyTrack server.`,
}

func appFromContext(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return app, nil
}
