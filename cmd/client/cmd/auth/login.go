package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the ApplyTrack server",
	Long: `Authenticates against the server and stores the session token
locally for subsequent commands.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		fmt.Print("Login: ")
		var login string
		_, _ = fmt.Scanln(&login)

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		role, err := app.Login(ctx, login, string(password))
		if err != nil {
			return err
		}

		fmt.Println("Logged in successfully.")
		if role == "admin" {
			fmt.Println("Admin commands are available: applytrack admin users")
		}
		return nil
	},
}
