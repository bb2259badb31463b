package admin

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"applytrack/cmd/client/cmd/types"
	"applytrack/internal/app/client"
)

// AdminCmd groups the administrative commands.
var AdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative commands",
	Long:  `Server administration. Requires an admin account.`,
}

var UsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("application not initialized")
		}

		report, err := app.AdminUsers(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLogin\tRole\tRegistered\tLast Login\tLast Activity")
		for _, u := range report.Users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				u.ID, u.Login, u.Role,
				u.CreatedAt.Format("2006-01-02"),
				formatTime(u.LastLogin),
				formatTime(u.LastActivity),
			)
		}
		w.Flush()

		fmt.Printf("\n%d user(s)\n", report.Total)
		return nil
	},
}

var JobsCmd = &cobra.Command{
	Use:   "jobs <user-id>",
	Short: "List one account's job applications",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("application not initialized")
		}

		records, err := app.AdminUserJobs(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Printf("User %s has no job applications\n", args[0])
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCompany\tTitle\tStatus\tApplied")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.Fields.CompanyName, r.Fields.Title,
				r.Fields.Status, r.Fields.ApplicationDate,
			)
		}
		w.Flush()

		fmt.Printf("\n%d job(s)\n", len(records))
		return nil
	},
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Format("2006-01-02 15:04")
}
