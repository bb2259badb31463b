package jobs

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show application statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		stats, err := app.Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Total applications: %d\n", stats.Total)
		if stats.FollowUpsDue > 0 {
			fmt.Printf("Follow-ups due:     %d\n", stats.FollowUpsDue)
		}

		if len(stats.ByStatus) > 0 {
			fmt.Println("\nBy status:")
			statuses := make([]string, 0, len(stats.ByStatus))
			for s := range stats.ByStatus {
				statuses = append(statuses, s)
			}
			sort.Strings(statuses)

			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			for _, s := range statuses {
				fmt.Fprintf(w, "  %s\t%d\n", s, stats.ByStatus[s])
			}
			w.Flush()
		}

		if len(stats.Monthly) > 0 {
			fmt.Println("\nBy month:")
			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			for _, mc := range stats.Monthly {
				fmt.Fprintf(w, "  %s\t%d\n", mc.Month, mc.Count)
			}
			w.Flush()
		}
		return nil
	},
}
