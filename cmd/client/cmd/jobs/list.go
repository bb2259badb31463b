package jobs

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"applytrack/internal/domain/grid"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the job application table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, table, err := loadTable(cmd)
		if err != nil {
			return err
		}

		view := table.View()
		if table.EmptyState() {
			fmt.Println("No jobs yet. Add one with: applytrack jobs add")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tCompany\tTitle\tApplicants\tStatus\tApplied\tFollow Up\tFollow Up Status\tFlags\t")

		for _, row := range view {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				row.Number,
				truncate(row.Fields.CompanyName, 24),
				truncate(row.Fields.Title, 24),
				row.Fields.NumberOfApplicants,
				row.Fields.Status,
				row.Fields.ApplicationDate,
				row.Fields.FollowUpDate,
				row.Fields.FollowUpStatus,
				flags(row.Marks),
			)
		}
		w.Flush()

		fmt.Printf("\nTotal: %d\n", len(view))

		dupes := 0
		for _, row := range view {
			if row.Marks.Duplicate {
				dupes++
			}
		}
		if dupes > 0 {
			color.Yellow("Possible duplicates flagged: %d rows (marked D)", dupes)
		}

		return nil
	},
}

// flags renders the derived marks as single letters: D duplicate,
// O follow-up overdue, + favorable competition, - unfavorable, L active
// link.
func flags(m grid.Marks) string {
	var b strings.Builder
	if m.Duplicate {
		b.WriteByte('D')
	}
	if m.Overdue {
		b.WriteByte('O')
	}
	switch m.Competition {
	case grid.CompetitionFavorable:
		b.WriteByte('+')
	case grid.CompetitionUnfavorable:
		b.WriteByte('-')
	}
	if m.LinkActive {
		b.WriteByte('L')
	}
	return b.String()
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
