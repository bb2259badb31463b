package jobs

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"applytrack/internal/domain/job"
)

var SetCmd = &cobra.Command{
	Use:   "set <row> <field> <value>",
	Short: "Edit a field of a job application",
	Long: `Sets one field on the given row and saves it. Field names match the
column names: companyName, title, numberOfApplicants, jobLink,
hiringManager, status, applicationDate, responseDate, followUpDate,
followUpStatus, referral.`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, table, err := loadTable(cmd)
		if err != nil {
			return err
		}

		row, err := rowArg(table, args[0])
		if err != nil {
			return err
		}

		field := resolveField(args[1])
		if field == "" {
			return fmt.Errorf("unknown field %q", args[1])
		}
		value := strings.Join(args[2:], " ")

		if err := table.SetField(row, field, value); err != nil {
			return err
		}
		return table.Blur(cmd.Context(), row, field)
	},
}

// resolveField matches a field name case-insensitively.
func resolveField(name string) string {
	for _, f := range job.FieldNames() {
		if strings.EqualFold(f, name) {
			return f
		}
	}
	return ""
}
