package jobs

import (
	"fmt"

	"github.com/spf13/cobra"

	"applytrack/internal/domain/job"
)

var addFlags = map[string]*string{
	job.FieldCompanyName:        new(string),
	job.FieldTitle:              new(string),
	job.FieldNumberOfApplicants: new(string),
	job.FieldJobLink:            new(string),
	job.FieldHiringManager:      new(string),
	job.FieldStatus:             new(string),
	job.FieldApplicationDate:    new(string),
	job.FieldResponseDate:       new(string),
	job.FieldFollowUpDate:       new(string),
	job.FieldFollowUpStatus:     new(string),
	job.FieldReferral:           new(string),
}

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a job application",
	Long: `Adds a row to the table. Fields set via flags are filled in;
setting status to Applied fills the application and follow-up dates
automatically.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, table, err := loadTable(cmd)
		if err != nil {
			return err
		}

		row := table.AddDraftRow()
		if row == nil {
			return fmt.Errorf("failed to add row")
		}

		for _, name := range job.FieldNames() {
			value := *addFlags[name]
			if value == "" {
				continue
			}
			if err := table.SetField(row, name, value); err != nil {
				return fmt.Errorf("field %s: %w", name, err)
			}
		}

		if err := table.FlushSave(cmd.Context(), row); err != nil {
			return err
		}

		if row.ID() == "" {
			fmt.Println("Empty row added locally; fill fields with: applytrack jobs set")
		}
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVar(addFlags[job.FieldCompanyName], "company", "", "company name")
	AddCmd.Flags().StringVar(addFlags[job.FieldTitle], "title", "", "job title")
	AddCmd.Flags().StringVar(addFlags[job.FieldNumberOfApplicants], "applicants", "", "number of applicants")
	AddCmd.Flags().StringVar(addFlags[job.FieldJobLink], "link", "", "job posting link")
	AddCmd.Flags().StringVar(addFlags[job.FieldHiringManager], "manager", "", "hiring manager")
	AddCmd.Flags().StringVar(addFlags[job.FieldStatus], "status", "", "application status")
	AddCmd.Flags().StringVar(addFlags[job.FieldApplicationDate], "applied", "", "application date (YYYY-MM-DD)")
	AddCmd.Flags().StringVar(addFlags[job.FieldResponseDate], "response", "", "response date (YYYY-MM-DD)")
	AddCmd.Flags().StringVar(addFlags[job.FieldFollowUpDate], "follow-up", "", "follow-up date (YYYY-MM-DD)")
	AddCmd.Flags().StringVar(addFlags[job.FieldFollowUpStatus], "follow-up-status", "", "follow-up status")
	AddCmd.Flags().StringVar(addFlags[job.FieldReferral], "referral", "", "referral status")
}
