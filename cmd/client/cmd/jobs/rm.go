package jobs

import (
	"github.com/spf13/cobra"
)

var RmCmd = &cobra.Command{
	Use:   "rm <row>",
	Short: "Delete a job application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, table, err := loadTable(cmd)
		if err != nil {
			return err
		}

		row, err := rowArg(table, args[0])
		if err != nil {
			return err
		}
		return table.Remove(cmd.Context(), row)
	},
}
