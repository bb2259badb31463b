package jobs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var exportDir string

var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export job applications to CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		filename, data, err := app.ExportCSV(cmd.Context())
		if err != nil {
			return err
		}

		path := filepath.Join(exportDir, filename)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}

		fmt.Printf("Exported to %s\n", path)
		return nil
	},
}

func init() {
	ExportCmd.Flags().StringVarP(&exportDir, "dir", "d", ".", "directory to write the file to")
}
