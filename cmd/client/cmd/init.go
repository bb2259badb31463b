package cmd

import (
	"applytrack/cmd/client/cmd/admin"
	"applytrack/cmd/client/cmd/auth"
	"applytrack/cmd/client/cmd/jobs"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	rootCmd.AddCommand(jobs.JobsCmd)
	jobs.JobsCmd.AddCommand(jobs.ListCmd)
	jobs.JobsCmd.AddCommand(jobs.AddCmd)
	jobs.JobsCmd.AddCommand(jobs.SetCmd)
	jobs.JobsCmd.AddCommand(jobs.RmCmd)
	jobs.JobsCmd.AddCommand(jobs.ExportCmd)
	jobs.JobsCmd.AddCommand(jobs.StatsCmd)

	rootCmd.AddCommand(admin.AdminCmd)
	admin.AdminCmd.AddCommand(admin.UsersCmd)
	admin.AdminCmd.AddCommand(admin.JobsCmd)
}
