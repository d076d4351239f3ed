package cli

import (
	"github.com/spf13/cobra"

	"github.com/andy/billfold/internal/app"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "billfold",
	Short: "An invoice dashboard for your terminal",
	Long: `Billfold manages invoices held by a remote invoice service: browse,
create, edit, mark paid, and export them as PDF.

By default, running billfold without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.AddCommand(invoicesCmd)
	rootCmd.AddCommand(draftsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tuiCmd)
}
