package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "statussaver",
	Short: "statussaver browses and saves status images and videos",
	Long:  "statussaver lists the status media found in a folder or device backup and copies the ones you keep into a save directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addLocationFlags registers the flags shared by browsing commands.
func addLocationFlags(c *cobra.Command) {
	c.Flags().String("dir", "", "Status folder (defaults to the last used folder, then status_dir from config)")
	c.Flags().Bool("fallback", false, "Treat --dir as a device or backup root and probe the known status folders beneath it (remembered with the location)")
}
