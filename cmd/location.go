package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/statussaver/internal/prefs"
	"github.com/VoxDroid/statussaver/internal/tui/adapters"
	modelpkg "github.com/VoxDroid/statussaver/internal/tui/model"
)

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Show or change the remembered status folder",
}

var locationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the remembered status folder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.ErrOrStderr(), modelpkg.TabImages)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		loc, err := a.prefs.Locator(cmd.Context())
		if err != nil {
			return err
		}
		fallback, err := a.repo.GetBool(prefs.KeyLastFallback)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch {
		case loc != "" && fallback:
			fmt.Fprintf(out, "%s (fallback)\n", loc)
		case loc != "":
			fmt.Fprintln(out, loc)
		case a.settings.StatusDir != "":
			fmt.Fprintf(out, "%s (from config)\n", a.settings.StatusDir)
		default:
			fmt.Fprintln(out, "no location set")
		}
		return nil
	},
}

var locationSetCmd = &cobra.Command{
	Use:   "set <dir>",
	Short: "Remember a status folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		a, err := newApp(cmd.ErrOrStderr(), modelpkg.TabImages)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		fallback, _ := cmd.Flags().GetBool("fallback")
		if err := a.prefs.SetLocator(cmd.Context(), adapters.Locator(dir)); err != nil {
			return fmt.Errorf("set location: %w", err)
		}
		if err := a.repo.SetBool(prefs.KeyLastFallback, fallback); err != nil {
			return fmt.Errorf("set location: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "location set to %s\n", dir)
		return nil
	},
}

var locationClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the remembered status folder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.ErrOrStderr(), modelpkg.TabImages)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if err := a.prefs.SetLocator(cmd.Context(), ""); err != nil {
			return fmt.Errorf("clear location: %w", err)
		}
		if err := a.repo.SetBool(prefs.KeyLastFallback, false); err != nil {
			return fmt.Errorf("clear location: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "location cleared")
		return nil
	},
}

func init() {
	locationSetCmd.Flags().Bool("fallback", false, "The folder is a device or backup root")
	locationCmd.AddCommand(locationShowCmd, locationSetCmd, locationClearCmd)
	rootCmd.AddCommand(locationCmd)
}
