package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/statussaver/cmd/tui/ui"
	"github.com/VoxDroid/statussaver/internal/config"
	modelpkg "github.com/VoxDroid/statussaver/internal/tui/model"
	"github.com/VoxDroid/statussaver/internal/watch"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive status browser",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := config.EnsureDataDir(); err != nil {
			return err
		}
		logPath, err := config.LogPath()
		if err != nil {
			return err
		}
		// the alternate screen owns the terminal; logs go to a file
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer func() { _ = logFile.Close() }()

		a, err := newApp(logFile, modelpkg.TabImages)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		ctx := cmd.Context()
		loc, fallback, err := a.location(ctx, cmd)
		if err != nil {
			return err
		}

		opts := ui.Options{Player: a.settings.Player, Logger: a.logger}
		if watchDir, _ := cmd.Flags().GetBool("watch"); watchDir {
			dir := string(loc)
			if dir == "" {
				dir = a.settings.StatusDir
			}
			if fallback || dir == "" {
				a.logger.Warn("watch needs a plain status folder; disabled", "dir", dir, "fallback", fallback)
			} else if changes, err := watch.Watch(ctx, dir, 300*time.Millisecond, a.logger); err != nil {
				a.logger.Warn("watch status folder", "dir", dir, "err", err)
			} else {
				opts.Changes = changes
			}
		}

		if err := a.ctrl.Submit(fetchRequest(loc, fallback)); err != nil {
			return err
		}
		_, err = ui.NewProgram(a.ctrl, opts).Run()
		// FetchSeq is zero until some fetch succeeded
		if s := a.ctrl.State(); s.FetchSeq > 0 {
			a.rememberFallback(s.UsesFallback)
		}
		return err
	},
}

func init() {
	addLocationFlags(tuiCmd)
	tuiCmd.Flags().Bool("watch", false, "Reload when files appear in or leave the status folder")
	rootCmd.AddCommand(tuiCmd)
}
