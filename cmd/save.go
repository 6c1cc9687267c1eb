package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VoxDroid/statussaver/internal/tui/adapters"
	modelpkg "github.com/VoxDroid/statussaver/internal/tui/model"
)

var saveCmd = &cobra.Command{
	Use:   "save <name>...",
	Short: "Save status media by file name",
	Long:  "Copy one or more status files into save_dir. Example:\n  statussaver save IMG-20260101-WA0001.jpg",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.ErrOrStderr(), tabFor(cmd))
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		ctx := cmd.Context()
		loc, fallback, err := a.location(ctx, cmd)
		if err != nil {
			return err
		}
		s, err := a.fetch(ctx, loc, fallback)
		if err != nil {
			return err
		}

		var failed int
		for _, name := range args {
			it, ok := findItem(s.Items, name)
			if !ok {
				cmd.PrintErrf("%s: no %s with that name\n", name, s.SelectedTab)
				failed++
				continue
			}
			note, err := awaitSave(ctx, a.ctrl, it)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, note.Message)
			if note.Level == modelpkg.LevelError {
				failed++
			}
		}
		a.logEvent(ctx, "cli_save", map[string]string{"requested": fmt.Sprint(len(args)), "failed": fmt.Sprint(failed)})
		if failed > 0 {
			return fmt.Errorf("%d of %d saves failed", failed, len(args))
		}
		return nil
	},
}

func findItem(items []adapters.MediaItem, name string) (adapters.MediaItem, bool) {
	for _, it := range items {
		if it.Name == name {
			return it, true
		}
	}
	return adapters.MediaItem{}, false
}

// awaitSave submits a save and returns the notification it produces.
func awaitSave(ctx context.Context, ctrl *modelpkg.Controller, it adapters.MediaItem) (modelpkg.Notify, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := ctrl.ObserveEvents(ctx)
	if err := ctrl.Submit(modelpkg.RequestSave{Item: it}); err != nil {
		return modelpkg.Notify{}, err
	}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return modelpkg.Notify{}, modelpkg.ErrClosed
			}
			if n, isNote := ev.(modelpkg.Notify); isNote && (n.Message == modelpkg.MsgSaved || n.Message == modelpkg.MsgSaveFailed) {
				return n, nil
			}
		case <-ctx.Done():
			return modelpkg.Notify{}, errors.Join(ctx.Err(), fmt.Errorf("save %s", it.Name))
		}
	}
}

func init() {
	addLocationFlags(saveCmd)
	saveCmd.Flags().Bool("videos", false, "Look the names up among videos instead of images")
	rootCmd.AddCommand(saveCmd)
}
