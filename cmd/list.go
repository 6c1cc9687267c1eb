package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type listedItem struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Kind    string    `json:"kind"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List status images or videos",
	Long:  "List status media, newest first. Examples:\n  statussaver list --dir ~/phone/.Statuses\n  statussaver list --videos --json",
	RunE: func(cmd *cobra.Command, _ []string) error {
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
		a.logEvent(ctx, "cli_list", map[string]string{"tab": s.SelectedTab.String(), "count": fmt.Sprint(len(s.Items))})

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			items := make([]listedItem, 0, len(s.Items))
			for _, it := range s.Items {
				items = append(items, listedItem{Name: it.Name, Path: string(it.Locator), Kind: string(it.Kind), Size: it.Size, ModTime: it.ModTime})
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		}
		if len(s.Items) == 0 {
			fmt.Fprintf(out, "no %s found\n", s.SelectedTab)
			return nil
		}
		for _, it := range s.Items {
			fmt.Fprintf(out, "- %s  %s  %s\n", it.Name, humanize.Bytes(uint64(it.Size)), humanize.Time(it.ModTime))
		}
		return nil
	},
}

func init() {
	addLocationFlags(listCmd)
	listCmd.Flags().Bool("videos", false, "List videos instead of images")
	listCmd.Flags().Bool("json", false, "Print JSON")
	rootCmd.AddCommand(listCmd)
}
