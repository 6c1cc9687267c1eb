package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	modelpkg "github.com/VoxDroid/statussaver/internal/tui/model"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show recorded analytics events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		a, err := newApp(cmd.ErrOrStderr(), modelpkg.TabImages)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		counts, err := a.recorder.Counts()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(counts) == 0 {
			fmt.Fprintln(out, "no events recorded")
			return nil
		}
		fmt.Fprintln(out, "Totals:")
		for _, c := range counts {
			fmt.Fprintf(out, "  %-24s %s\n", c.Name, humanize.Comma(int64(c.Count)))
		}

		recent, err := a.recorder.Recent(limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Recent:")
		for _, e := range recent {
			fmt.Fprintf(out, "  %s  %s%s\n", humanize.Time(e.CreatedAt), e.Name, formatParams(e.Params))
		}
		return nil
	},
}

func formatParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return " " + strings.Join(parts, " ")
}

func init() {
	analyticsCmd.Flags().Int("limit", 20, "Number of recent events to show")
	rootCmd.AddCommand(analyticsCmd)
}
