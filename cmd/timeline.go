package cmd

import (
	"fmt"

	"github.com/meysamhadeli/tierlist/renderer"
	"github.com/spf13/cobra"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "List every snapshot on the timeline.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}

		tl, err := loadTimeline(commandContext(cmd), deps)
		if err != nil {
			return err
		}

		list, err := renderer.RenderTimelineList(tl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), list)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}
