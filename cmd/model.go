package cmd

import (
	"fmt"

	"github.com/meysamhadeli/tierlist/renderer"
	"github.com/spf13/cobra"
)

var modelCmd = &cobra.Command{
	Use:   "model <id>",
	Short: "Show one model, its reasoning and its placement history.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}

		tl, err := loadTimeline(commandContext(cmd), deps)
		if err != nil {
			return err
		}

		index, _, err := selectSnapshot(cmd, tl, deps.Today)
		if err != nil {
			return err
		}
		if index < 0 {
			return fmt.Errorf("%w: %q (the timeline is empty)", renderer.ErrModelNotFound, args[0])
		}

		detail, err := renderer.RenderModel(tl, index, args[0], deps.Config.WordWrap)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), detail)
		return nil
	},
}

func init() {
	addSnapshotFlags(modelCmd)
	rootCmd.AddCommand(modelCmd)
}
