package cmd

import (
	"fmt"

	"github.com/meysamhadeli/tierlist/renderer"
	"github.com/spf13/cobra"
)

var deltasCmd = &cobra.Command{
	Use:   "deltas",
	Short: "Show how models moved since the previous snapshot.",
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

		index, _, err := selectSnapshot(cmd, tl, deps.Today)
		if err != nil {
			return err
		}
		if index < 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No snapshots yet.")
			return nil
		}

		table, err := renderer.RenderDeltas(tl, index)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), table)
		return nil
	},
}

func init() {
	addSnapshotFlags(deltasCmd)
	rootCmd.AddCommand(deltasCmd)
}
