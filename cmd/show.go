package cmd

import (
	"fmt"

	"github.com/meysamhadeli/tierlist/renderer"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Render the board as of a date or snapshot.",
	Long: `The 'show' command renders one snapshot of the board with the timeline below it.
By default the latest snapshot is shown; use --date to see the board that was in effect on a given day,
or --index to pick a snapshot by its position.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleShowCommand(cmd, deps)
	},
}

func init() {
	addSnapshotFlags(showCmd)
	rootCmd.AddCommand(showCmd)
}

func handleShowCommand(cmd *cobra.Command, deps *RootDependencies) error {
	tl, err := loadTimeline(commandContext(cmd), deps)
	if err != nil {
		return err
	}

	index, scrubber, err := selectSnapshot(cmd, tl, deps.Today)
	if err != nil {
		return err
	}
	if index < 0 {
		index = 0
	}

	board, err := renderer.RenderBoard(tl, index, renderer.Options{
		DisplayCap: deps.Config.DisplayCap,
		Warn:       warn,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, board)
	if scrubber != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderer.RenderTimebar(scrubber, timebarWidth()))
	}

	return nil
}
