package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/meysamhadeli/tierlist/constants/lipgloss"
	"github.com/meysamhadeli/tierlist/loader"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the board whenever the document changes.",
	Long: `The 'watch' command renders the board like 'show' and renders it again every time the
tier list document is saved. Parse errors are reported without stopping the watch.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleWatchCommand(cmd, deps)
	},
}

func init() {
	addSnapshotFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func handleWatchCommand(cmd *cobra.Command, deps *RootDependencies) error {
	ctx, cancel := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	out := cmd.OutOrStdout()

	watcher, err := loader.NewWatcher(deps.Config.DataPath)
	if err != nil {
		return err
	}

	render := func() {
		if err := handleShowCommand(cmd, deps); err != nil {
			fmt.Fprintln(out, lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		}
		fmt.Fprintln(out, lipgloss.Muted.Render(fmt.Sprintf("Watching %s (Ctrl+C to stop)", deps.Config.DataPath)))
	}

	render()

	err = watcher.Run(ctx, func() {
		fmt.Fprint(out, "\033[2J\033[H")
		render()
	}, func(err error) {
		warn("Watcher error: %v", err)
	})

	fmt.Fprintln(out, lipgloss.Yellow.Render("Stopped watching."))
	return err
}
