package cmd

import (
	"bufio"
	"fmt"
	"time"

	"github.com/meysamhadeli/tierlist/config"
	"github.com/meysamhadeli/tierlist/constants/lipgloss"
	"github.com/meysamhadeli/tierlist/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// resetCacheCmd represents the reset-cache command
var resetCacheCmd = &cobra.Command{
	Use:   "reset-cache",
	Short: "Reset the timeline cache",
	Long: `The 'reset-cache' command removes all cached timelines from the cache directory.
Use this command to clear a corrupted cache or to force the document to be replayed again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		stats, _ := cmd.Flags().GetBool("stats")

		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleResetCacheCommand(cmd, rootDependencies, force, stats)
	},
}

func init() {
	resetCacheCmd.Flags().BoolP("force", "f", false, "Force cache reset without confirmation")
	resetCacheCmd.Flags().BoolP("stats", "s", false, "Show cache statistics instead of resetting")

	rootCmd.AddCommand(resetCacheCmd)
}

func handleResetCacheCommand(cmd *cobra.Command, rootDependencies *RootDependencies, force bool, showStats bool) error {
	out := cmd.OutOrStdout()

	if !rootDependencies.Loader.CacheEnabled() {
		fmt.Fprintln(out, lipgloss.Yellow.Render("Cache is disabled. No cache to reset."))
		return nil
	}

	if showStats {
		cacheStats, err := rootDependencies.Loader.GetCacheStats()
		if err != nil {
			return fmt.Errorf("could not read cache statistics: %w", err)
		}

		fmt.Fprintln(out, lipgloss.Info.Render("Cache Statistics:"))
		if dir, ok := cacheStats["cache_dir"].(string); ok {
			fmt.Fprintf(out, "  Cache Directory: %s\n", dir)
		}
		if files, ok := cacheStats["cache_files"].(int); ok {
			fmt.Fprintf(out, "  Cached Timelines: %d\n", files)
		}
		if size, ok := cacheStats["total_size"].(int64); ok {
			fmt.Fprintf(out, "  Total Size: %.2f KB\n", float64(size)/1024)
		}
		if hitRate, ok := cacheStats["hit_rate"].(float64); ok {
			fmt.Fprintf(out, "  Hit Rate: %.1f%%\n", hitRate)
		}
		if files, ok := config.GetConfigCacheStats()["cached_files"].(int); ok {
			fmt.Fprintf(out, "  Cached Config Files: %d\n", files)
		}
		return nil
	}

	if !force {
		confirmed, err := utils.ConfirmPrompt("Are you sure you want to reset the timeline cache?", bufio.NewReader(cmd.InOrStdin()))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, lipgloss.Yellow.Render("Cache reset cancelled."))
			return nil
		}
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100 * time.Millisecond).WithRemoveWhenDone(true).WithWriter(out)

	spinnerInstance, _ := spinner.Start("Resetting timeline cache...")
	err := rootDependencies.Loader.ClearCache()
	config.ClearConfigCache()
	if spinnerInstance != nil {
		_ = spinnerInstance.Stop()
	}
	fmt.Fprint(out, "\r")

	if err != nil {
		return fmt.Errorf("error resetting cache: %w", err)
	}

	fmt.Fprintln(out, lipgloss.Green.Render("✓ Timeline cache has been successfully reset!"))
	return nil
}
