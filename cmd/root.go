package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meysamhadeli/tierlist/config"
	"github.com/meysamhadeli/tierlist/loader"
	"github.com/meysamhadeli/tierlist/loader/contracts"
	"github.com/meysamhadeli/tierlist/tierlist/models"
	"github.com/meysamhadeli/tierlist/timeline"
	"github.com/meysamhadeli/tierlist/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// RootDependencies is what every subcommand needs once configuration is loaded
type RootDependencies struct {
	Config *config.Config
	Loader contracts.ITimelineLoader
	Cwd    string
	Today  time.Time
}

var rootCmd = &cobra.Command{
	Use:   "tierlist",
	Short: "Replay an LLM tier list changelog into dated boards.",
	Long: `tierlist reads a tier list document, replays its changelog into one board per day,
computes how every model moved between consecutive boards and renders the result in the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Fprintln(cmd.OutOrStdout(), "tierlist version", config.DefaultConfig.Version)
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	cfg, err := config.LoadConfigWithCache(cmd, cwd)
	if err != nil {
		return nil, err
	}

	today, err := cfg.TodayOrNow()
	if err != nil {
		return nil, err
	}

	return &RootDependencies{
		Config: cfg,
		Loader: loader.NewTimelineLoader(cfg.CacheDir, cfg.EnableCache, warn),
		Cwd:    cwd,
		Today:  today,
	}, nil
}

func warn(format string, args ...any) {
	pterm.Warning.WithWriter(os.Stderr).Printfln(format, args...)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadTimeline loads the configured document, with a spinner when stdout is a terminal.
func loadTimeline(ctx context.Context, deps *RootDependencies) (*models.Timeline, error) {
	if !utils.IsTerminal(os.Stdout) {
		return deps.Loader.Load(ctx, deps.Config.DataPath)
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100 * time.Millisecond).WithRemoveWhenDone(true)

	spinnerInstance, _ := spinner.Start("Loading tier list...")
	tl, err := deps.Loader.Load(ctx, deps.Config.DataPath)
	if spinnerInstance != nil {
		_ = spinnerInstance.Stop()
	}
	fmt.Print("\r")

	return tl, err
}

// addSnapshotFlags registers --date and --index on commands that look at one snapshot.
func addSnapshotFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "Show the snapshot in effect on this date (YYYY-MM-DD).")
	cmd.Flags().Int("index", -1, "Show the snapshot at this position on the timeline.")
}

// selectSnapshot picks the snapshot a command works on. --index wins over --date; with
// neither, the latest snapshot that is not after today is used. The index is -1 only for an
// empty timeline. The scrubber is nil when no snapshot has a usable date, and the latest
// snapshot is used then.
func selectSnapshot(cmd *cobra.Command, tl *models.Timeline, today time.Time) (int, *timeline.Scrubber, error) {
	if len(tl.Snapshots) == 0 {
		return -1, nil, nil
	}

	index := -1
	if cmd.Flags().Changed("index") {
		index, _ = cmd.Flags().GetInt("index")
		if index < 0 || index >= len(tl.Snapshots) {
			return -1, nil, fmt.Errorf("index %d is outside the timeline (0-%d)", index, len(tl.Snapshots)-1)
		}
	}

	dates := make([]string, len(tl.Snapshots))
	for i, snapshot := range tl.Snapshots {
		dates[i] = snapshot.Date
	}

	scrubber, err := timeline.NewScrubber(dates, today)
	if err != nil {
		if cmd.Flags().Changed("date") {
			return -1, nil, err
		}
		warn("No snapshot has a usable date; the timebar is hidden.")
		if index < 0 {
			index = tl.Latest()
		}
		return index, nil, nil
	}

	if index >= 0 {
		scrubber.SetDay(scrubber.SnapshotDays()[index])
		return index, scrubber, nil
	}

	if cmd.Flags().Changed("date") {
		date, _ := cmd.Flags().GetString("date")
		if _, err := scrubber.SetDate(date); err != nil {
			return -1, nil, err
		}
	}

	return scrubber.ActiveIndex(), scrubber, nil
}

func timebarWidth() int {
	return max(pterm.GetTerminalWidth()-2, 20)
}
