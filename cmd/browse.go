package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/meysamhadeli/tierlist/constants/lipgloss"
	"github.com/meysamhadeli/tierlist/renderer"
	"github.com/meysamhadeli/tierlist/tierlist/models"
	"github.com/meysamhadeli/tierlist/timeline"
	"github.com/meysamhadeli/tierlist/utils"
	"github.com/spf13/cobra"
)

// browseCmd: tierlist browse
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Step through the timeline interactively.",
	Long: `The 'browse' command opens an interactive session over the timeline. Move between snapshots,
jump to a date, and open model details without reloading the document. Type /help for the list of commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleBrowseCommand(cmd, deps)
	},
}

func init() {
	addSnapshotFlags(browseCmd)
	rootCmd.AddCommand(browseCmd)
}

const browseHelp = `/next  Next snapshot
/prev  Previous snapshot
/first  First snapshot
/latest  Latest snapshot
/date <YYYY-MM-DD>  Board in effect on a date
/index <n>  Snapshot by position
/model <id>  Model details
/deltas  Movements on the current snapshot
/timeline  List all snapshots
/clear  Clear screen
/exit  Exit from browse`

type browseSession struct {
	deps     *RootDependencies
	timeline *models.Timeline
	scrubber *timeline.Scrubber
	index    int
	out      io.Writer
}

func handleBrowseCommand(cmd *cobra.Command, deps *RootDependencies) error {
	ctx, cancel := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	out := cmd.OutOrStdout()

	tl, err := loadTimeline(ctx, deps)
	if err != nil {
		return err
	}

	index, scrubber, err := selectSnapshot(cmd, tl, deps.Today)
	if err != nil {
		return err
	}
	if index < 0 {
		fmt.Fprintln(out, lipgloss.Muted.Render("No snapshots yet."))
		return nil
	}
	if scrubber == nil {
		return fmt.Errorf("browse needs at least one snapshot dated YYYY-MM-DD")
	}

	session := &browseSession{deps: deps, timeline: tl, scrubber: scrubber, index: index, out: out}

	reader := bufio.NewReader(cmd.InOrStdin())

	fmt.Fprintln(out, lipgloss.BoxStyle.Render("/help  Help for browse subcommand"))
	if err := session.render(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		userInput, err := utils.InputPromptWithContext(ctx, reader)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(out, lipgloss.Yellow.Render("🔄 Exiting..."))
				return nil
			}
			if errors.Is(err, utils.ErrInputClosed) {
				return nil
			}
			fmt.Fprintln(out, lipgloss.Red.Render(fmt.Sprintf("%v", err)))
			continue
		}

		if userInput == "" {
			continue
		}

		exit, err := session.handle(userInput)
		if err != nil {
			fmt.Fprintln(out, lipgloss.Red.Render(fmt.Sprintf("%v", err)))
			continue
		}
		if exit {
			return nil
		}
	}
}

// handle runs one browse command and reports whether the session should end.
func (s *browseSession) handle(input string) (bool, error) {
	command, argument, _ := strings.Cut(strings.TrimSpace(input), " ")
	argument = strings.TrimSpace(argument)

	switch command {
	case "/help":
		fmt.Fprintln(s.out, lipgloss.BoxStyle.Render(browseHelp))
		return false, nil
	case "/clear":
		fmt.Fprint(s.out, "\033[2J\033[H")
		return false, nil
	case "/exit":
		return true, nil
	case "/next":
		return false, s.step(1)
	case "/prev":
		return false, s.step(-1)
	case "/first":
		s.scrubber.SetDay(0)
		return false, s.moveTo(s.scrubber.ActiveIndex())
	case "/latest":
		s.scrubber.SetDay(s.scrubber.DaySpan())
		return false, s.moveTo(s.scrubber.ActiveIndex())
	case "/date":
		if argument == "" {
			return false, fmt.Errorf("usage: /date <YYYY-MM-DD>")
		}
		if _, err := s.scrubber.SetDate(argument); err != nil {
			return false, err
		}
		return false, s.moveTo(s.scrubber.ActiveIndex())
	case "/index":
		index, err := strconv.Atoi(argument)
		if err != nil || index < 0 || index >= len(s.timeline.Snapshots) {
			return false, fmt.Errorf("usage: /index <0-%d>", len(s.timeline.Snapshots)-1)
		}
		s.scrubber.SetDay(s.scrubber.SnapshotDays()[index])
		return false, s.moveTo(index)
	case "/model":
		if argument == "" {
			return false, fmt.Errorf("usage: /model <id>")
		}
		detail, err := renderer.RenderModel(s.timeline, s.index, argument, s.deps.Config.WordWrap)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, detail)
		return false, nil
	case "/deltas":
		table, err := renderer.RenderDeltas(s.timeline, s.index)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, table)
		return false, nil
	case "/timeline":
		list, err := renderer.RenderTimelineList(s.timeline)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, list)
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %q, type /help for the list of commands", command)
	}
}

func (s *browseSession) step(direction int) error {
	before := s.index
	s.scrubber.Step(direction)
	if s.scrubber.ActiveIndex() == before {
		edge := "latest"
		if direction < 0 {
			edge = "first"
		}
		fmt.Fprintln(s.out, lipgloss.Muted.Render(fmt.Sprintf("Already at the %s snapshot.", edge)))
		return nil
	}
	return s.moveTo(s.scrubber.ActiveIndex())
}

func (s *browseSession) moveTo(index int) error {
	s.index = index
	return s.render()
}

func (s *browseSession) render() error {
	board, err := renderer.RenderBoard(s.timeline, s.index, renderer.Options{
		DisplayCap: s.deps.Config.DisplayCap,
		Warn:       warn,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, board)
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, renderer.RenderTimebar(s.scrubber, timebarWidth()))
	return nil
}
