package renderer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	styles "github.com/meysamhadeli/tierlist/constants/lipgloss"
	"github.com/meysamhadeli/tierlist/tierlist"
	"github.com/meysamhadeli/tierlist/tierlist/models"
	"github.com/meysamhadeli/tierlist/timeline"
	"github.com/meysamhadeli/tierlist/utils"
	"github.com/pterm/pterm"
)

// RenderModel shows one model as placed on a snapshot: attributes, movement, reasoning
// rendered as markdown, and its placement history up to that snapshot.
func RenderModel(tl *models.Timeline, index int, modelID string, wordWrap int) (string, error) {
	if err := checkIndex(tl, index); err != nil {
		return "", err
	}

	snapshot := tl.Snapshots[index]
	model, tierID, found := snapshot.FindModel(modelID)
	if !found {
		return "", fmt.Errorf("%w: %q on %s", ErrModelNotFound, modelID, snapshot.Date)
	}

	var tier models.Tier
	if i, ok := tl.TierIndex(tierID); ok {
		tier = tl.Tiers[i]
	}

	title := styles.Title.Render(model.Name)
	if badge := renderBadge(deltasAt(tl, index)[tierlist.ModelKey(model)]); badge != "" {
		title += " " + badge
	}

	vendor := model.Vendor
	if vendor == "" {
		vendor = emptyFieldDisplay
	}

	tierLabel := lipgloss.NewStyle().Foreground(styles.AccentColor(tier.Accent)).Bold(true).Render(tier.Label)

	lines := []string{
		title,
		styles.Muted.Render(model.ID + " · " + vendor),
		fmt.Sprintf("%s tier as of %s", tierLabel, timeline.FormatDate(snapshot.Date)),
	}
	if badge, ok := tierlist.FormatDelta(deltasAt(tl, index)[tierlist.ModelKey(model)]); ok {
		lines = append(lines, styles.Muted.Render(badge.Description))
	}
	if model.Summary != "" {
		lines = append(lines, "", model.Summary)
	}

	lines = append(lines, "", styles.Info.Render("Reasoning"))
	if strings.TrimSpace(model.Reasoning) == "" {
		lines = append(lines, styles.Muted.Render("No reasoning recorded."))
	} else {
		reasoning, err := utils.RenderMarkdown(model.Reasoning, wordWrap)
		if err != nil {
			return "", err
		}
		lines = append(lines, reasoning)
	}

	history, err := renderHistory(tl, index, modelID)
	if err != nil {
		return "", err
	}
	lines = append(lines, "", styles.Info.Render("History"), history)

	return strings.Join(lines, "\n"), nil
}

func renderHistory(tl *models.Timeline, index int, modelID string) (string, error) {
	data := pterm.TableData{{"Date", "Tier", "Spot", "Change"}}

	for i := 0; i <= index; i++ {
		snapshot := tl.Snapshots[i]
		for _, tier := range tl.Tiers {
			for position, model := range snapshot.Tiers[tier.ID] {
				if model.ID != modelID {
					continue
				}
				change := ""
				if badge, ok := tierlist.FormatDelta(deltasAt(tl, i)[tierlist.ModelKey(model)]); ok {
					change = badge.Text
				}
				data = append(data, []string{
					timeline.FormatDate(snapshot.Date),
					tier.Label,
					fmt.Sprintf("#%d", position+1),
					change,
				})
			}
		}
	}

	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}
