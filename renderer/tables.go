package renderer

import (
	"fmt"
	"strconv"

	styles "github.com/meysamhadeli/tierlist/constants/lipgloss"
	"github.com/meysamhadeli/tierlist/tierlist"
	"github.com/meysamhadeli/tierlist/tierlist/models"
	"github.com/meysamhadeli/tierlist/timeline"
	"github.com/pterm/pterm"
)

// RenderTimelineList lists every snapshot with its model count and number of movements.
func RenderTimelineList(tl *models.Timeline) (string, error) {
	if len(tl.Snapshots) == 0 {
		return styles.Muted.Render("No snapshots yet."), nil
	}

	data := pterm.TableData{{"#", "Date", "Label", "Models", "Changes", ""}}
	for i, snapshot := range tl.Snapshots {
		latest := ""
		if i == tl.Latest() {
			latest = "Latest"
		}
		data = append(data, []string{
			strconv.Itoa(i),
			timeline.FormatDate(snapshot.Date),
			snapshot.Label,
			strconv.Itoa(snapshot.ModelCount()),
			strconv.Itoa(len(deltasAt(tl, i))),
			latest,
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}

// RenderDeltas tables the movements of one snapshot against the previous one, in board order.
func RenderDeltas(tl *models.Timeline, index int) (string, error) {
	if err := checkIndex(tl, index); err != nil {
		return "", err
	}
	if index == 0 {
		return styles.Muted.Render("First snapshot; nothing to compare against."), nil
	}

	snapshot := tl.Snapshots[index]
	deltas := deltasAt(tl, index)

	data := pterm.TableData{{"Model", "Tier", "Change", "Description"}}
	for _, tier := range tl.Tiers {
		for _, model := range snapshot.Tiers[tier.ID] {
			badge, ok := tierlist.FormatDelta(deltas[tierlist.ModelKey(model)])
			if !ok {
				continue
			}
			data = append(data, []string{model.Name, tier.Label, badge.Text, badge.Description})
		}
	}

	if len(data) == 1 {
		return styles.Muted.Render(fmt.Sprintf("No movement on %s.", timeline.FormatDate(snapshot.Date))), nil
	}

	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}
