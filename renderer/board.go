package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	styles "github.com/meysamhadeli/tierlist/constants/lipgloss"
	"github.com/meysamhadeli/tierlist/tierlist"
	"github.com/meysamhadeli/tierlist/tierlist/models"
	"github.com/meysamhadeli/tierlist/timeline"
)

var (
	// ErrSnapshotIndex is returned when a snapshot index is outside the timeline.
	ErrSnapshotIndex = errors.New("snapshot index out of range")
	// ErrModelNotFound is returned when a model is not placed on the requested snapshot.
	ErrModelNotFound = errors.New("model not found")
)

const (
	defaultCardWidth  = 30
	tierColumnWidth   = 14
	emptyFieldDisplay = "—"
)

// Options controls how a board is drawn
type Options struct {
	DisplayCap int // models shown per tier, zero or less shows all
	CardWidth  int
	Warn       tierlist.Warner
}

// RenderBoard draws one snapshot of the timeline: header, note and one row per tier.
func RenderBoard(tl *models.Timeline, index int, opts Options) (string, error) {
	if len(tl.Snapshots) == 0 {
		return styles.Muted.Render("No snapshots yet."), nil
	}
	if err := checkIndex(tl, index); err != nil {
		return "", err
	}
	if opts.CardWidth <= 0 {
		opts.CardWidth = defaultCardWidth
	}

	snapshot := tl.Snapshots[index]
	deltas := deltasAt(tl, index)

	tierlist.WarnOverflow(snapshot, tl.Tiers, opts.DisplayCap, opts.Warn)

	sections := []string{renderHeader(tl, index)}
	if snapshot.Note != "" {
		sections = append(sections, styles.Muted.Render(snapshot.Note))
	}
	sections = append(sections, "")

	for _, tier := range tl.Tiers {
		sections = append(sections, renderTierRow(tier, snapshot.Tiers[tier.ID], deltas, opts))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...), nil
}

func renderHeader(tl *models.Timeline, index int) string {
	snapshot := tl.Snapshots[index]

	lines := []string{styles.Title.Render(tl.Title)}
	if tl.Subtitle != "" {
		lines = append(lines, styles.Muted.Render(tl.Subtitle))
	}

	var parts []string
	if snapshot.Label != "" && snapshot.Label != snapshot.Date {
		parts = append(parts, styles.Info.Render(snapshot.Label))
	}
	parts = append(parts, timeline.FormatDate(snapshot.Date))
	if index == tl.Latest() {
		parts = append(parts, styles.LatestBadge.Render("Latest"))
	}
	lines = append(lines, strings.Join(parts, "  "))

	return strings.Join(lines, "\n")
}

func renderTierRow(tier models.Tier, list []models.Model, deltas map[string]models.Delta, opts Options) string {
	accent := styles.AccentColor(tier.Accent)

	labelColumn := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		Width(tierColumnWidth).
		Render(tier.Label)
	if tier.Description != "" {
		description := styles.Muted.Width(tierColumnWidth).Render(tier.Description)
		labelColumn = lipgloss.JoinVertical(lipgloss.Left, labelColumn, description)
	}

	cardStyle := styles.BoxStyle.BorderForeground(accent).Width(opts.CardWidth)

	if len(list) == 0 {
		placeholder := cardStyle.Render(styles.Muted.Render("No models yet"))
		return lipgloss.JoinHorizontal(lipgloss.Top, labelColumn, " ", placeholder)
	}

	visible, overflow := tierlist.VisibleModels(list, opts.DisplayCap)

	columns := []string{labelColumn}
	for _, model := range visible {
		columns = append(columns, " ", cardStyle.Render(renderCard(model, deltas)))
	}
	if overflow {
		columns = append(columns, " ", styles.Muted.Render(fmt.Sprintf("+%d more", len(list)-len(visible))))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func renderCard(model models.Model, deltas map[string]models.Delta) string {
	name := styles.Title.Render(model.Name)
	if badge := renderBadge(deltas[tierlist.ModelKey(model)]); badge != "" {
		name += " " + badge
	}

	vendor := model.Vendor
	if vendor == "" {
		vendor = emptyFieldDisplay
	}

	lines := []string{name, styles.Muted.Render(vendor)}
	if model.Summary != "" {
		lines = append(lines, model.Summary)
	}
	return strings.Join(lines, "\n")
}

func renderBadge(delta models.Delta) string {
	badge, ok := tierlist.FormatDelta(delta)
	if !ok {
		return ""
	}
	switch badge.Direction {
	case "up":
		return styles.DeltaUp.Render(badge.Text)
	case "down":
		return styles.DeltaDown.Render(badge.Text)
	default:
		return styles.DeltaNew.Render(badge.Text)
	}
}

func checkIndex(tl *models.Timeline, index int) error {
	if index < 0 || index >= len(tl.Snapshots) {
		return fmt.Errorf("%w: %d (timeline has %d snapshots)", ErrSnapshotIndex, index, len(tl.Snapshots))
	}
	return nil
}

func deltasAt(tl *models.Timeline, index int) map[string]models.Delta {
	if index < len(tl.Deltas) {
		return tl.Deltas[index]
	}
	return nil
}
