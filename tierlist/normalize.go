package tierlist

import (
	"slices"
	"strings"

	"github.com/meysamhadeli/tierlist/tierlist/models"
)

const (
	defaultTitle  = "LLM tier list"
	defaultAccent = "neutral"
	// changelogSchema is the first schema version whose snapshots are derived from changes.
	changelogSchema = 2
)

// Normalize fills tier defaults and materializes the snapshots of a document. Documents
// from schema 2 on, or any document with changes, are replayed from their changelog;
// older documents keep their literal snapshots, sorted by date.
func Normalize(doc *Document) models.Board {
	board := models.Board{
		SchemaVersion: doc.SchemaVersion,
		Title:         doc.Title,
		Subtitle:      doc.Subtitle,
		UpdatedAt:     doc.UpdatedAt,
	}
	if board.Title == "" {
		board.Title = defaultTitle
	}

	for _, tier := range doc.Tiers {
		if tier.ID == "" {
			continue
		}
		if tier.Label == "" {
			tier.Label = tier.ID
		}
		if tier.Accent == "" {
			tier.Accent = defaultAccent
		}
		board.Tiers = append(board.Tiers, tier)
	}

	if doc.SchemaVersion >= changelogSchema || len(doc.Changes) > 0 {
		board.Snapshots = BuildSnapshots(board.Tiers, doc.Changes)
		return board
	}

	board.Snapshots = legacySnapshots(doc.Snapshots, board.Tiers)
	return board
}

func legacySnapshots(raw []models.Snapshot, tiers []models.Tier) []models.Snapshot {
	snapshots := make([]models.Snapshot, 0, len(raw))
	for _, snapshot := range raw {
		if snapshot.Date == "" {
			continue
		}
		if snapshot.ID == "" {
			snapshot.ID = snapshot.Date
		}
		if snapshot.Label == "" {
			snapshot.Label = snapshot.Date
		}
		snapshots = append(snapshots, EnsureTiers(snapshot, tiers))
	}

	slices.SortStableFunc(snapshots, func(a, b models.Snapshot) int {
		return strings.Compare(a.Date, b.Date)
	})
	return snapshots
}

// EnsureTiers gives a snapshot an entry, possibly empty, for every tier.
func EnsureTiers(snapshot models.Snapshot, tiers []models.Tier) models.Snapshot {
	if snapshot.Tiers == nil {
		snapshot.Tiers = make(map[string][]models.Model, len(tiers))
	}
	for _, tier := range tiers {
		if snapshot.Tiers[tier.ID] == nil {
			snapshot.Tiers[tier.ID] = []models.Model{}
		}
	}
	return snapshot
}

// BuildTimeline normalizes a document and computes the movement of every model.
func BuildTimeline(doc *Document) *models.Timeline {
	board := Normalize(doc)
	return &models.Timeline{
		Board:  board,
		Deltas: ComputeDeltas(board.Snapshots, board.Tiers),
	}
}
