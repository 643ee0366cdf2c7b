package models

// Tier is a rank bucket on the board. Its index in Board.Tiers is its rank, 0 being the best.
type Tier struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Accent      string `json:"accent,omitempty"`
}

// Model holds the display attributes of a ranked entry
type Model struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Vendor    string `json:"vendor"`
	Summary   string `json:"summary"`
	Reasoning string `json:"reasoning"`
}

// Snapshot is the board as of one calendar day
type Snapshot struct {
	ID    string             `json:"id"`
	Date  string             `json:"date"`
	Label string             `json:"label"`
	Note  string             `json:"note"`
	Tiers map[string][]Model `json:"tiers"`
}

// Board is a normalized tier list document with its materialized snapshots
type Board struct {
	SchemaVersion int        `json:"schemaVersion"`
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle,omitempty"`
	UpdatedAt     string     `json:"updatedAt,omitempty"`
	Tiers         []Tier     `json:"tiers"`
	Snapshots     []Snapshot `json:"snapshots"`
}

// Timeline is a board plus the per-snapshot movement of every model
type Timeline struct {
	Board
	Deltas []map[string]Delta `json:"deltas"`
}

// Latest returns the index of the most recent snapshot, or -1 when there are none.
func (b *Board) Latest() int {
	return len(b.Snapshots) - 1
}

// TierIndex returns the rank of the tier with the given id.
func (b *Board) TierIndex(tierID string) (int, bool) {
	for i, tier := range b.Tiers {
		if tier.ID == tierID {
			return i, true
		}
	}
	return 0, false
}

// FindModel looks a model up in one snapshot and reports the tier holding it.
func (s *Snapshot) FindModel(modelID string) (Model, string, bool) {
	for tierID, list := range s.Tiers {
		for _, model := range list {
			if model.ID == modelID {
				return model, tierID, true
			}
		}
	}
	return Model{}, "", false
}

// ModelCount is the number of placed models across all tiers.
func (s *Snapshot) ModelCount() int {
	count := 0
	for _, list := range s.Tiers {
		count += len(list)
	}
	return count
}
