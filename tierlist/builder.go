package tierlist

import (
	"fmt"
	"slices"

	"github.com/meysamhadeli/tierlist/tierlist/models"
)

// ReplayState is the running board and model registry while a changelog is replayed.
// A model id sits in at most one tier at any time.
type ReplayState struct {
	tierIDs  []string
	board    map[string][]string
	registry map[string]models.Model
}

// NewReplayState creates an empty board with one slot per tier.
func NewReplayState(tiers []models.Tier) *ReplayState {
	state := &ReplayState{
		board:    make(map[string][]string, len(tiers)),
		registry: make(map[string]models.Model),
	}
	for _, tier := range tiers {
		if _, exists := state.board[tier.ID]; exists {
			continue
		}
		state.tierIDs = append(state.tierIDs, tier.ID)
		state.board[tier.ID] = nil
	}
	return state
}

// BuildSnapshots replays changes into one snapshot per distinct change date.
func BuildSnapshots(tiers []models.Tier, changes []models.Change) []models.Snapshot {
	state := NewReplayState(tiers)
	days := MergeByDay(changes)

	snapshots := make([]models.Snapshot, 0, len(days))
	for dayIndex, day := range days {
		snapshots = append(snapshots, state.Step(day, dayIndex))
	}
	return snapshots
}

// Step applies every action of one merged day and freezes the resulting board.
func (s *ReplayState) Step(day models.Change, dayIndex int) models.Snapshot {
	for _, action := range day.Actions {
		s.Apply(action)
	}
	return s.Snapshot(day, dayIndex)
}

// Apply mutates the state with a single action. Invalid actions are ignored.
func (s *ReplayState) Apply(action models.Action) {
	switch a := action.(type) {
	case models.UpsertModel:
		s.upsert(a.Model)
	case models.Place:
		s.place(a)
	case models.Remove:
		if a.ID == "" {
			return
		}
		s.removeFromAllTiers(a.ID)
		if a.Purge {
			delete(s.registry, a.ID)
		}
	case *models.UpsertModel:
		if a != nil {
			s.Apply(*a)
		}
	case *models.Place:
		if a != nil {
			s.Apply(*a)
		}
	case *models.Remove:
		if a != nil {
			s.Apply(*a)
		}
	default:
		// nil and anything else is a no-op
	}
}

// Snapshot copies the current board. Model attributes are copied by value.
func (s *ReplayState) Snapshot(day models.Change, dayIndex int) models.Snapshot {
	tiers := make(map[string][]models.Model, len(s.tierIDs))
	for _, tierID := range s.tierIDs {
		ids := s.board[tierID]
		list := make([]models.Model, 0, len(ids))
		for _, id := range ids {
			list = append(list, s.materialize(id))
		}
		tiers[tierID] = list
	}

	label := day.Label
	if label == "" {
		label = day.At
	}

	return models.Snapshot{
		ID:    fmt.Sprintf("%s-%d", day.At, dayIndex),
		Date:  day.At,
		Label: label,
		Note:  day.Note,
		Tiers: tiers,
	}
}

// TierOf reports which tier currently holds a model.
func (s *ReplayState) TierOf(modelID string) (string, bool) {
	for _, tierID := range s.tierIDs {
		if slices.Contains(s.board[tierID], modelID) {
			return tierID, true
		}
	}
	return "", false
}

// Registered returns the registry entry of a model.
func (s *ReplayState) Registered(modelID string) (models.Model, bool) {
	model, ok := s.registry[modelID]
	return model, ok
}

func (s *ReplayState) materialize(modelID string) models.Model {
	meta, ok := s.registry[modelID]
	if !ok {
		meta = models.Model{ID: modelID}
	}
	if meta.Name == "" {
		meta.Name = modelID
	}
	meta.ID = modelID
	return meta
}

func (s *ReplayState) upsert(patch models.ModelPatch) {
	if patch.ID == "" {
		return
	}

	model, ok := s.registry[patch.ID]
	if !ok {
		model = models.Model{ID: patch.ID}
	}
	if patch.Name != nil {
		model.Name = *patch.Name
	}
	if patch.Vendor != nil {
		model.Vendor = *patch.Vendor
	}
	if patch.Summary != nil {
		model.Summary = *patch.Summary
	}
	if patch.Reasoning != nil {
		model.Reasoning = *patch.Reasoning
	}
	s.registry[patch.ID] = model
}

func (s *ReplayState) place(action models.Place) {
	if action.ID == "" {
		return
	}
	if _, known := s.board[action.Tier]; !known {
		return
	}

	s.removeFromAllTiers(action.ID)
	target := s.board[action.Tier]

	switch action.Position.Kind {
	case models.PositionTop:
		target = slices.Insert(target, 0, action.ID)
	case models.PositionIndex:
		index := min(max(action.Position.Index, 0), len(target))
		target = slices.Insert(target, index, action.ID)
	case models.PositionRelative:
		target = insertRelative(target, action.ID, action.Position)
	default:
		target = append(target, action.ID)
	}

	s.board[action.Tier] = target
}

func insertRelative(target []string, modelID string, position models.Position) []string {
	if position.Before != "" {
		if idx := slices.Index(target, position.Before); idx != -1 {
			return slices.Insert(target, idx, modelID)
		}
	}
	if position.After != "" {
		if idx := slices.Index(target, position.After); idx != -1 {
			return slices.Insert(target, idx+1, modelID)
		}
	}
	return append(target, modelID)
}

func (s *ReplayState) removeFromAllTiers(modelID string) {
	for _, tierID := range s.tierIDs {
		ids := s.board[tierID]
		if idx := slices.Index(ids, modelID); idx != -1 {
			s.board[tierID] = slices.Delete(ids, idx, idx+1)
		}
	}
}
