package models

type DeltaKind string

const (
	DeltaNew  DeltaKind = "new"
	DeltaTier DeltaKind = "tier"
	DeltaSpot DeltaKind = "spot"
)

// Delta is a model's movement against the previous snapshot. A positive Delta means
// the model moved to a better tier (tier) or higher inside its tier (spot).
type Delta struct {
	Kind  DeltaKind `json:"kind"`
	Delta int       `json:"delta,omitempty"`
}
