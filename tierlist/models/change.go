package models

// Change is one dated changelog entry
type Change struct {
	At      string
	Label   string
	Note    string
	Actions []Action
}

// Action mutates the board or the model registry. The set of implementations is closed:
// UpsertModel, Place and Remove.
type Action interface {
	isAction()
}

// ModelPatch carries the fields of an upsert. Nil fields keep the registry's prior value.
type ModelPatch struct {
	ID        string
	Name      *string
	Vendor    *string
	Summary   *string
	Reasoning *string
}

// UpsertModel creates or updates a registry entry
type UpsertModel struct {
	Model ModelPatch
}

// Place moves a model into a tier
type Place struct {
	ID       string
	Tier     string
	Position Position
}

// Remove takes a model off the board; Purge also forgets its attributes.
type Remove struct {
	ID    string
	Purge bool
}

func (UpsertModel) isAction() {}
func (Place) isAction()       {}
func (Remove) isAction()      {}

type PositionKind int

const (
	PositionBottom PositionKind = iota
	PositionTop
	PositionIndex
	PositionRelative
)

// Position says where a placed model lands inside its tier.
// For PositionRelative, Before is tried first, then After, then the bottom.
type Position struct {
	Kind   PositionKind
	Index  int
	Before string
	After  string
}

func Bottom() Position { return Position{Kind: PositionBottom} }
func Top() Position    { return Position{Kind: PositionTop} }

func AtIndex(index int) Position {
	return Position{Kind: PositionIndex, Index: index}
}

func BeforeModel(id string) Position {
	return Position{Kind: PositionRelative, Before: id}
}

func AfterModel(id string) Position {
	return Position{Kind: PositionRelative, After: id}
}
